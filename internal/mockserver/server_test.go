package mockserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebooklm-client/internal/config"
	"notebooklm-client/internal/dto"
)

func newTestApp() *Server {
	cfg := &config.Config{}
	cfg.Mock.Port = "0"
	cfg.Mock.CorsAllowedOrigins = "*"
	return New(cfg, nil)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := srv.GetApp().Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func createNotebook(t *testing.T, srv *Server, name string) dto.NotebookResponse {
	t.Helper()
	res := doJSON(t, srv, http.MethodPost, "/api/notebooks", dto.CreateNotebookRequest{Name: name})
	require.Equal(t, http.StatusOK, res.StatusCode)
	return decodeBody[dto.NotebookResponse](t, res)
}

func uploadDocument(t *testing.T, srv *Server, notebookId, filename, content string) (*http.Response, dto.DocumentResponse) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/notebooks/"+notebookId+"/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res, err := srv.GetApp().Test(req, -1)
	require.NoError(t, err)

	var doc dto.DocumentResponse
	if res.StatusCode == http.StatusOK {
		doc = decodeBody[dto.DocumentResponse](t, res)
	}
	return res, doc
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestApp()
	for _, path := range []string{"/", "/health"} {
		res := doJSON(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		body := decodeBody[map[string]string](t, res)
		assert.Equal(t, "healthy", body["status"])
	}
}

func TestNotebookLifecycle(t *testing.T) {
	srv := newTestApp()

	nb := createNotebook(t, srv, "Research")
	assert.NotEmpty(t, nb.Id)
	assert.Equal(t, "Research", nb.Name)
	assert.Equal(t, 0, nb.DocumentCount)

	res := doJSON(t, srv, http.MethodGet, "/api/notebooks", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	list := decodeBody[[]dto.NotebookResponse](t, res)
	require.Len(t, list, 1)

	res = doJSON(t, srv, http.MethodPatch, "/api/notebooks/"+nb.Id, dto.RenameNotebookRequest{Name: "Archive"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	renamed := decodeBody[dto.NotebookResponse](t, res)
	assert.Equal(t, "Archive", renamed.Name)

	res = doJSON(t, srv, http.MethodDelete, "/api/notebooks/"+nb.Id, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = doJSON(t, srv, http.MethodGet, "/api/notebooks/"+nb.Id, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	envelope := decodeBody[dto.ErrorResponse](t, res)
	assert.Equal(t, "Notebook not found", envelope.Detail)
}

func TestCreateNotebookValidatesName(t *testing.T) {
	srv := newTestApp()
	res := doJSON(t, srv, http.MethodPost, "/api/notebooks", dto.CreateNotebookRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDocumentUploadAndCount(t *testing.T) {
	srv := newTestApp()
	nb := createNotebook(t, srv, "Research")

	res, doc := uploadDocument(t, srv, nb.Id, "report.pdf", strings.Repeat("x", 1200))
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "report.pdf", doc.Filename)
	assert.Equal(t, ".pdf", doc.FileType)
	assert.Equal(t, 3, doc.ChunkCount) // 1200 bytes at 500 per chunk

	got := doJSON(t, srv, http.MethodGet, "/api/notebooks/"+nb.Id, nil)
	require.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, 1, decodeBody[dto.NotebookResponse](t, got).DocumentCount)

	listRes := doJSON(t, srv, http.MethodGet, "/api/notebooks/"+nb.Id+"/documents", nil)
	require.Equal(t, http.StatusOK, listRes.StatusCode)
	docs := decodeBody[[]dto.DocumentResponse](t, listRes)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.Id, docs[0].Id)
}

func TestUploadRejectsBadExtension(t *testing.T) {
	srv := newTestApp()
	nb := createNotebook(t, srv, "Research")

	res, _ := uploadDocument(t, srv, nb.Id, "image.png", "png data")

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	envelope := decodeBody[dto.ErrorResponse](t, res)
	assert.Equal(t, "File type not allowed. Allowed types: .pdf, .txt, .docx", envelope.Detail)
}

func TestUploadToMissingNotebook(t *testing.T) {
	srv := newTestApp()
	res, _ := uploadDocument(t, srv, "missing", "report.pdf", "data")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDocumentDelete(t *testing.T) {
	srv := newTestApp()
	nb := createNotebook(t, srv, "Research")
	_, doc := uploadDocument(t, srv, nb.Id, "report.pdf", "data")

	res := doJSON(t, srv, http.MethodDelete, "/api/documents/"+doc.Id, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got := doJSON(t, srv, http.MethodGet, "/api/notebooks/"+nb.Id, nil)
	assert.Equal(t, 0, decodeBody[dto.NotebookResponse](t, got).DocumentCount)

	res = doJSON(t, srv, http.MethodDelete, "/api/documents/"+doc.Id, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestChatAnswersWithSources(t *testing.T) {
	srv := newTestApp()
	nb := createNotebook(t, srv, "Research")
	_, _ = uploadDocument(t, srv, nb.Id, "manual.pdf", strings.Repeat("m", 600))
	_, _ = uploadDocument(t, srv, nb.Id, "faq.txt", "q and a")

	res := doJSON(t, srv, http.MethodPost, "/api/notebooks/"+nb.Id+"/chat", dto.ChatRequest{Query: "What is error code 001?"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	chat := decodeBody[dto.ChatResponse](t, res)

	assert.NotEmpty(t, chat.Answer)
	assert.Contains(t, chat.Answer, "What is error code 001?")
	assert.Equal(t, nb.Id, chat.NotebookId)
	assert.Equal(t, "hybrid", chat.RetrievalMode)
	require.Len(t, chat.Sources, 2)
	for i := 1; i < len(chat.Sources); i++ {
		assert.Less(t, chat.Sources[i].RelevanceScore, chat.Sources[i-1].RelevanceScore)
	}
}

func TestChatWithoutDocuments(t *testing.T) {
	srv := newTestApp()
	nb := createNotebook(t, srv, "Empty")

	res := doJSON(t, srv, http.MethodPost, "/api/notebooks/"+nb.Id+"/chat", dto.ChatRequest{Query: "anything?"})

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	envelope := decodeBody[dto.ErrorResponse](t, res)
	assert.Equal(t, "No documents in this notebook. Please upload some documents first.", envelope.Detail)
}

func TestChatWithMissingNotebook(t *testing.T) {
	srv := newTestApp()
	res := doJSON(t, srv, http.MethodPost, "/api/notebooks/missing/chat", dto.ChatRequest{Query: "hello"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
