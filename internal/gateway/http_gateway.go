package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"notebooklm-client/internal/config"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/pkg/logger"
)

// HttpGateway talks to the retrieval backend over its REST surface.
// Uploads get their own client because large files outlive the default
// request timeout.
type HttpGateway struct {
	baseURL      string
	client       *http.Client
	uploadClient *http.Client
	log          logger.ILogger
}

func NewHttpGateway(cfg config.API, log logger.ILogger) *HttpGateway {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &HttpGateway{
		baseURL:      cfg.BaseURL,
		client:       &http.Client{Timeout: cfg.RequestTimeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
		log:          log,
	}
}

func (g *HttpGateway) ListNotebooks(ctx context.Context) ([]dto.NotebookResponse, error) {
	var result []dto.NotebookResponse
	if err := g.doJSON(ctx, http.MethodGet, "/api/notebooks", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *HttpGateway) CreateNotebook(ctx context.Context, name string) (*dto.NotebookResponse, error) {
	var result dto.NotebookResponse
	req := dto.CreateNotebookRequest{Name: name}
	if err := g.doJSON(ctx, http.MethodPost, "/api/notebooks", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HttpGateway) GetNotebook(ctx context.Context, id string) (*dto.NotebookResponse, error) {
	var result dto.NotebookResponse
	if err := g.doJSON(ctx, http.MethodGet, "/api/notebooks/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HttpGateway) RenameNotebook(ctx context.Context, id, name string) (*dto.NotebookResponse, error) {
	var result dto.NotebookResponse
	req := dto.RenameNotebookRequest{Name: name}
	if err := g.doJSON(ctx, http.MethodPatch, "/api/notebooks/"+id, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HttpGateway) DeleteNotebook(ctx context.Context, id string) error {
	return g.doJSON(ctx, http.MethodDelete, "/api/notebooks/"+id, nil, nil)
}

func (g *HttpGateway) ListDocuments(ctx context.Context, notebookId string) ([]dto.DocumentResponse, error) {
	var result []dto.DocumentResponse
	path := "/api/notebooks/" + notebookId + "/documents"
	if err := g.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *HttpGateway) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	var result dto.DocumentResponse
	if err := g.doJSON(ctx, http.MethodGet, "/api/documents/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HttpGateway) DeleteDocument(ctx context.Context, id string) error {
	return g.doJSON(ctx, http.MethodDelete, "/api/documents/"+id, nil, nil)
}

func (g *HttpGateway) Chat(ctx context.Context, notebookId, query string) (*dto.ChatResponse, error) {
	var result dto.ChatResponse
	path := "/api/notebooks/" + notebookId + "/chat"
	if err := g.doJSON(ctx, http.MethodPost, path, dto.ChatRequest{Query: query}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HttpGateway) Health(ctx context.Context) error {
	return g.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// UploadDocument sends the file as a multipart request. The assembled body
// is wrapped in a progress reader, so percentages track bytes handed to
// the transport.
func (g *HttpGateway) UploadDocument(ctx context.Context, notebookId string, file dto.FileUpload, onProgress ProgressFunc) (*dto.DocumentResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	total := int64(body.Len())
	url := g.baseURL + "/api/notebooks/" + notebookId + "/documents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, newProgressReader(&body, total, onProgress))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	res, err := g.uploadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, g.apiError(res.StatusCode, resBody)
	}

	var result dto.DocumentResponse
	if err := json.Unmarshal(resBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	g.log.Debug("gateway", "document uploaded", map[string]interface{}{
		"notebook_id": notebookId,
		"filename":    file.Filename,
	})

	return &result, nil
}

func (g *HttpGateway) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(payloadJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return g.apiError(res.StatusCode, resBody)
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

func (g *HttpGateway) apiError(status int, body []byte) error {
	var envelope dto.ErrorResponse
	// Best effort: a proxy may answer with a non-JSON body.
	_ = json.Unmarshal(body, &envelope)

	g.log.Warn("gateway", "backend returned an error", map[string]interface{}{
		"status": status,
		"detail": envelope.Detail,
	})

	return &APIError{StatusCode: status, Detail: envelope.Detail}
}
