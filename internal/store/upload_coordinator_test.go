package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebooklm-client/internal/constant"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/gateway"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "pdf accepted", filename: "report.pdf", size: 10 * 1024 * 1024},
		{name: "txt accepted", filename: "notes.txt", size: 1},
		{name: "docx accepted", filename: "thesis.docx", size: 1024},
		{name: "uppercase extension accepted", filename: "REPORT.PDF", size: 1024},
		{name: "exactly at size ceiling", filename: "big.pdf", size: constant.MaxUploadSize},
		{name: "png rejected", filename: "image.png", size: 1024, wantErr: ErrInvalidFileType},
		{name: "no extension rejected", filename: "README", size: 10, wantErr: ErrInvalidFileType},
		{name: "pdf in name but exe extension", filename: "report.pdf.exe", size: 10, wantErr: ErrInvalidFileType},
		{name: "over size ceiling", filename: "huge.pdf", size: constant.MaxUploadSize + 1, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.filename, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadValidationFailureSkipsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	c := NewUploadCoordinator(gw, nil)

	_, err := c.Upload(context.Background(), "nb-1", dto.FileUpload{
		Filename: "image.png",
		Size:     1024,
		Content:  strings.NewReader("data"),
	}, nil)

	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, "Invalid file type. Allowed: .pdf, .txt, .docx", err.Error())
	assert.Equal(t, 0, gw.callCount(), "no request may be issued for an invalid file")
}

func TestUploadOversizeFailureSkipsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	c := NewUploadCoordinator(gw, nil)

	_, err := c.Upload(context.Background(), "nb-1", dto.FileUpload{
		Filename: "huge.pdf",
		Size:     constant.MaxUploadSize + 1,
	}, nil)

	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, 0, gw.callCount())
}

func TestUploadCompletionImplies100(t *testing.T) {
	gw := &fakeGateway{
		uploadDocumentFn: func(ctx context.Context, notebookId string, file dto.FileUpload, onProgress gateway.ProgressFunc) (*dto.DocumentResponse, error) {
			// The transport never reports the final percentage.
			onProgress(12)
			onProgress(57)
			return &dto.DocumentResponse{Id: "doc-1", NotebookId: notebookId, Filename: file.Filename, ChunkCount: 3}, nil
		},
	}
	c := NewUploadCoordinator(gw, nil)

	var seen []int
	doc, err := c.Upload(context.Background(), "nb-1", dto.FileUpload{
		Filename: "report.pdf",
		Size:     2048,
		Content:  strings.NewReader("content"),
	}, func(pct int) { seen = append(seen, pct) })

	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.Id)
	assert.Equal(t, 3, doc.ChunkCount)
	assert.Equal(t, []int{12, 57, 100}, seen)
}

func TestUploadProgressMonotonic(t *testing.T) {
	gw := &fakeGateway{
		uploadDocumentFn: func(ctx context.Context, notebookId string, file dto.FileUpload, onProgress gateway.ProgressFunc) (*dto.DocumentResponse, error) {
			onProgress(30)
			onProgress(20) // regression must be swallowed
			onProgress(30) // duplicates too
			onProgress(60)
			onProgress(100)
			return &dto.DocumentResponse{Id: "doc-1"}, nil
		},
	}
	c := NewUploadCoordinator(gw, nil)

	var seen []int
	_, err := c.Upload(context.Background(), "nb-1", dto.FileUpload{
		Filename: "report.pdf",
		Size:     2048,
		Content:  strings.NewReader("content"),
	}, func(pct int) { seen = append(seen, pct) })

	require.NoError(t, err)
	assert.Equal(t, []int{30, 60, 100}, seen)
}

func TestUploadSurfacesServerDetail(t *testing.T) {
	gw := &fakeGateway{
		uploadDocumentFn: func(ctx context.Context, notebookId string, file dto.FileUpload, onProgress gateway.ProgressFunc) (*dto.DocumentResponse, error) {
			return nil, &gateway.APIError{StatusCode: 500, Detail: "Error processing document: parser crashed"}
		},
	}
	c := NewUploadCoordinator(gw, nil)

	_, err := c.Upload(context.Background(), "nb-1", dto.FileUpload{
		Filename: "report.pdf",
		Size:     2048,
		Content:  strings.NewReader("content"),
	}, nil)

	require.Error(t, err)
	assert.Equal(t, "Error processing document: parser crashed", gateway.ErrorDetail(err, constant.FallbackUploadError))
}

func TestUploadFallbackMessageWithoutDetail(t *testing.T) {
	gw := &fakeGateway{
		uploadDocumentFn: func(ctx context.Context, notebookId string, file dto.FileUpload, onProgress gateway.ProgressFunc) (*dto.DocumentResponse, error) {
			return nil, &gateway.APIError{StatusCode: 502}
		},
	}
	c := NewUploadCoordinator(gw, nil)

	_, err := c.Upload(context.Background(), "nb-1", dto.FileUpload{
		Filename: "report.pdf",
		Size:     2048,
		Content:  strings.NewReader("content"),
	}, nil)

	require.Error(t, err)
	assert.Equal(t, constant.FallbackUploadError, gateway.ErrorDetail(err, constant.FallbackUploadError))
}
