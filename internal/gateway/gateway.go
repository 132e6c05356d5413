package gateway

import (
	"context"
	"errors"
	"fmt"

	"notebooklm-client/internal/dto"
)

// ProgressFunc receives upload progress as a rounded percentage in 0..100.
type ProgressFunc func(percent int)

type IApiGateway interface {
	ListNotebooks(ctx context.Context) ([]dto.NotebookResponse, error)
	CreateNotebook(ctx context.Context, name string) (*dto.NotebookResponse, error)
	GetNotebook(ctx context.Context, id string) (*dto.NotebookResponse, error)
	RenameNotebook(ctx context.Context, id, name string) (*dto.NotebookResponse, error)
	DeleteNotebook(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, notebookId string) ([]dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	UploadDocument(ctx context.Context, notebookId string, file dto.FileUpload, onProgress ProgressFunc) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id string) error
	Chat(ctx context.Context, notebookId, query string) (*dto.ChatResponse, error)
	Health(ctx context.Context) error
}

// APIError is a non-2xx response from the backend. Detail carries the
// server's {"detail": ...} message when one was sent.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// ErrorDetail returns the server-provided detail message if err carries
// one, otherwise the given fallback.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
