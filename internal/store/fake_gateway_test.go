package store

import (
	"context"
	"sync"

	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/gateway"
)

// fakeGateway records every call and delegates to per-method functions.
// Methods without a function installed succeed with zero values.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	listNotebooksFn  func(ctx context.Context) ([]dto.NotebookResponse, error)
	createNotebookFn func(ctx context.Context, name string) (*dto.NotebookResponse, error)
	renameNotebookFn func(ctx context.Context, id, name string) (*dto.NotebookResponse, error)
	deleteNotebookFn func(ctx context.Context, id string) error
	listDocumentsFn  func(ctx context.Context, notebookId string) ([]dto.DocumentResponse, error)
	uploadDocumentFn func(ctx context.Context, notebookId string, file dto.FileUpload, onProgress gateway.ProgressFunc) (*dto.DocumentResponse, error)
	deleteDocumentFn func(ctx context.Context, id string) error
	chatFn           func(ctx context.Context, notebookId, query string) (*dto.ChatResponse, error)
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) ListNotebooks(ctx context.Context) ([]dto.NotebookResponse, error) {
	f.record("ListNotebooks")
	if f.listNotebooksFn != nil {
		return f.listNotebooksFn(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) CreateNotebook(ctx context.Context, name string) (*dto.NotebookResponse, error) {
	f.record("CreateNotebook")
	if f.createNotebookFn != nil {
		return f.createNotebookFn(ctx, name)
	}
	return &dto.NotebookResponse{Id: "nb-" + name, Name: name}, nil
}

func (f *fakeGateway) GetNotebook(ctx context.Context, id string) (*dto.NotebookResponse, error) {
	f.record("GetNotebook")
	return &dto.NotebookResponse{Id: id}, nil
}

func (f *fakeGateway) RenameNotebook(ctx context.Context, id, name string) (*dto.NotebookResponse, error) {
	f.record("RenameNotebook")
	if f.renameNotebookFn != nil {
		return f.renameNotebookFn(ctx, id, name)
	}
	return &dto.NotebookResponse{Id: id, Name: name}, nil
}

func (f *fakeGateway) DeleteNotebook(ctx context.Context, id string) error {
	f.record("DeleteNotebook")
	if f.deleteNotebookFn != nil {
		return f.deleteNotebookFn(ctx, id)
	}
	return nil
}

func (f *fakeGateway) ListDocuments(ctx context.Context, notebookId string) ([]dto.DocumentResponse, error) {
	f.record("ListDocuments")
	if f.listDocumentsFn != nil {
		return f.listDocumentsFn(ctx, notebookId)
	}
	return nil, nil
}

func (f *fakeGateway) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	f.record("GetDocument")
	return &dto.DocumentResponse{Id: id}, nil
}

func (f *fakeGateway) UploadDocument(ctx context.Context, notebookId string, file dto.FileUpload, onProgress gateway.ProgressFunc) (*dto.DocumentResponse, error) {
	f.record("UploadDocument")
	if f.uploadDocumentFn != nil {
		return f.uploadDocumentFn(ctx, notebookId, file, onProgress)
	}
	return &dto.DocumentResponse{Id: "doc-1", NotebookId: notebookId, Filename: file.Filename}, nil
}

func (f *fakeGateway) DeleteDocument(ctx context.Context, id string) error {
	f.record("DeleteDocument")
	if f.deleteDocumentFn != nil {
		return f.deleteDocumentFn(ctx, id)
	}
	return nil
}

func (f *fakeGateway) Chat(ctx context.Context, notebookId, query string) (*dto.ChatResponse, error) {
	f.record("Chat")
	if f.chatFn != nil {
		return f.chatFn(ctx, notebookId, query)
	}
	return &dto.ChatResponse{Answer: "ok", NotebookId: notebookId}, nil
}

func (f *fakeGateway) Health(ctx context.Context) error {
	f.record("Health")
	return nil
}
