package store

import (
	"context"
	"strings"
	"sync"

	"notebooklm-client/internal/constant"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/entity"
	"notebooklm-client/internal/gateway"
	"notebooklm-client/internal/mapper"
	"notebooklm-client/internal/pkg/logger"
)

// INotebookStore owns the notebook list, the current selection and the
// selected notebook's document list. All reads return snapshots; all
// mutations happen under one lock, so document_count and the document
// list can never be observed mid-update.
type INotebookStore interface {
	LoadNotebooks(ctx context.Context) error
	CreateNotebook(ctx context.Context, name string) (*entity.Notebook, error)
	RenameNotebook(ctx context.Context, id, name string) error
	DeleteNotebook(ctx context.Context, id string) error
	SelectNotebook(ctx context.Context, notebook *entity.Notebook) error
	UploadDocument(ctx context.Context, file dto.FileUpload, onProgress gateway.ProgressFunc) (*entity.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	Notebooks() []*entity.Notebook
	Current() *entity.Notebook
	Documents() []*entity.Document
	IsBusy() bool
	CurrentError() string
	DismissError()
	SetSelectionListener(fn func(notebookId string))
}

type notebookStore struct {
	mu sync.Mutex

	gateway     gateway.IApiGateway
	coordinator IUploadCoordinator
	nbMapper    *mapper.NotebookMapper
	docMapper   *mapper.DocumentMapper
	log         logger.ILogger

	notebooks []*entity.Notebook
	current   *entity.Notebook
	documents []*entity.Document

	// generation is bumped on every selection change. In-flight work
	// captures it at issue time and drops its result on a mismatch.
	generation uint64

	inflight       int
	uploadInFlight bool
	errMsg         string

	selectionListener func(notebookId string)
}

func NewNotebookStore(gw gateway.IApiGateway, coordinator IUploadCoordinator, log logger.ILogger) INotebookStore {
	if log == nil {
		log = logger.NopLogger{}
	}
	if coordinator == nil {
		coordinator = NewUploadCoordinator(gw, log)
	}
	return &notebookStore{
		gateway:     gw,
		coordinator: coordinator,
		nbMapper:    mapper.NewNotebookMapper(),
		docMapper:   mapper.NewDocumentMapper(),
		log:         log,
	}
}

func (s *notebookStore) LoadNotebooks(ctx context.Context) error {
	s.begin()
	defer s.end()

	list, err := s.gateway.ListNotebooks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// The existing list survives a failed refresh.
		s.errMsg = gateway.ErrorDetail(err, constant.FallbackListNotebooksError)
		return err
	}
	s.notebooks = s.nbMapper.ToEntities(list)
	return nil
}

func (s *notebookStore) CreateNotebook(ctx context.Context, name string) (*entity.Notebook, error) {
	if strings.TrimSpace(name) == "" {
		s.setError(ErrEmptyNotebookName.Error())
		return nil, ErrEmptyNotebookName
	}

	s.begin()
	defer s.end()

	res, err := s.gateway.CreateNotebook(ctx, strings.TrimSpace(name))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = gateway.ErrorDetail(err, constant.FallbackCreateNotebookError)
		return nil, err
	}
	nb := s.nbMapper.ToEntity(res)
	s.notebooks = append([]*entity.Notebook{nb}, s.notebooks...)
	return nb, nil
}

func (s *notebookStore) RenameNotebook(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		s.setError(ErrEmptyNotebookName.Error())
		return ErrEmptyNotebookName
	}

	s.begin()
	defer s.end()

	res, err := s.gateway.RenameNotebook(ctx, id, strings.TrimSpace(name))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = gateway.ErrorDetail(err, constant.FallbackRenameNotebookError)
		return err
	}
	for _, nb := range s.notebooks {
		if nb.Id == id {
			nb.Name = res.Name
			break
		}
	}
	if s.current != nil && s.current.Id == id {
		s.current.Name = res.Name
	}
	return nil
}

func (s *notebookStore) DeleteNotebook(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	err := s.gateway.DeleteNotebook(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.errMsg = gateway.ErrorDetail(err, constant.FallbackDeleteNotebookError)
		s.mu.Unlock()
		return err
	}

	kept := s.notebooks[:0]
	for _, nb := range s.notebooks {
		if nb.Id != id {
			kept = append(kept, nb)
		}
	}
	s.notebooks = kept

	var listener func(string)
	if s.current != nil && s.current.Id == id {
		s.current = nil
		s.documents = nil
		s.generation++
		listener = s.selectionListener
	}
	s.mu.Unlock()

	if listener != nil {
		listener("")
	}
	return nil
}

// SelectNotebook applies the selection synchronously: the previous
// document list is discarded and the selection listener fires before any
// fetch starts. The document fetch then runs in the calling goroutine;
// run it in a goroutine of your own for fire-and-forget navigation.
func (s *notebookStore) SelectNotebook(ctx context.Context, notebook *entity.Notebook) error {
	s.mu.Lock()
	s.current = notebook
	s.documents = nil
	s.generation++
	gen := s.generation
	listener := s.selectionListener
	s.mu.Unlock()

	if listener != nil {
		if notebook != nil {
			listener(notebook.Id)
		} else {
			listener("")
		}
	}

	if notebook == nil {
		return nil
	}

	s.begin()
	defer s.end()

	list, err := s.gateway.ListDocuments(ctx, notebook.Id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.Debug("notebook_store", "discarding stale document fetch", map[string]interface{}{
			"notebook_id": notebook.Id,
		})
		return nil
	}
	if err != nil {
		// Selection stands even when the fetch fails; the list stays empty.
		s.documents = nil
		s.errMsg = gateway.ErrorDetail(err, constant.FallbackListDocumentsError)
		return err
	}
	s.documents = s.docMapper.ToEntities(list)
	return nil
}

// UploadDocument delegates to the coordinator, scoped to the current
// notebook. Upload failures are returned to the caller rather than parked
// in the store's error slot; views render them as transient state.
func (s *notebookStore) UploadDocument(ctx context.Context, file dto.FileUpload, onProgress gateway.ProgressFunc) (*entity.Document, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, ErrNoNotebookSelected
	}
	if s.uploadInFlight {
		s.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	notebookId := s.current.Id
	gen := s.generation
	s.uploadInFlight = true
	s.inflight++
	s.mu.Unlock()

	doc, err := s.coordinator.Upload(ctx, notebookId, file, onProgress)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadInFlight = false
	s.inflight--

	if err != nil {
		return nil, err
	}
	if gen != s.generation {
		s.log.Debug("notebook_store", "discarding stale upload result", map[string]interface{}{
			"notebook_id": notebookId,
			"document_id": doc.Id,
		})
		return nil, nil
	}

	s.documents = append([]*entity.Document{doc}, s.documents...)
	s.bumpCount(notebookId, +1)
	return doc, nil
}

func (s *notebookStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	var notebookId string
	if s.current != nil {
		notebookId = s.current.Id
	}
	gen := s.generation
	s.mu.Unlock()

	s.begin()
	defer s.end()

	err := s.gateway.DeleteDocument(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = gateway.ErrorDetail(err, constant.FallbackDeleteDocumentError)
		return err
	}
	if gen != s.generation {
		s.log.Debug("notebook_store", "discarding stale document delete", map[string]interface{}{
			"document_id": id,
		})
		return nil
	}

	kept := s.documents[:0]
	removed := false
	for _, doc := range s.documents {
		if doc.Id == id {
			removed = true
			continue
		}
		kept = append(kept, doc)
	}
	s.documents = kept
	if removed && notebookId != "" {
		s.bumpCount(notebookId, -1)
	}
	return nil
}

func (s *notebookStore) Notebooks() []*entity.Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Notebook, len(s.notebooks))
	copy(out, s.notebooks)
	return out
}

func (s *notebookStore) Current() *entity.Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *notebookStore) Documents() []*entity.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

func (s *notebookStore) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *notebookStore) CurrentError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// DismissError clears the error slot. Errors never auto-clear; only the
// most recent one is retained when operations overlap.
func (s *notebookStore) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *notebookStore) SetSelectionListener(fn func(notebookId string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectionListener = fn
}

// bumpCount adjusts document_count on the list entry (and the selection,
// which may be a different pointer after a reload), floored at zero.
func (s *notebookStore) bumpCount(notebookId string, delta int) {
	apply := func(nb *entity.Notebook) {
		nb.DocumentCount += delta
		if nb.DocumentCount < 0 {
			nb.DocumentCount = 0
		}
	}
	for _, nb := range s.notebooks {
		if nb.Id == notebookId {
			apply(nb)
			break
		}
	}
	if s.current != nil && s.current.Id == notebookId {
		found := false
		for _, nb := range s.notebooks {
			if nb == s.current {
				found = true
				break
			}
		}
		if !found {
			apply(s.current)
		}
	}
}

func (s *notebookStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *notebookStore) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *notebookStore) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
