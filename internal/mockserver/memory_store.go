package mockserver

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"notebooklm-client/internal/dto"
)

const (
	notebookKeyPrefix = "notebook:"
	documentKeyPrefix = "document:"
)

// MemoryStore holds notebooks and documents for the mock backend.
// Records live in a go-cache instance without expiration; insertion order
// is tracked separately so listings are deterministic.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache

	notebookOrder []string
	documentOrder map[string][]string // notebook id -> document ids, newest first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache:         cache.New(cache.NoExpiration, 0),
		documentOrder: make(map[string][]string),
	}
}

func (s *MemoryStore) CreateNotebook(name string) dto.NotebookResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb := dto.NotebookResponse{
		Id:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.cache.Set(notebookKeyPrefix+nb.Id, nb, cache.NoExpiration)
	s.notebookOrder = append(s.notebookOrder, nb.Id)
	return nb
}

func (s *MemoryStore) GetNotebook(id string) (dto.NotebookResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getNotebookLocked(id)
}

func (s *MemoryStore) getNotebookLocked(id string) (dto.NotebookResponse, bool) {
	x, found := s.cache.Get(notebookKeyPrefix + id)
	if !found {
		return dto.NotebookResponse{}, false
	}
	nb := x.(dto.NotebookResponse)
	nb.DocumentCount = len(s.documentOrder[id])
	return nb, true
}

func (s *MemoryStore) ListNotebooks() []dto.NotebookResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]dto.NotebookResponse, 0, len(s.notebookOrder))
	for _, id := range s.notebookOrder {
		if nb, ok := s.getNotebookLocked(id); ok {
			result = append(result, nb)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *MemoryStore) RenameNotebook(id, name string) (dto.NotebookResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.cache.Get(notebookKeyPrefix + id)
	if !found {
		return dto.NotebookResponse{}, false
	}
	nb := x.(dto.NotebookResponse)
	nb.Name = name
	s.cache.Set(notebookKeyPrefix+id, nb, cache.NoExpiration)
	nb.DocumentCount = len(s.documentOrder[id])
	return nb, true
}

func (s *MemoryStore) DeleteNotebook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache.Get(notebookKeyPrefix + id); !found {
		return false
	}
	for _, docId := range s.documentOrder[id] {
		s.cache.Delete(documentKeyPrefix + docId)
	}
	delete(s.documentOrder, id)
	s.cache.Delete(notebookKeyPrefix + id)

	kept := s.notebookOrder[:0]
	for _, nbId := range s.notebookOrder {
		if nbId != id {
			kept = append(kept, nbId)
		}
	}
	s.notebookOrder = kept
	return true
}

func (s *MemoryStore) CreateDocument(notebookId, filename, fileType string, chunkCount int) dto.DocumentResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := dto.DocumentResponse{
		Id:         uuid.NewString(),
		NotebookId: notebookId,
		Filename:   filename,
		FileType:   fileType,
		ChunkCount: chunkCount,
		UploadedAt: time.Now(),
	}
	s.cache.Set(documentKeyPrefix+doc.Id, doc, cache.NoExpiration)
	s.documentOrder[notebookId] = append([]string{doc.Id}, s.documentOrder[notebookId]...)
	return doc
}

func (s *MemoryStore) GetDocument(id string) (dto.DocumentResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.cache.Get(documentKeyPrefix + id)
	if !found {
		return dto.DocumentResponse{}, false
	}
	return x.(dto.DocumentResponse), true
}

func (s *MemoryStore) ListDocuments(notebookId string) []dto.DocumentResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]dto.DocumentResponse, 0, len(s.documentOrder[notebookId]))
	for _, id := range s.documentOrder[notebookId] {
		if x, found := s.cache.Get(documentKeyPrefix + id); found {
			result = append(result, x.(dto.DocumentResponse))
		}
	}
	return result
}

func (s *MemoryStore) DeleteDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.cache.Get(documentKeyPrefix + id)
	if !found {
		return false
	}
	doc := x.(dto.DocumentResponse)
	s.cache.Delete(documentKeyPrefix + id)

	order := s.documentOrder[doc.NotebookId]
	kept := order[:0]
	for _, docId := range order {
		if docId != id {
			kept = append(kept, docId)
		}
	}
	s.documentOrder[doc.NotebookId] = kept
	return true
}
