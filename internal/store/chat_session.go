package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"notebooklm-client/internal/constant"
	"notebooklm-client/internal/entity"
	"notebooklm-client/internal/gateway"
	"notebooklm-client/internal/mapper"
	"notebooklm-client/internal/pkg/idgen"
	"notebooklm-client/internal/pkg/logger"
)

// IChatSession owns the transcript for the currently selected notebook.
// A remote failure is not an error return; it becomes an error-role entry
// in the transcript. SendQuery returns an error only for local problems
// (no selection, empty query, query already in flight).
type IChatSession interface {
	SetNotebook(notebookId string)
	SendQuery(ctx context.Context, text string) error
	ClearMessages()
	Messages() []entity.Message
	NotebookId() string
	IsBusy() bool
}

type chatSession struct {
	mu sync.Mutex

	gateway    gateway.IApiGateway
	ids        *idgen.Generator
	chatMapper *mapper.ChatMapper
	log        logger.ILogger

	notebookId string
	messages   []entity.Message
	busy       bool

	// epoch is bumped on every reset. An in-flight query captures it and
	// drops its answer if the transcript was reset before it resolved.
	epoch uint64
}

func NewChatSession(gw gateway.IApiGateway, ids *idgen.Generator, log logger.ILogger) IChatSession {
	if ids == nil {
		ids = idgen.New()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &chatSession{
		gateway:    gw,
		ids:        ids,
		chatMapper: mapper.NewChatMapper(),
		log:        log,
	}
}

// SetNotebook rebinds the session. The transcript is cleared
// unconditionally, even when the same notebook is reselected; history is
// never resurrected.
func (s *chatSession) SetNotebook(notebookId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notebookId = notebookId
	s.messages = nil
	s.epoch++
}

func (s *chatSession) SendQuery(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	if s.notebookId == "" {
		s.mu.Unlock()
		return ErrNoNotebookSelected
	}
	if trimmed == "" {
		s.mu.Unlock()
		return ErrEmptyQuery
	}
	if s.busy {
		s.mu.Unlock()
		return ErrQueryInFlight
	}

	// The user's message lands before the network round trip starts, so
	// the transcript shows it even when the answer is slow or never comes.
	s.busy = true
	notebookId := s.notebookId
	epoch := s.epoch
	s.messages = append(s.messages, entity.UserMessage{
		Id:        s.ids.Next(),
		Content:   trimmed,
		CreatedAt: time.Now(),
	})
	s.mu.Unlock()

	res, err := s.gateway.Chat(ctx, notebookId, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if epoch != s.epoch {
		s.log.Debug("chat_session", "discarding stale chat result", map[string]interface{}{
			"notebook_id": notebookId,
		})
		return nil
	}

	if err != nil {
		s.messages = append(s.messages, entity.ErrorMessage{
			Id:        s.ids.Next(),
			Content:   gateway.ErrorDetail(err, constant.FallbackChatError),
			CreatedAt: time.Now(),
		})
		return nil
	}

	s.messages = append(s.messages, entity.AssistantMessage{
		Id:        s.ids.Next(),
		Content:   res.Answer,
		Sources:   s.chatMapper.ToSources(res.Sources),
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *chatSession) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.epoch++
}

func (s *chatSession) Messages() []entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *chatSession) NotebookId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notebookId
}

func (s *chatSession) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
