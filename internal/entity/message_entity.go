package entity

import (
	"time"

	"notebooklm-client/internal/constant"
)

// Source is a citation attached to an assistant answer.
type Source struct {
	DocumentId     string
	Filename       string
	ChunkText      string
	RelevanceScore float64
}

// Message is the closed set of transcript entries. Exactly three variants
// exist (user, assistant, error); the unexported method keeps the set
// closed to this package.
type Message interface {
	MessageId() string
	MessageRole() string
	MessageText() string
	MessageTime() time.Time

	isMessage()
}

type UserMessage struct {
	Id        string
	Content   string
	CreatedAt time.Time
}

type AssistantMessage struct {
	Id        string
	Content   string
	Sources   []Source
	CreatedAt time.Time
}

type ErrorMessage struct {
	Id        string
	Content   string
	CreatedAt time.Time
}

func (m UserMessage) MessageId() string {
	return m.Id
}

func (m UserMessage) MessageRole() string {
	return constant.MessageRoleUser
}

func (m UserMessage) MessageText() string {
	return m.Content
}

func (m UserMessage) MessageTime() time.Time {
	return m.CreatedAt
}

func (m UserMessage) isMessage() {}

func (m AssistantMessage) MessageId() string {
	return m.Id
}

func (m AssistantMessage) MessageRole() string {
	return constant.MessageRoleAssistant
}

func (m AssistantMessage) MessageText() string {
	return m.Content
}

func (m AssistantMessage) MessageTime() time.Time {
	return m.CreatedAt
}

func (m AssistantMessage) isMessage() {}

func (m ErrorMessage) MessageId() string {
	return m.Id
}

func (m ErrorMessage) MessageRole() string {
	return constant.MessageRoleError
}

func (m ErrorMessage) MessageText() string {
	return m.Content
}

func (m ErrorMessage) MessageTime() time.Time {
	return m.CreatedAt
}

func (m ErrorMessage) isMessage() {}
