package mapper

import (
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// ToSources keeps the order the backend ranked them in.
func (m *ChatMapper) ToSources(list []dto.ChatSourceResponse) []entity.Source {
	result := make([]entity.Source, 0, len(list))
	for _, s := range list {
		result = append(result, entity.Source{
			DocumentId:     s.DocumentId,
			Filename:       s.Filename,
			ChunkText:      s.ChunkText,
			RelevanceScore: s.RelevanceScore,
		})
	}
	return result
}
