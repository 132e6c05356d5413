package mapper

import (
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/entity"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *dto.DocumentResponse) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:         d.Id,
		NotebookId: d.NotebookId,
		Filename:   d.Filename,
		FileType:   d.FileType,
		ChunkCount: d.ChunkCount,
		UploadedAt: d.UploadedAt,
	}
}

func (m *DocumentMapper) ToEntities(list []dto.DocumentResponse) []*entity.Document {
	result := make([]*entity.Document, 0, len(list))
	for i := range list {
		result = append(result, m.ToEntity(&list[i]))
	}
	return result
}
