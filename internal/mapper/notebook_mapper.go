package mapper

import (
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/entity"
)

type NotebookMapper struct{}

func NewNotebookMapper() *NotebookMapper {
	return &NotebookMapper{}
}

func (m *NotebookMapper) ToEntity(n *dto.NotebookResponse) *entity.Notebook {
	if n == nil {
		return nil
	}
	return &entity.Notebook{
		Id:            n.Id,
		Name:          n.Name,
		DocumentCount: n.DocumentCount,
		CreatedAt:     n.CreatedAt,
	}
}

func (m *NotebookMapper) ToEntities(list []dto.NotebookResponse) []*entity.Notebook {
	result := make([]*entity.Notebook, 0, len(list))
	for i := range list {
		result = append(result, m.ToEntity(&list[i]))
	}
	return result
}
