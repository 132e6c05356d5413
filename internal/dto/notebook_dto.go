package dto

import "time"

type CreateNotebookRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type RenameNotebookRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type NotebookResponse struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	DocumentCount int       `json:"document_count"`
}
