package dto

import (
	"io"
	"time"
)

type DocumentResponse struct {
	Id         string    `json:"id"`
	NotebookId string    `json:"notebook_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	ChunkCount int       `json:"chunk_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FileUpload is a candidate file handed to the upload coordinator. Size is
// known up front so the size policy can be checked before any bytes move.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}
