package entity

import "time"

type Document struct {
	Id         string
	NotebookId string
	Filename   string
	FileType   string
	ChunkCount int
	UploadedAt time.Time
}
