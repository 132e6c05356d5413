package store

import (
	"errors"

	"notebooklm-client/internal/constant"
)

// Local validation errors. None of these ever reach the network.
var (
	ErrEmptyNotebookName  = errors.New("Notebook name cannot be empty")
	ErrNoNotebookSelected = errors.New("No notebook selected")
	ErrEmptyQuery         = errors.New("Query cannot be empty")
	ErrInvalidFileType    = errors.New(constant.InvalidFileTypeMessage)
	ErrFileTooLarge       = errors.New(constant.FileTooLargeMessage)
)

// Overlap rejections. One query and one upload may be in flight at a time;
// a second call is refused instead of queued or interleaved.
var (
	ErrQueryInFlight  = errors.New("A query is already in progress")
	ErrUploadInFlight = errors.New("An upload is already in progress")
)
