package store

import (
	"context"
	"path/filepath"
	"strings"

	"notebooklm-client/internal/constant"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/entity"
	"notebooklm-client/internal/gateway"
	"notebooklm-client/internal/mapper"
	"notebooklm-client/internal/pkg/logger"
)

// IUploadCoordinator validates a candidate file against the upload policy
// and drives a single upload through the gateway, reporting progress to
// the given sink. One upload per call; serialization is the caller's job.
type IUploadCoordinator interface {
	Upload(ctx context.Context, notebookId string, file dto.FileUpload, sink gateway.ProgressFunc) (*entity.Document, error)
}

type uploadCoordinator struct {
	gateway gateway.IApiGateway
	mapper  *mapper.DocumentMapper
	log     logger.ILogger
}

func NewUploadCoordinator(gw gateway.IApiGateway, log logger.ILogger) IUploadCoordinator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &uploadCoordinator{
		gateway: gw,
		mapper:  mapper.NewDocumentMapper(),
		log:     log,
	}
}

// ValidateFile checks the extension whitelist and the size ceiling.
// A failure here means no request is ever issued.
func ValidateFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range constant.AllowedUploadExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidFileType
	}
	if size > constant.MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

func (c *uploadCoordinator) Upload(ctx context.Context, notebookId string, file dto.FileUpload, sink gateway.ProgressFunc) (*entity.Document, error) {
	if err := ValidateFile(file.Filename, file.Size); err != nil {
		c.log.Warn("upload", "file rejected by validation", map[string]interface{}{
			"filename": file.Filename,
			"size":     file.Size,
			"reason":   err.Error(),
		})
		return nil, err
	}

	// The transport emits monotonically increasing percentages but may not
	// report a final 100 before the response lands.
	last := -1
	var wrapped gateway.ProgressFunc
	if sink != nil {
		wrapped = func(pct int) {
			if pct <= last {
				return
			}
			last = pct
			sink(pct)
		}
	}

	res, err := c.gateway.UploadDocument(ctx, notebookId, file, wrapped)
	if err != nil {
		return nil, err
	}

	// Completion implies 100%.
	if sink != nil && last < 100 {
		sink(100)
	}

	c.log.Info("upload", "document uploaded", map[string]interface{}{
		"notebook_id": notebookId,
		"document_id": res.Id,
		"chunk_count": res.ChunkCount,
	})

	return c.mapper.ToEntity(res), nil
}
