package mockserver

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"notebooklm-client/internal/constant"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/pkg/logger"
)

// Validation messages mirror the real backend, which phrases them
// differently than the client-side policy.
const (
	serverInvalidTypeMessage = "File type not allowed. Allowed types: .pdf, .txt, .docx"
	serverTooLargeMessage    = "File size exceeds 50MB limit"

	mockChunkSize = 500
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	store *MemoryStore
	log   logger.ILogger
}

func NewDocumentController(store *MemoryStore, log logger.ILogger) IDocumentController {
	return &documentController{store: store, log: log}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Get("/notebooks/:id/documents", c.List)
	r.Post("/notebooks/:id/documents", c.Upload)
	r.Get("/documents/:id", c.Show)
	r.Delete("/documents/:id", c.Delete)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	notebookId := ctx.Params("id")
	if _, found := c.store.GetNotebook(notebookId); !found {
		return fiber.NewError(fiber.StatusNotFound, "Notebook not found")
	}
	return ctx.JSON(c.store.ListDocuments(notebookId))
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	// Params strings alias Fiber's reusable request buffer; this one is
	// retained in the store past the request, so it must be copied.
	notebookId := strings.Clone(ctx.Params("id"))
	if _, found := c.store.GetNotebook(notebookId); !found {
		return fiber.NewError(fiber.StatusNotFound, "Notebook not found")
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range constant.AllowedUploadExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return fiber.NewError(fiber.StatusBadRequest, serverInvalidTypeMessage)
	}
	if header.Size > constant.MaxUploadSize {
		return fiber.NewError(fiber.StatusBadRequest, serverTooLargeMessage)
	}

	chunkCount := int(header.Size/mockChunkSize) + 1
	doc := c.store.CreateDocument(notebookId, header.Filename, ext, chunkCount)

	c.log.Info("mockserver", "document uploaded", map[string]interface{}{
		"notebook_id": notebookId,
		"document_id": doc.Id,
		"filename":    doc.Filename,
		"chunk_count": doc.ChunkCount,
	})
	return ctx.JSON(doc)
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	doc, found := c.store.GetDocument(ctx.Params("id"))
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}
	return ctx.JSON(doc)
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	if !c.store.DeleteDocument(ctx.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}
	return ctx.JSON(dto.DeleteResponse{Message: "Document deleted successfully"})
}
