package mockserver

import (
	"github.com/gofiber/fiber/v2"

	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/pkg/logger"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	store   *MemoryStore
	answers *AnswerGenerator
	log     logger.ILogger
}

func NewChatController(store *MemoryStore, answers *AnswerGenerator, log logger.ILogger) IChatController {
	return &chatController{store: store, answers: answers, log: log}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/notebooks/:id/chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	notebookId := ctx.Params("id")
	if _, found := c.store.GetNotebook(notebookId); !found {
		return fiber.NewError(fiber.StatusNotFound, "Notebook not found")
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	docs := c.store.ListDocuments(notebookId)
	if len(docs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No documents in this notebook. Please upload some documents first.")
	}

	answer, sources := c.answers.Generate(req.Query, docs)

	c.log.Debug("mockserver", "chat query answered", map[string]interface{}{
		"notebook_id": notebookId,
		"sources":     len(sources),
	})

	return ctx.JSON(dto.ChatResponse{
		Answer:        answer,
		Sources:       sources,
		NotebookId:    notebookId,
		RetrievalMode: "hybrid",
	})
}
