package mockserver

import (
	"github.com/gofiber/fiber/v2"

	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/pkg/logger"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type notebookController struct {
	store *MemoryStore
	log   logger.ILogger
}

func NewNotebookController(store *MemoryStore, log logger.ILogger) INotebookController {
	return &notebookController{store: store, log: log}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebooks")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Rename)
	h.Delete(":id", c.Delete)
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(c.store.ListNotebooks())
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	nb := c.store.CreateNotebook(req.Name)
	c.log.Info("mockserver", "notebook created", map[string]interface{}{
		"notebook_id": nb.Id,
		"name":        nb.Name,
	})
	return ctx.JSON(nb)
}

func (c *notebookController) Show(ctx *fiber.Ctx) error {
	nb, found := c.store.GetNotebook(ctx.Params("id"))
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Notebook not found")
	}
	return ctx.JSON(nb)
}

func (c *notebookController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	nb, found := c.store.RenameNotebook(ctx.Params("id"), req.Name)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Notebook not found")
	}
	return ctx.JSON(nb)
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	if !c.store.DeleteNotebook(ctx.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "Notebook not found")
	}
	return ctx.JSON(dto.DeleteResponse{Message: "Notebook deleted successfully"})
}
