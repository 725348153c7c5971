package controller

import (
	"cardassist-be/internal/dto"
	"cardassist-be/internal/pkg/serverutils"
	"cardassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRagController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	IndexDocument(ctx *fiber.Ctx) error
	Document(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type ragController struct {
	indexerService service.IIndexerService
}

func NewRagController(indexerService service.IIndexerService) IRagController {
	return &ragController{
		indexerService: indexerService,
	}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag/v1")
	h.Get("stats", c.Stats)
	h.Get("documents/:name", c.Document)

	// Mutating the index is an operator action.
	protected := h.Group("", serverutils.JwtMiddleware)
	protected.Post("index", c.Index)
	protected.Post("documents/:name", c.IndexDocument)
}

func (c *ragController) Index(ctx *fiber.Ctx) error {
	var req dto.IndexDocumentsRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.indexerService.IndexAll(ctx.Context(), req.Reindex)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success index documents", res))
}

func (c *ragController) IndexDocument(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "document name is required"))
	}

	res, err := c.indexerService.IndexDocument(ctx.Context(), name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success index document", res))
}

func (c *ragController) Document(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "document name is required"))
	}

	content, err := c.indexerService.Document(ctx.Context(), name)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "document not found"))
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.Send(content)
}

func (c *ragController) Stats(ctx *fiber.Ctx) error {
	res, err := c.indexerService.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rag stats", res))
}
