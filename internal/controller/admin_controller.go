package controller

import (
	"care-assistant-be/internal/dto"
	"care-assistant-be/internal/pkg/serverutils"
	"care-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	IngestDocument(ctx *fiber.Ctx) error
	IngestCorpusDir(ctx *fiber.Ctx) error
	CorpusStatus(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService     service.IAdminService
	ingestionService service.IIngestionService
	corpusDir        string
}

func NewAdminController(
	adminService service.IAdminService,
	ingestionService service.IIngestionService,
	corpusDir string,
) IAdminController {
	return &adminController{
		adminService:     adminService,
		ingestionService: ingestionService,
		corpusDir:        corpusDir,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("ingest", c.IngestDocument)
	h.Post("ingest/corpus", c.IngestCorpusDir)
	h.Get("corpus", c.CorpusStatus)
	h.Get("logs", c.GetLogs)
}

func (c *adminController) IngestDocument(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.QueueDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue document", res))
}

func (c *adminController) IngestCorpusDir(ctx *fiber.Ctx) error {
	res, err := c.ingestionService.QueueCorpusDir(ctx.Context(), c.corpusDir)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue corpus directory", res))
}

func (c *adminController) CorpusStatus(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetCorpusStatus(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show corpus status", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.adminService.GetLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show logs", res))
}
