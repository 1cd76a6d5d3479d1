package controller

import (
	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Reports(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{exportService: exportService}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/reports", c.Reports)
}

func (c *exportController) Reports(ctx *fiber.Ctx) error {
	var filter dto.ReportFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return serverutils.NewBadRequest("Invalid query parameters")
	}

	filename, data, err := c.exportService.ExportReports(ctx.Context(), serverutils.UserId(ctx), &filter)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(data)
}
