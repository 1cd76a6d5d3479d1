package controller

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
	chatService   service.IChatService
	uploadDir     string
}

func NewReportController(reportService service.IReportService, chatService service.IChatService, uploadDir string) IReportController {
	return &reportController{
		reportService: reportService,
		chatService:   chatService,
		uploadDir:     uploadDir,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reports")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Get(":id/messages", c.Messages)
}

func (c *reportController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.CreateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		paths, err := c.saveImages(ctx, form.File["images"])
		if err != nil {
			return err
		}
		req.ImagePaths = paths
	}

	res, err := c.reportService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Report created", res))
}

func (c *reportController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var filter dto.ReportFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return serverutils.NewBadRequest("Invalid query parameters")
	}

	res, err := c.reportService.ListOwn(ctx.Context(), userId, &filter)
	if err != nil {
		return err
	}
	if filter.GeoJSON {
		return ctx.JSON(dto.NewFeatureCollection(res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Reports", res))
}

func (c *reportController) Show(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.reportService.Get(ctx.Context(), serverutils.UserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report", res))
}

func (c *reportController) Update(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reportService.Update(ctx.Context(), serverutils.UserId(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report updated", res))
}

func (c *reportController) Delete(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.reportService.Delete(ctx.Context(), serverutils.UserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report deleted", fiber.Map{"id": id}))
}

// Messages returns the report's conversation history over plain HTTP, for
// clients that do not hold a websocket open.
func (c *reportController) Messages(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.chatService.HistoryByReport(ctx.Context(), serverutils.UserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Messages", res))
}

func (c *reportController) saveImages(ctx *fiber.Ctx, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".webp":
		default:
			return nil, serverutils.NewBadRequest("Unsupported image type: " + ext)
		}
		name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		dst := filepath.Join(c.uploadDir, name)
		if err := ctx.SaveFile(file, dst); err != nil {
			return nil, err
		}
		paths = append(paths, "/uploads/"+name)
	}
	return paths, nil
}
