package controller

import (
	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICityController interface {
	RegisterRoutes(r fiber.Router)
	ListAreas(ctx *fiber.Ctx) error
	CreateArea(ctx *fiber.Ctx) error
	UpdateArea(ctx *fiber.Ctx) error
	DeleteArea(ctx *fiber.Ctx) error
	ListCategories(ctx *fiber.Ctx) error
	ListCompanies(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
	AssignReport(ctx *fiber.Ctx) error
	ListAssignments(ctx *fiber.Ctx) error
	UpdateReportStatus(ctx *fiber.Ctx) error
	GetOrCreateChat(ctx *fiber.Ctx) error
	ChatMessages(ctx *fiber.Ctx) error
}

// cityController is the dashboard surface for city-side organizations.
type cityController struct {
	taxonomyService     service.ITaxonomyService
	organizationService service.IOrganizationService
	reportService       service.IReportService
	assignmentService   service.IAssignmentService
	chatService         service.IChatService
}

func NewCityController(
	taxonomyService service.ITaxonomyService,
	organizationService service.IOrganizationService,
	reportService service.IReportService,
	assignmentService service.IAssignmentService,
	chatService service.IChatService,
) ICityController {
	return &cityController{
		taxonomyService:     taxonomyService,
		organizationService: organizationService,
		reportService:       reportService,
		assignmentService:   assignmentService,
		chatService:         chatService,
	}
}

func (c *cityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/city")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles(string(entity.UserRoleCity)))

	h.Get("/areas", c.ListAreas)
	h.Post("/areas", c.CreateArea)
	h.Patch("/areas/:id", c.UpdateArea)
	h.Delete("/areas/:id", c.DeleteArea)
	h.Get("/categories", c.ListCategories)
	h.Get("/companies", c.ListCompanies)
	h.Get("/reports", c.ListReports)
	h.Patch("/reports/:id/status", c.UpdateReportStatus)
	h.Post("/assign", c.AssignReport)
	h.Get("/assignments", c.ListAssignments)
	h.Post("/chats", c.GetOrCreateChat)
	h.Get("/chats/:id/messages", c.ChatMessages)
}

func (c *cityController) ListAreas(ctx *fiber.Ctx) error {
	res, err := c.taxonomyService.ListAreas(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Areas", res))
}

func (c *cityController) CreateArea(ctx *fiber.Ctx) error {
	var req dto.AreaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.taxonomyService.CreateArea(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Area created", res))
}

func (c *cityController) UpdateArea(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.AreaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.taxonomyService.UpdateArea(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Area updated", res))
}

func (c *cityController) DeleteArea(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.taxonomyService.DeleteArea(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Area deleted", fiber.Map{"id": id}))
}

func (c *cityController) ListCategories(ctx *fiber.Ctx) error {
	res, err := c.taxonomyService.ListCategories(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Categories", res))
}

func (c *cityController) ListCompanies(ctx *fiber.Ctx) error {
	res, err := c.organizationService.ListCompanies(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Companies", res))
}

func (c *cityController) ListReports(ctx *fiber.Ctx) error {
	var filter dto.ReportFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return serverutils.NewBadRequest("Invalid query parameters")
	}
	res, err := c.reportService.ListForOrg(ctx.Context(), serverutils.UserId(ctx), &filter)
	if err != nil {
		return err
	}
	if filter.GeoJSON {
		return ctx.JSON(dto.NewFeatureCollection(res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Reports", res))
}

func (c *cityController) UpdateReportStatus(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateReportStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.reportService.UpdateStatus(ctx.Context(), serverutils.UserId(ctx), id, req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report status updated", res))
}

func (c *cityController) AssignReport(ctx *fiber.Ctx) error {
	var req dto.AssignReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.assignmentService.Assign(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Report assigned", res))
}

func (c *cityController) ListAssignments(ctx *fiber.Ctx) error {
	res, err := c.assignmentService.List(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignments", res))
}

func (c *cityController) GetOrCreateChat(ctx *fiber.Ctx) error {
	var req dto.GetOrCreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.chatService.GetOrCreate(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat", res))
}

func (c *cityController) ChatMessages(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.chatService.History(ctx.Context(), serverutils.UserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Messages", res))
}
