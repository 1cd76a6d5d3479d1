package controller

import (
	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompanyController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ListPartners(ctx *fiber.Ctx) error
	RequestLink(ctx *fiber.Ctx) error
	ListLinks(ctx *fiber.Ctx) error
	UpdateLink(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
	ResolveReport(ctx *fiber.Ctx) error
	CreateChat(ctx *fiber.Ctx) error
	GetChat(ctx *fiber.Ctx) error
	SendChatMessage(ctx *fiber.Ctx) error
	ChatMessages(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	ToggleBlock(ctx *fiber.Ctx) error
	SetPayStatus(ctx *fiber.Ctx) error
	ListPayHistory(ctx *fiber.Ctx) error
	ListAssignments(ctx *fiber.Ctx) error
	UpdateAssignmentStatus(ctx *fiber.Ctx) error
}

// companyController is the dashboard surface for company organizations.
type companyController struct {
	organizationService service.IOrganizationService
	reportService       service.IReportService
	assignmentService   service.IAssignmentService
	chatService         service.IChatService
	userService         service.IUserService
}

func NewCompanyController(
	organizationService service.IOrganizationService,
	reportService service.IReportService,
	assignmentService service.IAssignmentService,
	chatService service.IChatService,
	userService service.IUserService,
) ICompanyController {
	return &companyController{
		organizationService: organizationService,
		reportService:       reportService,
		assignmentService:   assignmentService,
		chatService:         chatService,
		userService:         userService,
	}
}

func (c *companyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/company")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles(string(entity.UserRoleCompany), string(entity.UserRoleCity)))

	h.Get("/profile", c.Profile)
	h.Patch("/profile", c.UpdateProfile)
	h.Get("/partners", c.ListPartners)
	h.Post("/links", c.RequestLink)
	h.Get("/links", c.ListLinks)
	h.Patch("/links/:id", c.UpdateLink)
	h.Get("/reports", c.ListReports)
	h.Post("/reports/:id/resolve", c.ResolveReport)
	h.Post("/chats", c.CreateChat)
	h.Get("/chats", c.GetChat)
	h.Post("/chats/messages", c.SendChatMessage)
	h.Get("/chats/:id/messages", c.ChatMessages)
	h.Get("/users", c.ListUsers)
	h.Patch("/users/:id/block", c.ToggleBlock)
	h.Patch("/users/:id/pay-status", c.SetPayStatus)
	h.Get("/pay-history", c.ListPayHistory)
	h.Get("/assignments", c.ListAssignments)
	h.Patch("/assignments/:id", c.UpdateAssignmentStatus)
}

func (c *companyController) Profile(ctx *fiber.Ctx) error {
	res, err := c.organizationService.Profile(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile", res))
}

func (c *companyController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateOrgProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.organizationService.UpdateProfile(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *companyController) ListPartners(ctx *fiber.Ctx) error {
	res, err := c.organizationService.ListPartners(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Partners", res))
}

func (c *companyController) RequestLink(ctx *fiber.Ctx) error {
	var req dto.CreateOrgLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.organizationService.RequestLink(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Link requested", res))
}

func (c *companyController) ListLinks(ctx *fiber.Ctx) error {
	res, err := c.organizationService.ListLinks(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Links", res))
}

func (c *companyController) UpdateLink(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateOrgLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.organizationService.UpdateLink(ctx.Context(), serverutils.UserId(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Link updated", res))
}

func (c *companyController) ListReports(ctx *fiber.Ctx) error {
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

func (c *companyController) ResolveReport(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.reportService.Resolve(ctx.Context(), serverutils.UserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report resolved", res))
}

func (c *companyController) CreateChat(ctx *fiber.Ctx) error {
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

func (c *companyController) GetChat(ctx *fiber.Ctx) error {
	reportId := uint(ctx.QueryInt("reportId"))
	if reportId == 0 {
		return serverutils.NewBadRequest("reportId query parameter required")
	}
	res, err := c.chatService.GetByReport(ctx.Context(), serverutils.UserId(ctx), reportId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat", res))
}

// SendChatMessage is the HTTP send path. It persists through the same store
// as the websocket path and fans the frame out to live connections.
func (c *companyController) SendChatMessage(ctx *fiber.Ctx) error {
	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.chatService.SendMessage(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *companyController) ChatMessages(ctx *fiber.Ctx) error {
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

func (c *companyController) ListUsers(ctx *fiber.Ctx) error {
	var filter dto.UserSearchFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return serverutils.NewBadRequest("Invalid query parameters")
	}
	res, err := c.userService.ListReporters(ctx.Context(), serverutils.UserId(ctx), &filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Users", res))
}

func (c *companyController) ToggleBlock(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.userService.ToggleBlock(ctx.Context(), serverutils.UserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User block toggled", res))
}

func (c *companyController) SetPayStatus(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.SetPayStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.userService.SetPayStatus(ctx.Context(), serverutils.UserId(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Pay status updated", res))
}

func (c *companyController) ListPayHistory(ctx *fiber.Ctx) error {
	res, err := c.userService.ListPayHistory(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Pay history", res))
}

func (c *companyController) ListAssignments(ctx *fiber.Ctx) error {
	res, err := c.assignmentService.List(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignments", res))
}

func (c *companyController) UpdateAssignmentStatus(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAssignmentStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.assignmentService.UpdateStatus(ctx.Context(), serverutils.UserId(ctx), id, req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignment updated", res))
}
