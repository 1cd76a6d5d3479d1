package controller

import (
	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
	SetReportStatus(ctx *fiber.Ctx) error
	DeleteReport(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	CreateUser(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	ToggleBlock(ctx *fiber.Ctx) error
	ListOrganizations(ctx *fiber.Ctx) error
	UpdateOrganization(ctx *fiber.Ctx) error
	DeleteOrganization(ctx *fiber.Ctx) error
	ListLogs(ctx *fiber.Ctx) error
	RecordPay(ctx *fiber.Ctx) error
	ListFeedback(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService    service.IAdminService
	userService     service.IUserService
	feedbackService service.IFeedbackService
}

func NewAdminController(
	adminService service.IAdminService,
	userService service.IUserService,
	feedbackService service.IFeedbackService,
) IAdminController {
	return &adminController{
		adminService:    adminService,
		userService:     userService,
		feedbackService: feedbackService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireAdmin)

	h.Get("/summary", c.Summary)
	h.Get("/reports", c.ListReports)
	h.Patch("/reports/:id/status", c.SetReportStatus)
	h.Delete("/reports/:id", c.DeleteReport)
	h.Get("/users", c.ListUsers)
	h.Post("/users", c.CreateUser)
	h.Patch("/users/:id", c.UpdateUser)
	h.Delete("/users/:id", c.DeleteUser)
	h.Patch("/users/:id/block", c.ToggleBlock)
	h.Get("/orgs", c.ListOrganizations)
	h.Patch("/orgs/:id", c.UpdateOrganization)
	h.Delete("/orgs/:id", c.DeleteOrganization)
	h.Get("/logs", c.ListLogs)
	h.Post("/pay", c.RecordPay)
	h.Get("/feedback", c.ListFeedback)
}

func (c *adminController) Summary(ctx *fiber.Ctx) error {
	res, err := c.adminService.Summary(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Summary", res))
}

func (c *adminController) ListReports(ctx *fiber.Ctx) error {
	var filter dto.ReportFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return serverutils.NewBadRequest("Invalid query parameters")
	}
	res, err := c.adminService.ListReports(ctx.Context(), &filter)
	if err != nil {
		return err
	}
	if filter.GeoJSON {
		return ctx.JSON(dto.NewFeatureCollection(res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Reports", res))
}

func (c *adminController) SetReportStatus(ctx *fiber.Ctx) error {
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
	res, err := c.adminService.SetReportStatus(ctx.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report status updated", res))
}

func (c *adminController) DeleteReport(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.adminService.DeleteReport(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report deleted", fiber.Map{"id": id}))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	var filter dto.UserSearchFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return serverutils.NewBadRequest("Invalid query parameters")
	}
	res, err := c.adminService.ListUsers(ctx.Context(), &filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Users", res))
}

func (c *adminController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.adminService.CreateUser(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.adminService.UpdateUser(ctx.Context(), serverutils.UserId(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User updated", res))
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.adminService.DeleteUser(ctx.Context(), serverutils.UserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User deleted", fiber.Map{"id": id}))
}

func (c *adminController) ToggleBlock(ctx *fiber.Ctx) error {
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

func (c *adminController) ListOrganizations(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListOrganizations(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Organizations", res))
}

func (c *adminController) UpdateOrganization(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateOrganizationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.adminService.UpdateOrganization(ctx.Context(), serverutils.UserId(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Organization updated", res))
}

func (c *adminController) DeleteOrganization(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.adminService.DeleteOrganization(ctx.Context(), serverutils.UserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Organization deleted", fiber.Map{"id": id}))
}

func (c *adminController) ListLogs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 100)
	res, err := c.adminService.ListAuditLogs(ctx.Context(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit logs", res))
}

func (c *adminController) RecordPay(ctx *fiber.Ctx) error {
	var req dto.RecordPayRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.adminService.RecordPay(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payout recorded", res))
}

func (c *adminController) ListFeedback(ctx *fiber.Ctx) error {
	res, err := c.feedbackService.ListAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback", res))
}
