package controller

import (
	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	CreateFeedback(ctx *fiber.Ctx) error
	ListFeedback(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService service.INotificationService
	feedbackService     service.IFeedbackService
}

func NewNotificationController(
	notificationService service.INotificationService,
	feedbackService service.IFeedbackService,
) INotificationController {
	return &notificationController{
		notificationService: notificationService,
		feedbackService:     feedbackService,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	n := r.Group("/notifications")
	n.Use(serverutils.JwtMiddleware)
	n.Get("", c.List)
	n.Patch(":id/read", c.MarkRead)

	f := r.Group("/feedback")
	f.Use(serverutils.JwtMiddleware)
	f.Post("", c.CreateFeedback)
	f.Get("", c.ListFeedback)
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	res, err := c.notificationService.GetAll(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notifications", res))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	id, err := paramUint(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.notificationService.MarkRead(ctx.Context(), serverutils.UserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification read", fiber.Map{"id": id}))
}

func (c *notificationController) CreateFeedback(ctx *fiber.Ctx) error {
	var req dto.CreateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	res, err := c.feedbackService.Create(ctx.Context(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feedback received", res))
}

func (c *notificationController) ListFeedback(ctx *fiber.Ctx) error {
	res, err := c.feedbackService.ListOwn(ctx.Context(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback", res))
}
