package controller

import (
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/pkg/geocode"

	"github.com/gofiber/fiber/v2"
)

type IGeocodeController interface {
	RegisterRoutes(r fiber.Router)
	Forward(ctx *fiber.Ctx) error
	Reverse(ctx *fiber.Ctx) error
	Text(ctx *fiber.Ctx) error
}

// geocodeController proxies the Yahoo geocoder so API keys never reach the
// client. Responses are cached inside the geocode client.
type geocodeController struct {
	client *geocode.Client
}

func NewGeocodeController(client *geocode.Client) IGeocodeController {
	return &geocodeController{client: client}
}

func (c *geocodeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/geocode")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Forward)
	h.Get("/reverse", c.Reverse)
	h.Get("/text", c.Text)
}

func (c *geocodeController) Forward(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return serverutils.NewBadRequest("q query parameter required")
	}
	results, err := c.client.Forward(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Geocode results", results))
}

func (c *geocodeController) Reverse(ctx *fiber.Ctx) error {
	lat := ctx.QueryFloat("lat")
	lng := ctx.QueryFloat("lng")
	if lat == 0 && lng == 0 {
		return serverutils.NewBadRequest("lat and lng query parameters required")
	}
	results, err := c.client.Reverse(ctx.Context(), lat, lng)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reverse geocode results", results))
}

// Text is a convenience lookup that returns only the best hit's coordinates.
func (c *geocodeController) Text(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return serverutils.NewBadRequest("q query parameter required")
	}
	results, err := c.client.Forward(ctx.Context(), query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return serverutils.NewNotFound("No match for query")
	}
	return ctx.JSON(serverutils.SuccessResponse("Coordinates", fiber.Map{
		"lat": results[0].Lat,
		"lng": results[0].Lng,
	}))
}
