package search

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/search", h.search)
	app.Get("/api/v1/search/suggestions", h.suggestions)
}

func (h *Handler) search(c *fiber.Ctx) error {
	query := c.Query("query")
	category := c.Query("category")

	products, err := h.service.Search(query, category)
	if err != nil {
		if err == ErrEmptyQuery {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Search query is required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
		"count":    len(products),
		"query":    query,
	})
}

func (h *Handler) suggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":     true,
		"suggestions": h.service.Suggestions(c.Query("query")),
	})
}
