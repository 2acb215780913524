package content

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

// Flusher invalidates cached GET responses after an admin edit. The cache
// package provides it; a nil Flusher disables invalidation.
type Flusher interface {
	Flush(prefix string) error
}

type Handler struct {
	repo  Repository
	cache Flusher
}

func NewHandler(repo Repository, cache Flusher) *Handler {
	return &Handler{repo: repo, cache: cache}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/content/:key", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	admin := user.RequireRoles(user.RoleAdmin)
	app.Put("/api/v1/admin/content/:key", admin, h.set)
}

func (h *Handler) get(c *fiber.Ctx) error {
	key := c.Params("key")
	if !ValidKey(key) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "unknown content key"})
	}

	doc, err := h.repo.Get(key)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Content not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "key": key, "content": doc})
}

func (h *Handler) set(c *fiber.Ctx) error {
	key := c.Params("key")
	if !ValidKey(key) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "unknown content key"})
	}

	body := c.Body()
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "body must be valid JSON"})
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if err := h.repo.Set(key, json.RawMessage(body), updatedAt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if h.cache != nil {
		h.cache.Flush("/api/v1/content/" + key)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Content updated", "key": key})
}
