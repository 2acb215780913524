package address

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

// Handler works directly against the repository; the address book has no
// business rules beyond ownership checks.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/addresses", h.list)
	app.Post("/api/v1/address", h.create)
	app.Put("/api/v1/address/:id<[0-9]+>", h.update)
	app.Delete("/api/v1/address/:id<[0-9]+>", h.delete)
	app.Put("/api/v1/address/:id<[0-9]+>/default", h.setDefault)
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	addresses, err := h.repo.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "addresses": addresses})
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Line == "" || payload.City == "" || payload.Country == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "address, city and country are required"})
	}

	payload.UserID = userID
	created, err := h.repo.Create(*payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if created.IsDefault {
		if err := h.repo.SetDefault(userID, created.ID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "address": created})
}

func (h *Handler) update(c *fiber.Ctx) error {
	_, id, ok := h.ownedAddressID(c)
	if !ok {
		return nil
	}

	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	updated, err := h.repo.Update(id, *payload)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Address not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "address": updated})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	_, id, ok := h.ownedAddressID(c)
	if !ok {
		return nil
	}

	if err := h.repo.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Address not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Address deleted"})
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	userID, id, ok := h.ownedAddressID(c)
	if !ok {
		return nil
	}

	if err := h.repo.SetDefault(userID, id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Address not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Default address updated"})
}

// ownedAddressID resolves the path id and verifies the address belongs to
// the caller. When it returns false the error response has been written.
func (h *Handler) ownedAddressID(c *fiber.Ctx) (userID, id int, ok bool) {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
		return 0, 0, false
	}

	id, err = strconv.Atoi(c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		return 0, 0, false
	}

	existing, err := h.repo.GetByID(id)
	if err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Address not found"})
		return 0, 0, false
	}
	if existing.UserID != userID {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Address belongs to another user"})
		return 0, 0, false
	}
	return userID, id, true
}
