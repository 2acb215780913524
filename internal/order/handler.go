package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/order/new", h.createOrder)
	app.Get("/api/v1/orders/me", h.getMyOrders)

	admin := user.RequireRoles(user.RoleAdmin)
	app.Get("/api/v1/admin/orders", admin, h.getAllOrders)
	app.Get("/api/v1/admin/order/:id<[0-9]+>", admin, h.getOrder)
	app.Put("/api/v1/admin/order/:id<[0-9]+>", admin, h.updateStatus)
	app.Delete("/api/v1/admin/order/:id<[0-9]+>", admin, h.deleteOrder)
}

type createOrderRequest struct {
	ShippingInfo  ShippingInfo `json:"shippingInfo"`
	OrderItems    []Item       `json:"orderItems"`
	PaymentInfo   PaymentInfo  `json:"paymentInfo"`
	TaxPrice      float64      `json:"taxPrice"`
	ShippingPrice float64      `json:"shippingPrice"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if len(payload.OrderItems) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "order items are required"})
	}
	if payload.ShippingInfo.Address == "" || payload.ShippingInfo.City == "" || payload.ShippingInfo.Country == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "shipping info is incomplete"})
	}

	created, err := h.service.Create(Order{
		ShippingInfo:  payload.ShippingInfo,
		Items:         payload.OrderItems,
		PaymentInfo:   payload.PaymentInfo,
		TaxPrice:      payload.TaxPrice,
		ShippingPrice: payload.ShippingPrice,
	}, userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "order": created})
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "orders": orders})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No such Order found"})
	}

	return c.JSON(fiber.Map{"success": true, "order": ord})
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	orders, totalAmount, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"orders":      orders,
		"totalAmount": totalAmount,
	})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	updated, err := h.service.UpdateStatus(id, payload.Status)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
		case ErrAlreadyDelivered:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "This order is already delivered"})
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order status"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order updated successfully",
		"order":   updated,
	})
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
		case ErrNotDelivered:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Order is not delivered and cannot be deleted"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "Order deleted successfully"})
}
