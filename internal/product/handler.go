package product

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

// NameSource resolves a user's display name for review attribution.
type NameSource interface {
	UserName(id int) (string, error)
}

// Flusher invalidates cached GET responses after a catalog write. The cache
// package provides it; a nil Flusher disables invalidation.
type Flusher interface {
	Flush(prefix string) error
}

type Handler struct {
	service *Service
	names   NameSource
	cache   Flusher
}

func NewHandler(service *Service, names NameSource, cache Flusher) *Handler {
	return &Handler{service: service, names: names, cache: cache}
}

// catalogPrefixes are the cached read routes whose payloads change with any
// product or review write.
var catalogPrefixes = []string{"/api/v1/products", "/api/v1/product/", "/api/v1/search"}

func (h *Handler) flushCatalog() {
	if h.cache == nil {
		return
	}
	for _, prefix := range catalogPrefixes {
		h.cache.Flush(prefix)
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/subcategories", h.getSubcategories)
	app.Get("/api/v1/product/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/product/:id<[0-9]+>/reviews", h.getReviews)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/v1/review", h.upsertReview)

	admin := user.RequireRoles(user.RoleAdmin)
	app.Post("/api/v1/admin/product", admin, h.createProduct)
	app.Put("/api/v1/admin/product/:id<[0-9]+>", admin, h.updateProduct)
	app.Delete("/api/v1/admin/product/:id<[0-9]+>", admin, h.deleteProduct)
	app.Delete("/api/v1/admin/product/:id<[0-9]+>/review/:reviewId<[0-9]+>", admin, h.deleteReview)
}

const defaultPageSize = 12

func (h *Handler) getProducts(c *fiber.Ctx) error {
	var products []Product
	if category := c.Query("category"); category != "" {
		products = h.service.ListByCategory(category)
	} else {
		products = h.service.List()
	}

	limit := defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}

	count := len(products)
	totalPages := (count + limit - 1) / limit
	start := (page - 1) * limit
	if start > count {
		start = count
	}
	end := start + limit
	if end > count {
		end = count
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"products":    products[start:end],
		"count":       count,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}
	return c.JSON(fiber.Map{"success": true, "product": p})
}

func (h *Handler) getSubcategories(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Category is required"})
	}

	subcategories, err := h.service.Subcategories(category)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "subcategories": subcategories})
}

func (h *Handler) getReviews(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product id"})
	}

	reviews, err := h.service.ListReviews(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "reviews": reviews})
}

type reviewRequest struct {
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handler) upsertReview(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	payload := new(reviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.Rating < 1 || payload.Rating > 5 || payload.Comment == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "productId, rating (1-5) and comment are required"})
	}

	name, err := h.names.UserName(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	rev, err := h.service.UpsertReview(Review{
		ProductID: payload.ProductID,
		UserID:    userID,
		Name:      name,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	h.flushCatalog()
	return c.JSON(fiber.Map{"success": true, "review": rev})
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Description == "" {
		errs["description"] = "description is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if p.Category == "" {
		errs["category"] = "category is required"
	}
	if p.Stock < 0 {
		errs["stock"] = "stock must be >= 0"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	h.flushCatalog()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "errors": ves})
	}

	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(id, *p)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	h.flushCatalog()
	return c.JSON(fiber.Map{"success": true, "product": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}
	h.flushCatalog()
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

func (h *Handler) deleteReview(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	reviewID, err := strconv.Atoi(c.Params("reviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if err := h.service.DeleteReview(productID, reviewID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Review not found"})
	}
	h.flushCatalog()
	return c.JSON(fiber.Map{"success": true, "message": "Review deleted successfully"})
}
