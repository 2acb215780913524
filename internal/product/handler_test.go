package product

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type stubNames struct{}

func (stubNames) UserName(id int) (string, error) { return "Test User", nil }

func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Cozy Sweater", Description: "warm", Price: 45, Category: "sweaters", Stock: 5},
		{ID: 2, Name: "Wool Scarf", Description: "soft", Price: 20, Category: "scarves", Stock: 3},
		{ID: 3, Name: "Knit Hat", Description: "snug", Price: 15, Category: "hats", Stock: 2},
	}
}

// claimsMiddleware mimics the JWT middleware by planting a parsed token.
func claimsMiddleware(c *fiber.Ctx) error {
	if v := c.Get("X-User-ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err == nil {
			claims := jwt.MapClaims{"user_id": id}
			if role := c.Get("X-Role"); role != "" {
				claims["role"] = role
			}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
	}
	return c.Next()
}

type recordingFlusher struct {
	prefixes []string
}

func (f *recordingFlusher) Flush(prefix string) error {
	f.prefixes = append(f.prefixes, prefix)
	return nil
}

func setupProductApp() *fiber.App {
	return setupProductAppWithFlusher(nil)
}

func setupProductAppWithFlusher(flusher Flusher) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seedProducts())), stubNames{}, flusher)
	h.RegisterPublicRoutes(app)
	app.Use(claimsMiddleware)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetProductsPagination(t *testing.T) {
	app := setupProductApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?limit=2&page=2", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Products    []Product `json:"products"`
		Count       int       `json:"count"`
		TotalPages  int       `json:"totalPages"`
		CurrentPage int       `json:"currentPage"`
	}
	json.NewDecoder(res.Body).Decode(&body)
	if body.Count != 3 || body.TotalPages != 2 || body.CurrentPage != 2 {
		t.Fatalf("unexpected pagination: %+v", body)
	}
	if len(body.Products) != 1 || body.Products[0].ID != 3 {
		t.Fatalf("expected page 2 to hold product 3, got %+v", body.Products)
	}
}

func TestGetProductByID(t *testing.T) {
	app := setupProductApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/product/2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res404, _ := app.Test(httptest.NewRequest("GET", "/api/v1/product/999", nil))
	if res404.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", res404.StatusCode)
	}
}

func TestUpsertReviewUpdatesRatings(t *testing.T) {
	app := setupProductApp()

	req := httptest.NewRequest("PUT", "/api/v1/review", strings.NewReader(`{"productId":1,"rating":4,"comment":"lovely"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	// the product now carries the review in its aggregates
	res2, _ := app.Test(httptest.NewRequest("GET", "/api/v1/product/1", nil))
	var body struct {
		Product Product `json:"product"`
	}
	json.NewDecoder(res2.Body).Decode(&body)
	if body.Product.NumberOfReviews != 1 || body.Product.Ratings != 4 {
		t.Fatalf("expected ratings refresh, got %+v", body.Product)
	}
}

func TestUpsertReviewRequiresAuth(t *testing.T) {
	app := setupProductApp()

	req := httptest.NewRequest("PUT", "/api/v1/review", strings.NewReader(`{"productId":1,"rating":4,"comment":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", res.StatusCode)
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	app := setupProductApp()

	req := httptest.NewRequest("POST", "/api/v1/admin/product", strings.NewReader(`{"name":"x","description":"y","price":1,"category":"hats"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	req.Header.Set("X-Role", "user")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}
}

func TestAdminCreateProduct(t *testing.T) {
	app := setupProductApp()

	req := httptest.NewRequest("POST", "/api/v1/admin/product", strings.NewReader(`{"name":"Baby Blanket","description":"soft","price":60,"category":"blankets","stock":4}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var body struct {
		Product Product `json:"product"`
	}
	json.NewDecoder(res.Body).Decode(&body)
	if body.Product.ID == 0 || body.Product.Name != "Baby Blanket" {
		t.Fatalf("unexpected product: %+v", body.Product)
	}
}

func TestCatalogWritesFlushCachedResponses(t *testing.T) {
	flusher := &recordingFlusher{}
	app := setupProductAppWithFlusher(flusher)

	req := httptest.NewRequest("PUT", "/api/v1/admin/product/1", strings.NewReader(`{"name":"Cozy Sweater","description":"warm","price":50,"category":"sweaters","stock":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	want := []string{"/api/v1/products", "/api/v1/product/", "/api/v1/search"}
	if len(flusher.prefixes) != len(want) {
		t.Fatalf("expected %v flushed, got %v", want, flusher.prefixes)
	}
	for i, prefix := range want {
		if flusher.prefixes[i] != prefix {
			t.Errorf("position %d: expected %s flushed, got %s", i, prefix, flusher.prefixes[i])
		}
	}

	// review writes change ratings, so they flush too
	flusher.prefixes = nil
	review := httptest.NewRequest("PUT", "/api/v1/review", strings.NewReader(`{"productId":1,"rating":5,"comment":"great"}`))
	review.Header.Set("Content-Type", "application/json")
	review.Header.Set("X-User-ID", "42")
	res2, err := app.Test(review)
	if err != nil {
		t.Fatal(err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("review write failed with %d", res2.StatusCode)
	}
	if len(flusher.prefixes) != len(want) {
		t.Fatalf("expected review write to flush %v, got %v", want, flusher.prefixes)
	}

	// reads never flush
	flusher.prefixes = nil
	if _, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil)); err != nil {
		t.Fatal(err)
	}
	if len(flusher.prefixes) != 0 {
		t.Fatalf("expected no flush on reads, got %v", flusher.prefixes)
	}
}

func TestAdminCreateProductValidation(t *testing.T) {
	app := setupProductApp()

	req := httptest.NewRequest("POST", "/api/v1/admin/product", strings.NewReader(`{"price":-1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", res.StatusCode)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	json.NewDecoder(res.Body).Decode(&body)
	for _, field := range []string{"name", "description", "price", "category"} {
		if body.Errors[field] == "" {
			t.Errorf("expected validation error for %s, got %v", field, body.Errors)
		}
	}
}
