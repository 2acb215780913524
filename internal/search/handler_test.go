package search

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

func setupSearchApp() *fiber.App {
	app := fiber.New()
	NewHandler(NewService(product.NewService(catalog()))).RegisterPublicRoutes(app)
	return app
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	app := setupSearchApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/search", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", res.StatusCode)
	}

	var body map[string]any
	json.NewDecoder(res.Body).Decode(&body)
	if body["message"] != "Search query is required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestSearchEndpointReturnsRankedProducts(t *testing.T) {
	app := setupSearchApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/search?query=sweater", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Success  bool              `json:"success"`
		Products []product.Product `json:"products"`
		Count    int               `json:"count"`
		Query    string            `json:"query"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Count != len(body.Products) || body.Query != "sweater" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(body.Products) == 0 || body.Products[0].Name != "Cozy Sweater" {
		t.Fatalf("expected Cozy Sweater first, got %+v", body.Products)
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	app := setupSearchApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/search/suggestions?query=scarv", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Success     bool     `json:"success"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success {
		t.Fatalf("expected success, got %+v", body)
	}
}
