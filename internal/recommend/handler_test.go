package recommend

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/order"
)

func newTestApp(orders *order.InMemoryRepository) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewOrderRepositorySource(orders), seedProducts(), nil))
	h.RegisterPublicRoutes(app)
	return app
}

func getBody(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestRecommendationsUnknownProductReturnsEmptySet(t *testing.T) {
	app := newTestApp(order.NewInMemoryRepository(nil))

	status, body := getBody(t, app, "/api/v1/recommendations/999")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("expected success, got %+v", body)
	}
	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) != 0 {
		t.Fatalf("expected an empty recommendations array, got %+v", body)
	}
}

func TestRecommendationsResponseShape(t *testing.T) {
	app := newTestApp(order.NewInMemoryRepository([]order.Order{
		confirmedOrder(1, 10, 1, 2),
	}))

	status, body := getBody(t, app, "/api/v1/recommendations/1")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) != 1 {
		t.Fatalf("expected one recommendation, got %+v", body)
	}
	if _, present := body["count"]; present {
		t.Fatalf("response carries an extra count field: %+v", body)
	}
}
