package user

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func setupUserApp(seed []User) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)), testSecret, time.Hour)
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if role := c.Get("X-Role"); role != "" {
					claims["role"] = role
				}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupUserApp(nil)

	req := httptest.NewRequest("POST", "/api/v1/register",
		strings.NewReader(`{"name":"Janani","email":"janani@example.com","password":"knitstore123"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var reg struct {
		Success bool   `json:"success"`
		User    User   `json:"user"`
		Token   string `json:"token"`
	}
	json.NewDecoder(res.Body).Decode(&reg)
	if !reg.Success || reg.Token == "" {
		t.Fatalf("expected a token on registration, got %+v", reg)
	}
	if reg.User.Password != "" {
		t.Error("password must never be returned")
	}
	if reg.User.Role != RoleUser {
		t.Errorf("new accounts must start as customers, got %q", reg.User.Role)
	}

	login := httptest.NewRequest("POST", "/api/v1/login",
		strings.NewReader(`{"email":"janani@example.com","password":"knitstore123"}`))
	login.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(login)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on login, got %d", res2.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupUserApp(nil)

	body := `{"name":"A","email":"dup@example.com","password":"password1"}`
	req := httptest.NewRequest("POST", "/api/v1/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	app.Test(req)

	req2 := httptest.NewRequest("POST", "/api/v1/register", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req2)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res.StatusCode)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := setupUserApp(nil)

	req := httptest.NewRequest("POST", "/api/v1/register",
		strings.NewReader(`{"name":"A","email":"a@example.com","password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", res.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupUserApp(nil)

	req := httptest.NewRequest("POST", "/api/v1/register",
		strings.NewReader(`{"name":"B","email":"b@example.com","password":"password1"}`))
	req.Header.Set("Content-Type", "application/json")
	app.Test(req)

	login := httptest.NewRequest("POST", "/api/v1/login",
		strings.NewReader(`{"email":"b@example.com","password":"wrongwrong"}`))
	login.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(login)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res.StatusCode)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	app := setupUserApp([]User{{ID: 1, Name: "C", Email: "c@example.com"}})

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/profile", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("X-User-ID", "1")
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with token, got %d", res2.StatusCode)
	}
}

func TestAdminRoleUpdate(t *testing.T) {
	app := setupUserApp([]User{
		{ID: 1, Name: "Admin", Email: "admin@example.com", Role: RoleAdmin},
		{ID: 2, Name: "Customer", Email: "cust@example.com", Role: RoleUser},
	})

	req := httptest.NewRequest("PUT", "/api/v1/admin/user/2", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	bad := httptest.NewRequest("PUT", "/api/v1/admin/user/2", strings.NewReader(`{"role":"superuser"}`))
	bad.Header.Set("Content-Type", "application/json")
	bad.Header.Set("X-User-ID", "1")
	bad.Header.Set("X-Role", "admin")
	res2, _ := app.Test(bad)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", res2.StatusCode)
	}

	forbidden := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	forbidden.Header.Set("X-User-ID", "2")
	forbidden.Header.Set("X-Role", "user")
	res3, _ := app.Test(forbidden)
	if res3.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer on admin route, got %d", res3.StatusCode)
	}
}

func TestIssueTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(User{ID: 9, Email: "t@example.com", Role: RoleUser}, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token failed to parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"].(float64) != 9 || claims["role"] != RoleUser {
		t.Fatalf("unexpected claims: %v", claims)
	}
}
