package otp

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

type Handler struct {
	service   *Service
	jwtSecret string
	jwtTTL    time.Duration
}

func NewHandler(service *Service, jwtSecret string, jwtTTL time.Duration) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// RegisterPublicRoutes wires the OTP endpoints. All of them are public:
// the code itself is the proof of identity.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/otp/send", h.send)
	app.Post("/api/v1/otp/verify", h.verify)
	app.Post("/api/v1/password/reset/otp", h.resetPassword)
}

type sendRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

func (h *Handler) send(c *fiber.Ctx) error {
	payload := new(sendRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "email is required"})
	}
	if payload.Purpose == "" {
		payload.Purpose = PurposeVerification
	}

	if err := h.service.Send(payload.Email, payload.Phone, payload.Purpose); err != nil {
		switch err {
		case ErrInvalidPurpose:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid otp purpose"})
		case user.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No account found for this email"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "OTP sent"})
}

type verifyRequest struct {
	Email   string `json:"email"`
	OTP     string `json:"otp"`
	Purpose string `json:"purpose"`
}

func (h *Handler) verify(c *fiber.Ctx) error {
	payload := new(verifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Email == "" || payload.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "email and otp are required"})
	}
	if payload.Purpose == "" {
		payload.Purpose = PurposeVerification
	}

	switch payload.Purpose {
	case PurposeVerification:
		u, err := h.service.VerifyAccount(payload.Email, payload.OTP)
		if err != nil {
			return otpError(c, err)
		}
		u.Password = ""
		return c.JSON(fiber.Map{"success": true, "message": "Account verified", "user": u})

	case PurposeLogin:
		u, err := h.service.Login(payload.Email, payload.OTP)
		if err != nil {
			return otpError(c, err)
		}
		token, err := user.IssueToken(u, h.jwtSecret, h.jwtTTL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		u.Password = ""
		return c.JSON(fiber.Map{"success": true, "user": u, "token": token})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid otp purpose"})
	}
}

type resetRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(resetRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Email == "" || payload.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "email and otp are required"})
	}
	if len(payload.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "password must be at least 8 characters"})
	}

	if _, err := h.service.ResetPassword(payload.Email, payload.OTP, payload.NewPassword); err != nil {
		return otpError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password reset successfully"})
}

func otpError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrExpired:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "OTP has expired"})
	case ErrTooManyAttempts:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "message": "Too many failed attempts"})
	case ErrInvalidCode:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid OTP"})
	case user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No account found for this email"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
}
