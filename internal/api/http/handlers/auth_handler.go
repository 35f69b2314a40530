package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookseller-api/internal/api/dto"
	"github.com/spec-kit/bookseller-api/internal/domain"
	"github.com/spec-kit/bookseller-api/internal/service"
	"github.com/spec-kit/bookseller-api/internal/validation"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth      *service.AuthService
	validator *validation.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: authService, validator: validator}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(validation.Create, req); err != nil {
		return err
	}

	if err := h.auth.Register(c.UserContext(), req.Username, req.Password, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(validation.Create, req); err != nil {
		return err
	}

	token, err := h.auth.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}
