package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/J-CamiloG/AppKit-API/internal/api/dto"
	"github.com/J-CamiloG/AppKit-API/internal/service"
	"github.com/J-CamiloG/AppKit-API/internal/validation"
	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

// Success messages for the auth endpoints.
const (
	msgRegistered = "Usuario registrado exitosamente"
	msgLoggedIn   = "Login exitoso"
)

// AuthHandler exposes the register and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload validation.RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("El cuerpo de la petición no es válido", nil)
	}

	user, token, err := h.auth.Register(c.UserContext(), payload)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthSuccessResponse{
		Success: true,
		Message: msgRegistered,
		User:    dto.NewUserResponse(user, token),
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload validation.LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("El cuerpo de la petición no es válido", nil)
	}

	user, token, err := h.auth.Login(c.UserContext(), payload)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthSuccessResponse{
		Success: true,
		Message: msgLoggedIn,
		User:    dto.NewUserResponse(user, token),
	})
}
