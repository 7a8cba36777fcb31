package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
	"github.com/registreehq/registree-api/internal/middleware"
	"github.com/registreehq/registree-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	data, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Login successful", data)
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	data, err := h.authService.RefreshToken(c.Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Token refreshed", data)
}
