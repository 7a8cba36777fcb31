package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
	"github.com/registreehq/registree-api/internal/middleware"
	"github.com/registreehq/registree-api/internal/services"
)

type UserHandler struct {
	userService         *services.UserService
	verificationService *services.VerificationService
}

func NewUserHandler(userService *services.UserService, verificationService *services.VerificationService) *UserHandler {
	return &UserHandler{userService: userService, verificationService: verificationService}
}

func (h *UserHandler) SignUp(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	data, err := h.userService.Create(c.Context(), &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Account created", data)
}

func (h *UserHandler) ChangeAccountPassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	userID := middleware.CurrentUserID(c)
	if err := h.userService.ChangeAccountPassword(c.Context(), &req, userID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Password changed", nil)
}

func (h *UserHandler) FindByID(c *fiber.Ctx) error {
	user, err := h.userService.FindByID(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "User found", user)
}

// FindProfileByToken resolves the account behind the presented bearer token.
func (h *UserHandler) FindProfileByToken(c *fiber.Ctx) error {
	user, err := h.userService.FindByID(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "User found", user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PaginationRequest
	if err := c.QueryParser(&page); err != nil {
		return apperr.BadRequest("Invalid pagination parameters")
	}
	users, control, err := h.userService.List(c.Context(), &page)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.ListResponse{
		Success:           true,
		Code:              fiber.StatusOK,
		Message:           "Users found",
		Data:              users,
		PaginationControl: control,
	})
}

func (h *UserHandler) ResendOTP(c *fiber.Ctx) error {
	if _, err := h.verificationService.ResendCode(c.Context(), c.Params("userId")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Token has been resent", nil)
}

func (h *UserHandler) VerifySignupCode(c *fiber.Ctx) error {
	code := c.Params("uniqueVerificationCode")
	userID := middleware.CurrentUserID(c)
	if err := h.verificationService.VerifySignupCode(c.Context(), code, userID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Code verified", nil)
}

func (h *UserHandler) InitiateForgotPassword(c *fiber.Ctx) error {
	if err := h.verificationService.InitiateForgotPassword(c.Context(), c.Params("email")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Confirmation email sent", nil)
}

func (h *UserHandler) FinalizeForgotPassword(c *fiber.Ctx) error {
	code := c.Params("uniqueVerificationCode")
	if err := h.verificationService.FinalizeForgotPassword(c.Context(), code); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Unique token is valid", nil)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	err := h.verificationService.ChangePasswordWithCode(c.Context(), req.UniqueVerificationCode, req.NewPassword)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Password changed successfully", nil)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if err := h.userService.Update(c.Context(), &req); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Updated", nil)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Context(), []string{c.Params("userId")}); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "User deleted", nil)
}

func (h *UserHandler) DeleteByEmail(c *fiber.Ctx) error {
	if err := h.userService.DeleteByEmail(c.Context(), c.Params("email")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "User deleted", nil)
}
