package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/registreehq/registree-api/internal/dto"
)

// respond writes the success envelope shared by every operation.
func respond(c *fiber.Ctx, code int, message string, data any) error {
	return c.Status(code).JSON(dto.BaseResponse{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}
