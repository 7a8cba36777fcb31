package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/registreehq/registree-api/internal/dto"
)

type HealthHandler struct {
	startedAt time.Time
	pingDB    func() error
}

func NewHealthHandler(pingDB func() error) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), pingDB: pingDB}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	overall := "OK"
	status := fiber.StatusOK
	if err := h.pingDB(); err != nil {
		dbStatus = "unreachable"
		overall = "degraded"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.HealthResponse{
		Status:    overall,
		Uptime:    time.Since(h.startedAt).String(),
		Timestamp: time.Now().UnixMilli(),
		DB:        dbStatus,
	})
}
