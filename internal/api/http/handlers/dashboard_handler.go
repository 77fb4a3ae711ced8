package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados/internal/service"
)

// DashboardHandler serves the manager overview.
type DashboardHandler struct {
	service *service.ChamadoService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(chamadoService *service.ChamadoService) *DashboardHandler {
	return &DashboardHandler{service: chamadoService}
}

// Get GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}
