package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowgrid/flowgrid-api/internal/application/analytics"
	"github.com/flowgrid/flowgrid-api/internal/application/dto"
)

// DashboardHandler maneja el panel principal y los reportes (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Métricas del panel principal
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// GetAnalytics godoc
// @Summary      Reportes de negocio
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Inicio del rango (RFC 3339)"
// @Param        endDate    query  string  false  "Fin del rango (RFC 3339)"
// @Success      200  {object}  dto.DataResponse
// @Router       /api/dashboard/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_QUERY", "query inválida"))
	}
	out, err := h.uc.GetAnalytics(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}
