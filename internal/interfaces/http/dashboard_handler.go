package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/jprint-api/internal/application/analytics"
)

// DashboardHandler maneja el panel del vendedor.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ganancias, cola pendiente y ventas del día y del mes.
// Las fechas se calculan en el servidor.
//
// @Summary      Resumen del panel (vendedor)
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
