package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weatherflash/weatherflash-backend-go/internal/service"
	"github.com/weatherflash/weatherflash-backend-go/pkg/response"
)

// DashboardHandler handles HTTP requests for histogram dashboards.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/v1/stations/:station/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	date, ok := queryDate(c)
	if !ok {
		return
	}
	window, ok := queryWindow(c)
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(c.Param("station"), date, window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dashboard)
}

// GetHistogram handles GET /api/v1/stations/:station/histogram
func (h *DashboardHandler) GetHistogram(c *gin.Context) {
	field := c.Query("field")
	if field == "" {
		response.BadRequest(c, "field is required")
		return
	}
	date, ok := queryDate(c)
	if !ok {
		return
	}
	window, ok := queryWindow(c)
	if !ok {
		return
	}

	result, err := h.service.GetHistogram(c.Param("station"), field, date, window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}
