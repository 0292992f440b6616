package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weatherflash/weatherflash-backend-go/internal/service"
	"github.com/weatherflash/weatherflash-backend-go/pkg/response"
)

// SummaryHandler handles HTTP requests for selected-date summaries.
type SummaryHandler struct {
	service *service.SummaryService
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// GetSummary handles GET /api/v1/stations/:station/summary
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	date, ok := queryDate(c)
	if !ok {
		return
	}
	window, ok := queryWindow(c)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(c.Param("station"), date, window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, summary)
}
