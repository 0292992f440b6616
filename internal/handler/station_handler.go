package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weatherflash/weatherflash-backend-go/internal/service"
	"github.com/weatherflash/weatherflash-backend-go/pkg/response"
)

// StationHandler handles HTTP requests for station metadata and imports.
type StationHandler struct {
	service *service.StationService
}

// NewStationHandler creates a new station handler.
func NewStationHandler(service *service.StationService) *StationHandler {
	return &StationHandler{service: service}
}

// ListStations handles GET /api/v1/stations
func (h *StationHandler) ListStations(c *gin.Context) {
	stations, err := h.service.Stations()
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}

// GetDateRange handles GET /api/v1/stations/:station/range
func (h *StationHandler) GetDateRange(c *gin.Context) {
	dateRange, err := h.service.DateRange(c.Param("station"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dateRange)
}

// ImportObservations handles POST /api/v1/stations/:station/observations
// The request body is a raw daily CSV export.
func (h *StationHandler) ImportObservations(c *gin.Context) {
	report, err := h.service.ImportCSV(c.Param("station"), c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, report)
}
