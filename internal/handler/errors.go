package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weatherflash/weatherflash-backend-go/internal/histogram"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"
	"github.com/weatherflash/weatherflash-backend-go/pkg/response"
)

// respondError maps the domain error taxonomy onto HTTP statuses:
// unknown fields are client mistakes, missing data is a 404, anything
// else is a server fault.
func respondError(c *gin.Context, err error) {
	var configErr *histogram.ConfigurationError
	var dataErr *histogram.InsufficientDataError

	switch {
	case errors.As(err, &configErr):
		response.BadRequest(c, configErr.Error())
	case errors.As(err, &dataErr):
		response.NotFound(c, dataErr.Error())
	default:
		response.InternalError(c, err.Error())
	}
}

// queryDate parses the optional "date" query parameter. A missing
// parameter yields the zero time, which services resolve to the station's
// latest day. ok is false when the parameter is present but malformed.
func queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, true
	}
	date, err := time.Parse(series.DateFormat, raw)
	if err != nil {
		response.BadRequest(c, "invalid date, expected "+series.DateFormat)
		return time.Time{}, false
	}
	return date, true
}

// queryWindow parses the optional "window" query parameter, defaulting to
// the month-day-across-years window.
func queryWindow(c *gin.Context) (models.Window, bool) {
	window, err := models.ParseWindow(c.Query("window"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return "", false
	}
	return window, true
}
