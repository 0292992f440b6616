package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weatherflash/weatherflash-backend-go/internal/config"
	"github.com/weatherflash/weatherflash-backend-go/internal/handler"
	"github.com/weatherflash/weatherflash-backend-go/internal/middleware"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Station   *handler.StationHandler
	Dashboard *handler.DashboardHandler
	Summary   *handler.SummaryHandler
}

// SetupRouter builds the Gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, time.Duration(cfg.RateWindowSeconds)*time.Second))

	// CORS for the browser dashboard
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "WeatherFlash backend is running",
		})
	})

	api := r.Group("/api/v1")
	{
		stations := api.Group("/stations")
		{
			stations.GET("", h.Station.ListStations)
			stations.GET("/:station/range", h.Station.GetDateRange)
			stations.GET("/:station/dashboard", h.Dashboard.GetDashboard)
			stations.GET("/:station/histogram", h.Dashboard.GetHistogram)
			stations.GET("/:station/summary", h.Summary.GetSummary)

			stations.POST("/:station/observations",
				middleware.Auth(cfg.JWTSecret),
				h.Station.ImportObservations)
		}
	}

	return r
}
