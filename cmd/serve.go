package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/weatherflash/weatherflash-backend-go/internal/api"
	"github.com/weatherflash/weatherflash-backend-go/internal/database"
	"github.com/weatherflash/weatherflash-backend-go/internal/handler"
	"github.com/weatherflash/weatherflash-backend-go/internal/repository"
	"github.com/weatherflash/weatherflash-backend-go/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("load field catalog: %w", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.Close()

	repo := repository.NewObservationRepository(database.GetDB())

	stationService := service.NewStationService(repo, catalog)
	dashboardService := service.NewDashboardService(repo, catalog)
	summaryService := service.NewSummaryService(repo, catalog)

	router := api.SetupRouter(cfg, api.Handlers{
		Station:   handler.NewStationHandler(stationService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Summary:   handler.NewSummaryHandler(summaryService),
	})

	log.Printf("Server starting on %s", cfg.ListenAddr)
	return router.Run(cfg.ListenAddr)
}
