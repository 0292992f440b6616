package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weatherflash/weatherflash-backend-go/internal/database"
	"github.com/weatherflash/weatherflash-backend-go/internal/importer"
	"github.com/weatherflash/weatherflash-backend-go/internal/repository"
)

var (
	importStation string
	importFile    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a daily observation CSV export for a station",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importStation, "station", "s", "", "station code (required)")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "path to the daily CSV export (required)")
	importCmd.MarkFlagRequired("station")
	importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("load field catalog: %w", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.Close()

	repo := repository.NewObservationRepository(database.GetDB())
	imp := importer.New(catalog, repo)

	report, err := imp.ImportFile(importStation, importFile)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d rows (%d values, %d skipped) for station %s\n",
		report.Rows, report.Values, report.SkippedRows, report.Station)
	return nil
}
