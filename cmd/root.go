package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cfgpkg "github.com/weatherflash/weatherflash-backend-go/internal/config"
	"github.com/weatherflash/weatherflash-backend-go/internal/fields"
)

var (
	cfgFile string
	cfg     *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "weatherflash",
	Short: "WeatherFlash backend: historical weather histograms per station",
	Long: `WeatherFlash serves adaptive histograms of historical daily weather
observations, highlighting where a selected date falls within the
distribution. Observations are imported from daily CSV exports and stored
in SQLite.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./weatherflash.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to load config:", err)
		os.Exit(1)
	}
	cfg = c
}

// loadCatalog resolves the field catalog from config, falling back to the
// built-in ASOS catalog.
func loadCatalog() (*fields.Catalog, error) {
	if cfg.FieldsFile == "" {
		return fields.Default(), nil
	}
	return fields.Load(cfg.FieldsFile)
}
