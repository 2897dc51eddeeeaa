package cmd

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

const appName = "reservations"

var configPath string

// Execute runs the CLI; without a subcommand it serves the API.
func Execute() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	serve := serveCmd()

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Restaurant reservations and table seating API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (overrides CONFIG_FILE)")

	cmd.AddCommand(serve, migrateCmd(), seedCmd())
	return cmd
}

// setup loads configuration, applies logging and gin mode, and opens the
// database.
func setup() (*config.Config, *gorm.DB, error) {
	if configPath != "" {
		if err := os.Setenv("CONFIG_FILE", configPath); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	utils.ConfigureLogger(cfg.Log.Level, cfg.Log.Format)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		utils.ErrorLogger.Printf("Error closing database: %v", err)
	}
}
