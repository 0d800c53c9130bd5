package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	config "taskflow.com/taskflow/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()
		if cfg.DatabaseDriver == config.DriverMemory {
			return fmt.Errorf("nothing to migrate for the %s driver", config.DriverMemory)
		}

		// NewDatabaseClient migrates on open.
		db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		logger.Info("schema up to date", "db_driver", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
