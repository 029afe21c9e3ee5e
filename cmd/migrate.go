package cmd

import (
	"context"
	"fmt"

	"github.com/horsepowerelectrical/contact-api/internal/config"
	"github.com/horsepowerelectrical/contact-api/internal/db"
	"github.com/horsepowerelectrical/contact-api/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the contact_submissions table and its indexes (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Driver == config.DriverPostgREST {
			return fmt.Errorf("the %s driver cannot run DDL: apply internal/db/migrations/001_init.postgres.sql "+
				"in the Supabase SQL editor, or set store.driver=postgres with database.dsn", config.DriverPostgREST)
		}

		sqlDB, err := openSQL(cfg)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sqlDB.Close()

		n, err := db.Migrate(context.Background(), sqlDB)
		if err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}

		logger.Log.Info("migration complete", zap.String("driver", cfg.Store.Driver), zap.Int("statements", n))
		return nil
	},
}
