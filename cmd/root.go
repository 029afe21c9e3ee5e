package cmd

import (
	"fmt"
	"os"

	"github.com/horsepowerelectrical/contact-api/internal/config"
	"github.com/horsepowerelectrical/contact-api/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     config.Config

	rootCmd = &cobra.Command{
		Use:           "contact-api",
		Short:         "Contact form intake and admin API for Horsepower Electrical",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real env vars win over it
			_ = godotenv.Load()

			c, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if _, err := logger.Init(c.Log.Level, c.Log.Encoding); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			cfg = c
			return nil
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
