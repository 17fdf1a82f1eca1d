package commands

import (
	"os"

	"dj-booking-sync/config"
	"dj-booking-sync/database"
	"dj-booking-sync/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCommand creates the dj-booking-sync CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dj-booking-sync",
		Short: "Sync DJ bookings to GoHighLevel and take Stripe deposits",
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSyncAllCommand())
	cmd.AddCommand(NewTestConnectionCommand())
	cmd.AddCommand(NewIssueTokenCommand())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		logger.Error("Command failed", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.InitDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
