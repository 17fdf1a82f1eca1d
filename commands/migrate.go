package commands

import (
	"dj-booking-sync/database"
	"dj-booking-sync/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Create or update the booking, sync log and payment log tables",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			return runMigrations(db)
		},
	}
}

func runMigrations(db *gorm.DB) error {
	logger.Info("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Success("Migration completed successfully")
	return nil
}
