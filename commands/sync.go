package commands

import (
	"fmt"

	"dj-booking-sync/container"

	"github.com/spf13/cobra"
)

func NewSyncAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "sync-all",
		Short:        "Sync every booking that is missing a CRM contact or opportunity",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			c := container.NewContainer(cfg, db)
			if !c.CRMSync.Configured() {
				return fmt.Errorf("GoHighLevel is not configured: set GHL_API_KEY and GHL_LOCATION_ID")
			}

			result := c.CRMSync.SyncAllBookings(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d bookings. %d failed.\n", result.Synced, result.Failed)
			if result.Failed > 0 {
				return fmt.Errorf("%d booking(s) failed to sync", result.Failed)
			}
			return nil
		},
	}
}

func NewTestConnectionCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "test-connection",
		Short:        "Verify the GoHighLevel credentials",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			c := container.NewContainer(cfg, db)

			location, err := c.CRMSync.TestConnection(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connection successful. Location: %s (%s)\n", location.Name, location.ID)
			return nil
		},
	}
}
