package commands

import (
	"fmt"
	"time"

	"dj-booking-sync/config"
	"dj-booking-sync/constants"
	"dj-booking-sync/middleware"

	"github.com/spf13/cobra"
)

func NewIssueTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		events  bool
	)

	cmd := &cobra.Command{
		Use:          "issue-token",
		Short:        "Print a bearer token for the admin API signed with ADMIN_SECRET",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			permissions := constants.AdminPermissions
			if events {
				permissions = []string{constants.PermEventsPublish}
			}
			token, err := middleware.IssueToken(cfg.App.AdminSecret, subject, permissions, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	cmd.Flags().BoolVar(&events, "events-only", false, "only allow publishing booking lifecycle events")

	return cmd
}
