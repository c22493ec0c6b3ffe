package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/pantry"
)

// alertResult is the JSON output of the alert command.
type alertResult struct {
	To    string `json:"to"`
	Items int    `json:"items"`
	Sent  bool   `json:"sent"`
}

func (a *app) newAlertCmd() *cobra.Command {
	var (
		to   string
		days int
	)
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Email the items expiring soon",
		Long: `Alert emails the list of items expiring within the horizon to one address.
Nothing is sent when no item is expiring. The sender address and password
come from EMAIL_ADDRESS and EMAIL_PASSWORD, read from the environment or a
.env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("days") {
				days = a.cfg.HorizonDays
			}
			// Credentials are checked before the store is opened.
			alerter, err := a.newAlerter(ctx, a.cfg.Notify)
			if err != nil {
				return err
			}
			svc, err := a.service(ctx, pantry.WithAlerter(alerter))
			if err != nil {
				return err
			}
			n, err := svc.SendAlert(ctx, to, days)
			if err != nil {
				return err
			}
			if n == 0 {
				a.view.Status("No items expiring soon. No email sent.")
			} else {
				a.view.Status("Expiration alert email sent to %s (%d items).", to, n)
			}
			return a.view.Value(alertResult{To: to, Items: n, Sent: n > 0})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient email address (required)")
	cmd.Flags().IntVar(&days, "days", 0, "horizon in days (default from horizon_days)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
