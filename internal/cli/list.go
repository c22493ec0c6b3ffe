package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every pantry item in stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			table, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.view.Pantry("Pantry Items (Sorted by Expiration Date):", table, "Pantry is empty.")
		},
	}
}

func (a *app) newExpiringCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "Show items expiring within the horizon",
		Long: `Expiring lists the items whose expiration date falls on or before today
plus the horizon. Already expired items are included. Items with unreadable
dates are left out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.HorizonDays
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			soon, err := svc.Expiring(cmd.Context(), days)
			if err != nil {
				return err
			}
			return a.view.Pantry("Items Expiring Soon:", soon, "No items expiring soon.")
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "horizon in days (default from horizon_days)")
	return cmd
}
