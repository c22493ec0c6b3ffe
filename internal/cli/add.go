package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) newAddCmd() *cobra.Command {
	var item, expires string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food item with its expiration date",
		Example: `  pantry add --item Milk --expires 2024-01-01
  pantry add --item "Peanut butter" --expires 2025-05-05 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			table, err := svc.Add(cmd.Context(), item, expires)
			if err != nil {
				return err
			}
			a.view.Status("%s added successfully!", item)
			return a.view.Value(table)
		},
	}
	cmd.Flags().StringVar(&item, "item", "", "item name (required)")
	cmd.Flags().StringVar(&expires, "expires", "", "expiration date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("expires")
	return cmd
}
