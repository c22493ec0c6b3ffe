package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/pantry"
	"github.com/mesh-intelligence/pantry/internal/shell"
)

func (a *app) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runShell,
	}
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := []pantry.Option{
		pantry.WithAlerterSetup(func(ctx context.Context) (pantry.Alerter, error) {
			return a.newAlerter(ctx, a.cfg.Notify)
		}),
	}
	// Recipes stay unavailable without an API key; the menu reports it when chosen.
	if finder, err := a.recipeFinder(); err == nil {
		opts = append(opts, pantry.WithRecipeFinder(finder))
	} else {
		a.log.Printf("recipes disabled: %v", err)
	}

	svc, err := a.service(ctx, opts...)
	if err != nil {
		return err
	}
	sh := shell.New(svc, cmd.InOrStdin(), cmd.OutOrStdout(),
		shell.WithHorizon(a.cfg.HorizonDays),
		shell.WithRecipeLimit(a.cfg.Recipes.Limit),
	)
	return sh.Run(ctx)
}
