package cli

import (
	"github.com/spf13/cobra"
)

// initResult is the JSON output of the init command.
type initResult struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
	Backend   string `json:"backend"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize pantry configuration and storage",
		Long: `Init writes a default config.yaml if none exists, then attaches the
configured backend once so that its file, table or credentials are checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.attach(cmd.Context()); err != nil {
				return err
			}
			a.view.Status("Pantry initialized successfully")
			a.view.Status("  config:  %s", a.configDir)
			a.view.Status("  data:    %s", a.cfg.DataDir)
			a.view.Status("  backend: %s", a.cfg.Backend)
			return a.view.Value(initResult{ConfigDir: a.configDir, DataDir: a.cfg.DataDir, Backend: a.cfg.Backend})
		},
	}
}
