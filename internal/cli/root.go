// Package cli implements the pantry command-line interface. With no
// subcommand the interactive menu runs.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/notify"
	"github.com/mesh-intelligence/pantry/internal/pantry"
	"github.com/mesh-intelligence/pantry/internal/recipes"
	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/internal/view"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
}

// app carries flags, config and the attached store from PersistentPreRunE
// to the subcommands.
type app struct {
	flags rootFlags

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	running   bool
	configDir string
	cfg       types.Config
	store     types.Store
	log       *log.Logger
	view      *view.Renderer

	newStore   func(backend string) (types.Store, error)
	newAlerter func(ctx context.Context, cfg types.NotifyConfig) (pantry.Alerter, error)
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:       in,
		out:      out,
		errOut:   errOut,
		log:      log.New(io.Discard, "", 0),
		newStore: store.New,
		newAlerter: func(ctx context.Context, cfg types.NotifyConfig) (pantry.Alerter, error) {
			return notify.Setup(ctx, cfg)
		},
	}
}

// NewRootCmd creates the top-level "pantry" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newApp(os.Stdin, os.Stdout, os.Stderr).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry",
		Short: "Track pantry expiration dates and find recipes",
		Long: `Pantry keeps a table of food items and their expiration dates, lists what
is expiring soon, suggests recipes from what you have, and emails alerts.

Run without a subcommand to open the interactive menu.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runShell,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (env "+envConfigDirHint+")")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory for local backends (env "+envDataDirHint+")")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: jsonl, sqlite, sheets, s3, postgres")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(
		a.newShellCmd(),
		a.newAddCmd(),
		a.newListCmd(),
		a.newExpiringCmd(),
		a.newRecipesCmd(),
		a.newAlertCmd(),
		a.newInitCmd(),
		newVersionCmd(),
	)
	a.markRunning(root)
	return root
}

// markRunning wraps every RunE so that run can tell usage and configuration
// failures apart from failures inside a command.
func (a *app) markRunning(cmd *cobra.Command) {
	if body := cmd.RunE; body != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			a.running = true
			return body(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		a.markRunning(sub)
	}
}

// setup loads the configuration. The store is attached on first use.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.flags.verbose {
		a.log = log.New(a.errOut, "pantry: ", log.Ltime)
	}
	a.view = view.New(cmd.OutOrStdout(), a.flags.jsonMode)
	if cmd.Name() == "version" {
		return nil
	}

	cfg, configDir, err := loadConfig(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.configDir = configDir
	a.log.Printf("config %s, backend %s, data %s", configDir, cfg.Backend, cfg.DataDir)
	return nil
}

// attach creates and attaches the configured store once per run.
func (a *app) attach(ctx context.Context) (types.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := a.newStore(a.cfg.Backend)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(ctx, a.cfg); err != nil {
		return nil, fmt.Errorf("attach %s store: %w", a.cfg.Backend, err)
	}
	a.log.Printf("attached %s store", a.cfg.Backend)
	a.store = s
	return s, nil
}

// detach releases the store if one was attached.
func (a *app) detach() {
	if a.store == nil {
		return
	}
	if err := a.store.Detach(); err != nil {
		a.log.Printf("detach %s store: %v", a.cfg.Backend, err)
	}
	a.store = nil
}

// service attaches the store and returns a Service over it.
func (a *app) service(ctx context.Context, opts ...pantry.Option) (*pantry.Service, error) {
	s, err := a.attach(ctx)
	if err != nil {
		return nil, err
	}
	return pantry.NewService(s, opts...), nil
}

// recipeFinder builds the search client and matcher from config.
func (a *app) recipeFinder() (*recipes.Matcher, error) {
	client, err := recipes.NewClient(a.cfg.Recipes)
	if err != nil {
		return nil, err
	}
	return recipes.NewMatcher(client, func(err error) {
		a.log.Printf("skip recipe: %v", err)
	}), nil
}

// run executes the command line and maps the outcome to an exit code.
// Failures before a command body starts (flags, arguments, configuration)
// and validation or configuration errors are user errors.
func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	a.detach()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(a.errOut, "Error:", err)
	if !a.running || types.IsUserError(err) {
		return exitUserError
	}
	return exitSysError
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(newApp(os.Stdin, os.Stdout, os.Stderr).run(context.Background(), os.Args[1:]))
}
