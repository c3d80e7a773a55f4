// Package cli is the command tree: the interactive view plus scriptable
// subcommands over the same list.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/store/jsonstore"
	"github.com/idilsaglam/todo/internal/store/sqlitestore"
	"github.com/idilsaglam/todo/internal/todos"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/spf13/cobra"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks failures caused by bad arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

type App struct {
	ConfigPath string
	Group      bool
	Yes        bool

	cfg    *config.Config
	log    *log.Logger
	out    io.Writer
	errOut io.Writer
	in     func(prompt string) (string, error)

	// runTUI is swapped in tests.
	runTUI func(ctx context.Context, mgr *todos.Manager, theme string) error
}

// Run builds the command tree, executes args and returns an exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &App{out: stdout, errOut: stderr, runTUI: tui.Run}
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// usageArgs reports argument count mistakes as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err.Error()}
		}
		return nil
	}
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A tiny to-do list: interactive view + scriptable subcommands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive view
  todo

  # Scriptable commands
  todo add "Buy milk"
  todo ls
  todo toggle 1
  todo edit 1 "Buy oat milk"
  todo rm 1
  todo clear --yes
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.ConfigPath, cmd.Flags())
			if err != nil {
				return usageError{err.Error()}
			}
			app.cfg = cfg
			ui.SetTheme(cfg.Theme)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.interactive(cmd.Context())
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "config file (default: ./todo.toml)")
	config.RegisterFlags(pf)

	cmd.AddCommand(
		newLsCmd(app),
		newAddCmd(app),
		newToggleCmd(app),
		newEditCmd(app),
		newRmCmd(app),
		newClearCmd(app),
	)
	return cmd
}

// openStore selects the configured backend.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return store.NewMemory(), nil
	case config.StorageSQLite:
		return sqlitestore.Open(ctx, filepath.Join(cfg.DataDir, sqlitestore.FileName))
	default:
		return jsonstore.Open(cfg.DataDir)
	}
}

func (a *App) logger() *log.Logger {
	if a.log == nil {
		l, err := logging.New(a.errOut, a.cfg.LogLevel)
		if err != nil {
			l = log.New(a.errOut)
		}
		a.log = l
	}
	return a.log
}

// withList opens the store, loads the list and hands it to fn.
func (a *App) withList(ctx context.Context, fn func(*todos.Manager, *textSurface) error) error {
	st, err := openStore(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", a.cfg.Storage, err)
	}
	defer st.Close()

	surf := &textSurface{assumeYes: a.Yes, ask: a.in}
	mgr := todos.New(st,
		todos.WithKey(a.cfg.Key),
		todos.WithSurface(surf),
		todos.WithLogger(a.logger()),
		todos.WithSamples(a.cfg.Samples),
	)
	mgr.Initialize(ctx)
	return fn(mgr, surf)
}

func (a *App) interactive(ctx context.Context) error {
	st, err := openStore(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", a.cfg.Storage, err)
	}
	defer st.Close()

	// The TUI owns the terminal; logs go to a file instead.
	l, closer, err := logging.OpenFile(a.cfg.LogPath(), a.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	l.Info("starting", "storage", a.cfg.Storage, "key", a.cfg.Key)

	mgr := todos.New(st,
		todos.WithKey(a.cfg.Key),
		todos.WithLogger(l),
		todos.WithSamples(a.cfg.Samples),
	)
	return a.runTUI(ctx, mgr, a.cfg.Theme)
}
