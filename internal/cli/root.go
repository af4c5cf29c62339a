package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"todos-cli/internal/api"
	"todos-cli/internal/config"
	"todos-cli/internal/controller"
	"todos-cli/internal/format"
	"todos-cli/internal/logging"
	"todos-cli/internal/store"
	"todos-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigDir  string
	BaseURL    string
	LogLevel   string
	LogFormat  string
	Timeout    time.Duration
	PrettyJSON bool
	Format     string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todos",
		Short:        "To-do list client for the playground REST API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todos

  # Scriptable commands
  todos login alice
  todos add "buy milk"
  todos done 1
  todos list --format text

  # Run a local stand-in for the REST API
  todos serve --addr :8080
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("TODOS_CONFIG_DIR", ""), "Directory holding config.toml, the session database and the TUI log (default ~/.todos)")
	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", "", "Base URL of the to-do REST API (overrides TODOS_BASE_URL and config.toml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFormat, "log-format", "", "Log format (text|json|logfmt)")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 0, "HTTP timeout per request (e.g. 5s)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODOS_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app, true))
	cmd.AddCommand(newDoneCmd(app, false))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newRefreshCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// loadConfig layers command-line flags over config.Load.
func (app *App) loadConfig(cmd *cobra.Command) error {
	// Checked up front so a bad --format never follows a server-side change.
	if err := format.Validate(app.Format); err != nil {
		return err
	}
	cfg, err := config.Load(app.ConfigDir)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = app.BaseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = app.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = app.LogFormat
	}
	if flags.Changed("timeout") {
		cfg.Timeout = app.Timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg
	return nil
}

func (app *App) logOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(app.cfg.LogLevel)
	opts.Formatter = logging.ParseFormat(app.cfg.LogFormat)
	return opts
}

func (app *App) stderrLogger(cmd *cobra.Command) *log.Logger {
	return logging.New(cmd.ErrOrStderr(), app.logOptions())
}

func (app *App) apiClient(logger *log.Logger) *api.Client {
	return api.New(app.cfg.BaseURL, api.WithTimeout(app.cfg.Timeout), api.WithLogger(logger))
}

// openSession opens the persisted session database. The caller closes it.
func (app *App) openSession(ctx context.Context) (store.Session, error) {
	if err := app.cfg.EnsureDir(); err != nil {
		return nil, err
	}
	sess := store.NewSQLiteSession(app.cfg.SessionPath())
	if err := sess.Init(ctx); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return sess, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, f, err := logging.OpenFile(app.cfg.LogPath(), app.logOptions())
	if err != nil {
		return err
	}
	defer f.Close()

	sess, err := app.openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	deps := controller.Deps{API: app.apiClient(logger), Session: sess, Logger: logger}
	return tui.Run(ctx, deps)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: v}, app.Format, app.PrettyJSON)
}

func writeOutWithHints(cmd *cobra.Command, app *App, v any, hints ...string) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: v, Hints: hints}, app.Format, app.PrettyJSON)
}

// errAction reports the failure a controller dispatch left in the state.
func errAction(s controller.State) error {
	if s.Err == "" {
		return nil
	}
	return errors.New(s.Err)
}
