package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"folio-cli/internal/config"
	"folio-cli/internal/editor"
	"folio-cli/internal/format"
	"folio-cli/internal/logging"
	"folio-cli/internal/model"
	"folio-cli/internal/tui"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
	Format     string
	LogLevel   string
	Seed       string

	cfg      config.Config
	log      *zap.Logger
	closeLog func()
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Folio: structured document authoring (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  folio

  # Inspect the starter document
  folio outline --pretty
  folio preview --style roman

  # Apply an op script and print the resulting document
  folio run manual.yaml --format yaml
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
		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		if app.LogLevel != "" {
			cfg.Log.Level = app.LogLevel
		}
		if app.Seed != "" {
			cfg.Seed = app.Seed
		}
		app.cfg = cfg

		// The TUI owns the terminal: log to the file only.
		console := cmd != cmd.Root()
		log, closeLog, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Console: console})
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = log
		app.closeLog = closeLog
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.yaml (default: $FOLIO_CONFIG_DIR/config.yaml or ~/.folio/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr(config.EnvFormat, "json"), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (none|info|debug); overrides config and FOLIO_LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&app.Seed, "seed", "", "Starting content (sample|empty); overrides config")

	cmd.AddCommand(newBlocksCmd(app))
	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newLibraryCmd(app))
	cmd.AddCommand(newPreviewCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	// cobra skips post-run hooks when RunE fails, so the log is closed by the
	// commands themselves.
	closeLogOnReturn(cmd, app)
	return cmd
}

func closeLogOnReturn(c *cobra.Command, app *App) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer app.closeLogger()
			return run(cmd, args)
		}
	}
	for _, sub := range c.Commands() {
		closeLogOnReturn(sub, app)
	}
}

func (app *App) closeLogger() {
	if app.closeLog != nil {
		app.closeLog()
		app.closeLog = nil
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := newSession(app, "")
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(s, tui.Options{IndexStyle: app.cfg.IndexStyle, Glyphs: app.cfg.TUI.Glyphs})
}

// newSession starts a fresh in-memory session. seed overrides the configured seed.
func newSession(app *App, seed string) (*editor.Session, error) {
	if strings.TrimSpace(seed) == "" {
		seed = app.cfg.Seed
	}
	sd, err := editor.ParseSeed(seed)
	if err != nil {
		return nil, err
	}
	log := app.log
	if log == nil {
		log = zap.NewNop()
	}
	return editor.NewSession(editor.Options{
		Logger: log,
		Seed:   sd,
		Meta:   model.Meta{Title: app.cfg.Document.Title, Author: app.cfg.Document.Author},
	}), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
