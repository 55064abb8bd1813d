package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/commands"
	"github.com/colonyops/qaeval/internal/core/config"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/data/db"
	"github.com/colonyops/qaeval/internal/data/stores"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/internal/tui"
	"github.com/colonyops/qaeval/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() tui.BuildInfo {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	if len(c) > 7 {
		c = c[:7]
	}

	return tui.BuildInfo{Version: v, Commit: c, Date: d}
}

func build() string {
	b := buildInfo()
	return fmt.Sprintf("%s (%s) %s", b.Version, b.Commit, b.Date)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &qaeval.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "qaeval",
		Usage:     "Review and score question/answer pairs",
		UsageText: "qaeval [global options] command [command options]",
		Description: `qaeval is a terminal client for a question/answer evaluation service.

Run 'qaeval' with no arguments to open the interactive review table.
Run 'qaeval upload <file>' to replace the server's questions with a spreadsheet.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("QAEVAL_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/qaeval.log)",
				Sources:     cli.EnvVars("QAEVAL_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("QAEVAL_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("QAEVAL_DATA_DIR"),
				Value:       config.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "server",
				Usage:       "evaluation service url (overrides server.url)",
				Sources:     cli.EnvVars("QAEVAL_SERVER"),
				Destination: &flags.Server,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns stdout.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "qaeval.log")
			}

			closer, err := logutils.Setup(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Server != "" {
				cfg.Server.URL = flags.Server
			}
			flags.Config = cfg

			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			} else {
				log.Warn().Str("theme", cfg.TUI.Theme).Msg("unknown theme, using default")
			}

			database, err := openDatabase(cfg)
			if err != nil {
				return ctx, err
			}

			client, err := api.New(cfg.Server.URL,
				api.WithTimeout(cfg.Server.Timeout),
				api.WithLogger(log.With().Str("component", "api").Logger()),
			)
			if err != nil {
				return ctx, err
			}

			*app = *qaeval.NewApp(cfg, client, database, stores.NewNotifyStore(database))
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if app.DB != nil {
				if err := app.DB.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app, buildInfo())

	root = commands.NewUploadCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewStatsCmd(flags, app).Register(root)
	root = commands.NewCategoriesCmd(flags, app).Register(root)
	root = commands.NewNotificationsCmd(flags, app).Register(root)
	root = commands.NewDoctorCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags, app).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'qaeval --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// openDatabase opens the history database, moving a corrupt file aside and
// retrying once.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.DefaultOpenOptions()
	opts.BusyTimeout = cfg.BusyTimeout()

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("recover database: %w", rerr)
	}
	log.Warn().Str("backup", backup).Msg("history database was corrupt, starting fresh")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
