package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/marquee/internal/commands"
	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/config"
	"github.com/colonyops/marquee/internal/core/eventbus"
	"github.com/colonyops/marquee/internal/core/logging"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/data/db"
	"github.com/colonyops/marquee/internal/data/stores"
	"github.com/colonyops/marquee/internal/marquee"
	"github.com/colonyops/marquee/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
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

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		marqueeApp = &marquee.App{}
		database   *db.DB
		busCancel  context.CancelFunc
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "marquee",
		Usage:     "Browse a streaming catalog from the terminal",
		UsageText: "marquee [global options] command [command options]",
		Description: `Marquee is a streaming-service style catalog browser for the terminal.
Shelves of titles scroll as carousels with momentum, search is fuzzy,
and a detail modal saves titles to My List.

Run 'marquee' with no arguments to open the browser.
Run 'marquee init' to create a starter configuration.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MARQUEE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to the user state directory)",
				Sources:     cli.EnvVars("MARQUEE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MARQUEE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("MARQUEE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (overrides the config file)",
				Sources:     cli.EnvVars("MARQUEE_THEME"),
				Destination: &flags.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply theme: flag overrides config
			if flags.Theme != "" {
				cfg.Theme = flags.Theme
			}
			palette, ok := styles.GetPalette(cfg.Theme)
			if !ok {
				return ctx, fmt.Errorf("unknown theme %q (available: %s)",
					cfg.Theme, strings.Join(styles.ThemeNames(), ", "))
			}
			styles.SetTheme(palette)

			// Open database connection
			database, err = db.Open(cfg.DataDir, db.DefaultOpenOptions())
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Create stores
			kvStore := stores.NewKVStore(database)
			myListStore := stores.NewMyListStore(database)

			// Start the event bus dispatch loop
			bus := eventbus.New(64)
			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			go bus.Start(busCtx)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))

			// Create services. Catalog globs resolve against the config
			// file directory.
			loader := catalog.NewLoader(filepath.Dir(flags.ConfigPath), cfg.Catalog.Paths)
			library := marquee.NewLibraryService(loader, bus, log.Logger)
			list := marquee.NewListService(myListStore, library, bus, log.Logger)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*marqueeApp = *marquee.NewApp(library, list, cfg, bus, database, kvStore)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Stop the event bus dispatch loop
			if busCancel != nil {
				busCancel()
			}

			// Close database connection
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	browseCmd := commands.NewBrowseCmd(flags, marqueeApp)

	app = commands.NewCatalogCmd(flags, marqueeApp).Register(app)
	app = commands.NewListCmd(flags, marqueeApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewInitCmd(flags).Register(app)

	// Register browse flags on root command
	app.Flags = append(app.Flags, browseCmd.Flags()...)

	// Set the browser as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'marquee --help' for usage", c.Args().First())
		}
		return browseCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
