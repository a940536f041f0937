// Command docgen generates CLI reference documentation from the marquee
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/marquee/internal/commands"
	"github.com/colonyops/marquee/internal/marquee"
)

func main() {
	flags := &commands.Flags{}
	app := &marquee.App{}

	root := &cli.Command{
		Name:      "marquee",
		Usage:     "Browse a streaming catalog from the terminal",
		UsageText: "marquee [global options] command [command options]",
		Description: `Marquee is a streaming-service style catalog browser for the terminal.
Shelves of titles scroll as carousels with momentum, search is fuzzy,
and a detail modal saves titles to My List.

Run 'marquee' with no arguments to open the browser.
Run 'marquee init' to create a starter configuration.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("MARQUEE_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to the user state directory)",
				Sources: cli.EnvVars("MARQUEE_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("MARQUEE_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("MARQUEE_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
			&cli.StringFlag{
				Name:    "theme",
				Usage:   "color theme (overrides the config file)",
				Sources: cli.EnvVars("MARQUEE_THEME"),
			},
		},
	}

	browseCmd := commands.NewBrowseCmd(flags, app)
	root.Flags = append(root.Flags, browseCmd.Flags()...)

	root = commands.NewCatalogCmd(flags, app).Register(root)
	root = commands.NewListCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = commands.NewInitCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
