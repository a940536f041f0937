package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/marquee"
	"github.com/colonyops/marquee/internal/printer"
	"github.com/colonyops/marquee/pkg/iojson"
)

type CatalogCmd struct {
	flags *Flags
	app   *marquee.App

	// flags
	jsonOutput bool
}

// NewCatalogCmd creates a new catalog command
func NewCatalogCmd(flags *Flags, app *marquee.App) *CatalogCmd {
	return &CatalogCmd{flags: flags, app: app}
}

// Register adds the catalog command to the application
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "catalog",
		Usage: "Catalog management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate catalog files",
				UsageText: "marquee catalog validate [glob...]",
				Description: `Parses and validates catalog files, reporting schema issues per file
and shelf entries that reference no known title.

With no arguments the globs from the config file are checked. Explicit
glob arguments resolve relative to the current directory.`,
				Action: cmd.runValidate,
			},
			{
				Name:      "ls",
				Usage:     "List catalog titles and shelves",
				UsageText: "marquee catalog ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output the catalog as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runLs,
			},
		},
	})

	return app
}

func (cmd *CatalogCmd) runValidate(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	patterns := c.Args().Slice()
	baseDir := "" // explicit globs resolve against the working directory
	if len(patterns) == 0 {
		patterns = cmd.app.Config.Catalog.Paths
		baseDir = filepath.Dir(cmd.flags.ConfigPath)
	}

	if len(patterns) == 0 {
		p.Infof("No catalog paths configured; the built-in demo catalog is used")
		return nil
	}

	loader := catalog.NewLoader(baseDir, patterns)
	cat, results, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if len(results) == 0 {
		p.Warnf("No catalog files matched")
		return nil
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			p.FailItem(r.Path, "")
			for _, line := range strings.Split(r.Err.Error(), "\n") {
				p.Printf("      %s", line)
			}
			continue
		}
		p.CheckItem(r.Path, fmt.Sprintf("%d shelves, %d titles", r.Rows, r.Records))
	}

	unresolved := cat.Unresolved()
	shelfIDs := make([]string, 0, len(unresolved))
	for id := range unresolved {
		shelfIDs = append(shelfIDs, id)
	}
	sort.Strings(shelfIDs)
	for _, id := range shelfIDs {
		p.WarnItem("shelf "+id, "unknown titles: "+strings.Join(unresolved[id], ", "))
	}

	p.Printf("")
	if failed > 0 {
		p.Errorf("%d file(s) failed validation", failed)
		return cli.Exit("", 1)
	}

	p.Successf("Catalog is valid: %d shelves, %d titles", len(cat.Rows()), cat.Len())
	return nil
}

func (cmd *CatalogCmd) runLs(ctx context.Context, c *cli.Command) error {
	cat, err := cmd.app.Library.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, buildCatalogListing(cat))
	}

	if cat.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Catalog is empty")
		return nil
	}

	// Truncate long titles so the table fits the terminal.
	width := 80
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		width = tw
	}
	titleWidth := max(width-48, 16)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tKIND\tYEAR\tRATING\tLENGTH")

	for _, rec := range cat.Records() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%s\n",
			rec.ID,
			runewidth.Truncate(rec.Title, titleWidth, "…"),
			rec.Kind,
			rec.Year,
			rec.Rating,
			rec.RuntimeLabel(),
		)
	}

	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	for _, row := range cat.Rows() {
		records, _ := cat.RowRecords(row)
		_, _ = fmt.Fprintf(out, "%s: %d titles\n", row.Title, len(records))
	}

	return nil
}

// catalogListing is the JSON output format for marquee catalog ls --json.
type catalogListing struct {
	Shelves []shelfInfo `json:"shelves"`
	Titles  []titleInfo `json:"titles"`
}

type shelfInfo struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Titles []string `json:"titles"`
}

type titleInfo struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Kind   string  `json:"kind"`
	Year   int     `json:"year,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Length string  `json:"length,omitempty"`
}

func buildCatalogListing(cat *catalog.Catalog) catalogListing {
	listing := catalogListing{
		Shelves: make([]shelfInfo, 0, len(cat.Rows())),
		Titles:  make([]titleInfo, 0, cat.Len()),
	}

	for _, row := range cat.Rows() {
		listing.Shelves = append(listing.Shelves, shelfInfo{
			ID:     row.ID,
			Title:  row.Title,
			Titles: row.Content,
		})
	}

	for _, rec := range cat.Records() {
		listing.Titles = append(listing.Titles, titleInfo{
			ID:     rec.ID,
			Title:  rec.Title,
			Kind:   string(rec.Kind),
			Year:   rec.Year,
			Rating: rec.Rating,
			Length: rec.RuntimeLabel(),
		})
	}

	return listing
}
