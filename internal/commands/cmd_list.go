package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/marquee/internal/marquee"
	"github.com/colonyops/marquee/internal/printer"
	"github.com/colonyops/marquee/pkg/iojson"
)

type ListCmd struct {
	flags *Flags
	app   *marquee.App

	// flags
	jsonOutput bool
	importFile iojson.FileReader[[]string]
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *marquee.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "list",
		Usage: "Manage the My List saved titles",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "Show saved titles",
				UsageText: "marquee list ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output saved titles as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runLs,
			},
			{
				Name:          "add",
				Usage:         "Save a title to My List",
				UsageText:     "marquee list add <content-id>",
				Action:        cmd.runAdd,
				ShellComplete: ContentIDCompleter(cmd.app),
			},
			{
				Name:          "rm",
				Usage:         "Remove a title from My List",
				UsageText:     "marquee list rm <content-id>",
				Action:        cmd.runRm,
				ShellComplete: ContentIDCompleter(cmd.app),
			},
			{
				Name:      "export",
				Usage:     "Export saved content IDs as JSON",
				UsageText: "marquee list export",
				Action:    cmd.runExport,
			},
			{
				Name:      "import",
				Usage:     "Import content IDs from a JSON array",
				UsageText: "marquee list import [-f file.json]",
				Description: `Reads a JSON array of content IDs from stdin or --file and saves each
one to My List. IDs not present in the catalog are skipped with a
warning. Pairs with 'marquee list export' to move a list between
machines.`,
				Flags:  []cli.Flag{cmd.importFile.Flag()},
				Action: cmd.runImport,
			},
		},
	})

	return app
}

func (cmd *ListCmd) runLs(ctx context.Context, c *cli.Command) error {
	if _, err := cmd.app.Library.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	records, err := cmd.app.List.Records(ctx)
	if err != nil {
		return fmt.Errorf("list saved titles: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		titles := make([]titleInfo, 0, len(records))
		for _, rec := range records {
			titles = append(titles, titleInfo{
				ID:     rec.ID,
				Title:  rec.Title,
				Kind:   string(rec.Kind),
				Year:   rec.Year,
				Rating: rec.Rating,
				Length: rec.RuntimeLabel(),
			})
		}
		return iojson.WriteWith(out, os.Stderr, titles)
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "My List is empty")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tKIND\tYEAR")
	for _, rec := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", rec.ID, rec.Title, rec.Kind, rec.Year)
	}
	_ = w.Flush()

	return nil
}

func (cmd *ListCmd) runAdd(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("content ID required. Usage: marquee list add <content-id>")
	}

	if _, err := cmd.app.Library.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	rec, ok := cmd.app.Library.Get(id)
	if !ok {
		return fmt.Errorf("no title with ID %q in the catalog", id)
	}

	if err := cmd.app.List.Add(ctx, id); err != nil {
		return err
	}

	p.Successf("%s added to My List", rec.Title)
	return nil
}

func (cmd *ListCmd) runRm(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("content ID required. Usage: marquee list rm <content-id>")
	}

	if _, err := cmd.app.Library.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := cmd.app.List.Remove(ctx, id); err != nil {
		return err
	}

	if rec, ok := cmd.app.Library.Get(id); ok {
		p.Successf("%s removed from My List", rec.Title)
		return nil
	}
	p.Successf("%s removed from My List", id)
	return nil
}

func (cmd *ListCmd) runExport(ctx context.Context, c *cli.Command) error {
	items, err := cmd.app.List.Items(ctx)
	if err != nil {
		return fmt.Errorf("list saved titles: %w", err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ContentID)
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, ids)
}

func (cmd *ListCmd) runImport(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	ids, err := cmd.importFile.Read()
	if err != nil {
		return err
	}

	if _, err := cmd.app.Library.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	added := 0
	for _, id := range ids {
		if _, ok := cmd.app.Library.Get(id); !ok {
			p.Warnf("skipping %s: not in the catalog", id)
			continue
		}
		if err := cmd.app.List.Add(ctx, id); err != nil {
			return err
		}
		added++
	}

	p.Successf("Imported %d title(s)", added)
	return nil
}
