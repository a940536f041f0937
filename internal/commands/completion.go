package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/marquee/internal/marquee"
)

// ContentIDCompleter returns a ShellCompleteFunc that suggests catalog
// content IDs as positional completions. Set this as the ShellComplete
// field on any cli.Command that accepts content IDs as arguments.
//
// When the user's last typed argument starts with "-", it falls back to
// the default flag completion behavior.
func ContentIDCompleter(app *marquee.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if _, err := app.Library.Load(ctx); err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, rec := range app.Library.Current().Records() {
			_, _ = fmt.Fprintln(w, rec.ID)
		}
	}
}
