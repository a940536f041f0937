package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/marquee/internal/core/eventbus"
	"github.com/colonyops/marquee/internal/data/stores"
	"github.com/colonyops/marquee/internal/marquee"
	"github.com/colonyops/marquee/internal/tui"
	"github.com/colonyops/marquee/pkg/profiler"
)

type BrowseCmd struct {
	flags *Flags
	app   *marquee.App
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags, app *marquee.App) *BrowseCmd {
	return &BrowseCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the browse-specific flags for registration on the root command
func (cmd *BrowseCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("MARQUEE_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the browse TUI. Exported for use as default command.
func (cmd *BrowseCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *BrowseCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	var warnings []string
	for _, w := range cmd.app.Config.Warnings() {
		warnings = append(warnings, w.Message)
	}

	m := tui.New(cmd.app.Library, cmd.app.List, cmd.app.Config, tui.Options{
		Bus:         cmd.app.Bus,
		KVStore:     cmd.app.KV,
		NotifyStore: stores.NewNotifyStore(cmd.app.DB),
		Warnings:    warnings,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Route domain-event notifications back into the program as toasts.
	eventbus.NewNotificationRouter(cmd.app.Bus).Register()
	cmd.app.Bus.SubscribeNotificationPublished(func(n eventbus.NotificationPublishedPayload) {
		p.Send(tui.NotificationMsg{Level: n.Level, Message: n.Message})
	})

	// Catalog hot reload: forward watcher events into the update loop.
	if cmd.app.Config.Catalog.Watch {
		watcher, err := cmd.app.Library.Watch()
		if err != nil {
			log.Warn().Err(err).Msg("catalog watch unavailable")
		} else {
			defer func() { _ = watcher.Close() }()
			go func() {
				for range watcher.Events() {
					p.Send(tui.CatalogChangedMsg{})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
