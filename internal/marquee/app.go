// Package marquee wires the domain services consumed by commands and the TUI.
package marquee

import (
	"github.com/colonyops/marquee/internal/core/config"
	"github.com/colonyops/marquee/internal/core/eventbus"
	"github.com/colonyops/marquee/internal/core/kv"
	"github.com/colonyops/marquee/internal/data/db"
)

// App is the central entry point for all marquee operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Library *LibraryService
	List    *ListService

	Config *config.Config
	Bus    *eventbus.EventBus
	DB     *db.DB
	KV     kv.KV
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	library *LibraryService,
	list *ListService,
	cfg *config.Config,
	bus *eventbus.EventBus,
	database *db.DB,
	store kv.KV,
) *App {
	return &App{
		Library: library,
		List:    list,
		Config:  cfg,
		Bus:     bus,
		DB:      database,
		KV:      store,
	}
}
