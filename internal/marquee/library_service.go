package marquee

import (
	"context"
	"fmt"
	"sync"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/eventbus"
	"github.com/rs/zerolog"
)

// LibraryService owns the content library: it loads catalog snapshots from
// disk, serves lookups against the current snapshot, and publishes reload
// events. Snapshots are immutable; a reload swaps the whole pointer.
type LibraryService struct {
	loader *catalog.Loader
	bus    *eventbus.EventBus
	log    zerolog.Logger

	mu      sync.RWMutex
	current *catalog.Catalog
}

// NewLibraryService creates a new LibraryService. The library is empty
// until the first Load.
func NewLibraryService(loader *catalog.Loader, bus *eventbus.EventBus, log zerolog.Logger) *LibraryService {
	return &LibraryService{
		loader:  loader,
		bus:     bus,
		log:     log.With().Str("component", "library-service").Logger(),
		current: catalog.New(nil, nil),
	}
}

// Load rebuilds the snapshot from disk and publishes catalog.reloaded.
// Individual broken files are logged and skipped, never failing the load.
func (s *LibraryService) Load(ctx context.Context) (*catalog.Catalog, error) {
	cat, results, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	for _, r := range results {
		if r.Err != nil {
			s.log.Warn().Err(r.Err).Str("path", r.Path).Msg("catalog file skipped")
			continue
		}
		s.log.Debug().
			Str("path", r.Path).
			Int("rows", r.Rows).
			Int("records", r.Records).
			Msg("catalog file loaded")
	}

	s.mu.Lock()
	s.current = cat
	s.mu.Unlock()

	s.log.Info().Int("rows", len(cat.Rows())).Int("titles", cat.Len()).Msg("catalog loaded")
	s.bus.PublishCatalogReloaded(eventbus.CatalogReloadedPayload{Catalog: cat})

	return cat, nil
}

// Current returns the most recently loaded snapshot.
func (s *LibraryService) Current() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get resolves a content ID against the current snapshot.
func (s *LibraryService) Get(id string) (catalog.Record, bool) {
	return s.Current().Get(id)
}

// Search fuzzy-matches titles in the current snapshot. A blank query
// returns every title in catalog order.
func (s *LibraryService) Search(query string) []catalog.Match {
	return s.Current().Search(query)
}

// Watch creates a filesystem watcher over the catalog directories.
// The caller owns the watcher and drives reloads off its event channel.
func (s *LibraryService) Watch() (*catalog.Watcher, error) {
	roots := s.loader.WatchRoots()
	if len(roots) == 0 {
		return nil, fmt.Errorf("no catalog paths configured to watch")
	}
	return catalog.NewWatcher(roots, s.log)
}
