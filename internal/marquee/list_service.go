package marquee

import (
	"context"
	"fmt"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/eventbus"
	"github.com/colonyops/marquee/internal/core/mylist"
	"github.com/rs/zerolog"
)

// ListService wraps mylist.Store with title resolution and event publishing.
// Add and Remove are idempotent, mirroring the store contract.
type ListService struct {
	store   mylist.Store
	library *LibraryService
	bus     *eventbus.EventBus
	log     zerolog.Logger
}

// NewListService creates a new ListService.
func NewListService(store mylist.Store, library *LibraryService, bus *eventbus.EventBus, log zerolog.Logger) *ListService {
	return &ListService{
		store:   store,
		library: library,
		bus:     bus,
		log:     log.With().Str("component", "list-service").Logger(),
	}
}

// Add saves a content reference and publishes list.added.
func (s *ListService) Add(ctx context.Context, contentID string) error {
	if err := s.store.Add(ctx, contentID); err != nil {
		return fmt.Errorf("add %s to list: %w", contentID, err)
	}

	s.bus.PublishListAdded(eventbus.ListAddedPayload{
		ContentID: contentID,
		Title:     s.titleOf(contentID),
	})

	return nil
}

// Remove deletes a content reference and publishes list.removed.
func (s *ListService) Remove(ctx context.Context, contentID string) error {
	if err := s.store.Remove(ctx, contentID); err != nil {
		return fmt.Errorf("remove %s from list: %w", contentID, err)
	}

	s.bus.PublishListRemoved(eventbus.ListRemovedPayload{
		ContentID: contentID,
		Title:     s.titleOf(contentID),
	})

	return nil
}

// Toggle adds the reference if absent and removes it if present.
// Returns true if the title is on the list after the call.
func (s *ListService) Toggle(ctx context.Context, contentID string) (bool, error) {
	has, err := s.store.Has(ctx, contentID)
	if err != nil {
		return false, fmt.Errorf("check list membership: %w", err)
	}

	if has {
		return false, s.Remove(ctx, contentID)
	}
	return true, s.Add(ctx, contentID)
}

// Has reports whether a content reference is on the list.
func (s *ListService) Has(ctx context.Context, contentID string) (bool, error) {
	return s.store.Has(ctx, contentID)
}

// Items returns the raw saved references, newest first.
func (s *ListService) Items(ctx context.Context) ([]mylist.Item, error) {
	return s.store.List(ctx)
}

// Records resolves saved references against the current catalog, newest
// first. References to titles no longer in the catalog are logged and
// dropped from the result.
func (s *ListService) Records(ctx context.Context) ([]catalog.Record, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved items: %w", err)
	}

	records := make([]catalog.Record, 0, len(items))
	for _, item := range items {
		rec, ok := s.library.Get(item.ContentID)
		if !ok {
			s.log.Warn().Str("content_id", item.ContentID).Msg("saved title missing from catalog")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Clear removes every saved reference.
func (s *ListService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear list: %w", err)
	}
	return nil
}

// IDSet returns saved references as a set for O(1) membership checks
// during rendering.
func (s *ListService) IDSet(ctx context.Context) (map[string]bool, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved items: %w", err)
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item.ContentID] = true
	}
	return set, nil
}

func (s *ListService) titleOf(contentID string) string {
	if rec, ok := s.library.Get(contentID); ok {
		return rec.Title
	}
	return ""
}
