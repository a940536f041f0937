package tui

import (
	"context"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/marquee"
)

// ContentResolver provides the catalog lookups the TUI Model needs.
type ContentResolver interface {
	Current() *catalog.Catalog
	Get(id string) (catalog.Record, bool)
	Search(query string) []catalog.Match
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// ListMutator is the my-list surface consumed by the detail modal and the
// My List row.
type ListMutator interface {
	Toggle(ctx context.Context, contentID string) (bool, error)
	Has(ctx context.Context, contentID string) (bool, error)
	Records(ctx context.Context) ([]catalog.Record, error)
	IDSet(ctx context.Context) (map[string]bool, error)
}

// Compile-time checks that the marquee services satisfy the TUI surfaces.
var (
	_ ContentResolver = (*marquee.LibraryService)(nil)
	_ ListMutator     = (*marquee.ListService)(nil)
)
