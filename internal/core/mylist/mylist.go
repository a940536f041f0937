// Package mylist defines the user's saved-content list.
package mylist

import (
	"context"
	"time"
)

// Item is one saved entry. Content metadata is resolved through the
// catalog at display time; only the reference is stored.
type Item struct {
	ContentID string
	AddedAt   time.Time
}

// Store persists the list. Add and Remove are idempotent so the toggle
// in the detail modal can fire without membership checks.
type Store interface {
	Add(ctx context.Context, contentID string) error
	Remove(ctx context.Context, contentID string) error
	Has(ctx context.Context, contentID string) (bool, error)
	List(ctx context.Context) ([]Item, error)
	Clear(ctx context.Context) error
}
