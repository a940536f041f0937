package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/marquee/internal/core/mylist"
	"github.com/colonyops/marquee/internal/data/db"
)

// MyListStore implements mylist.Store using SQLite.
type MyListStore struct {
	db *db.DB
}

var _ mylist.Store = (*MyListStore)(nil)

// NewMyListStore creates a new SQLite-backed my-list store.
func NewMyListStore(db *db.DB) *MyListStore {
	return &MyListStore{db: db}
}

// Add saves a content reference. Adding an existing reference is a no-op
// and keeps the original added_at, so re-adding doesn't reorder the row.
func (s *MyListStore) Add(ctx context.Context, contentID string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		"INSERT INTO my_list (content_id, added_at) VALUES (?, ?) ON CONFLICT(content_id) DO NOTHING",
		contentID, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("add to list: %w", err)
	}
	return nil
}

// Remove deletes a content reference. Removing a missing reference is a
// no-op.
func (s *MyListStore) Remove(ctx context.Context, contentID string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		"DELETE FROM my_list WHERE content_id = ?", contentID)
	if err != nil {
		return fmt.Errorf("remove from list: %w", err)
	}
	return nil
}

// Has reports whether a content reference is saved.
func (s *MyListStore) Has(ctx context.Context, contentID string) (bool, error) {
	var count int
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM my_list WHERE content_id = ?", contentID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check list membership: %w", err)
	}
	return count > 0, nil
}

// List returns saved items, newest first.
func (s *MyListStore) List(ctx context.Context) ([]mylist.Item, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		"SELECT content_id, added_at FROM my_list ORDER BY added_at DESC, content_id")
	if err != nil {
		return nil, fmt.Errorf("list saved items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []mylist.Item{}
	for rows.Next() {
		var (
			id      string
			addedAt int64
		)
		if err := rows.Scan(&id, &addedAt); err != nil {
			return nil, fmt.Errorf("scan saved item: %w", err)
		}
		items = append(items, mylist.Item{
			ContentID: id,
			AddedAt:   time.Unix(0, addedAt),
		})
	}
	return items, rows.Err()
}

// Clear deletes all saved items.
func (s *MyListStore) Clear(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM my_list"); err != nil {
		return fmt.Errorf("clear list: %w", err)
	}
	return nil
}
