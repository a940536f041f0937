// Package catalog loads and indexes the content library shown by the TUI.
//
// Catalogs are YAML files matched by glob patterns. Each file can define
// rows, content records, or both; later files override earlier ones by ID
// so a user catalog can overlay the built-in demo library.
package catalog

import (
	"fmt"

	"github.com/colonyops/marquee/pkg/kv"
)

// Kind discriminates movies from episodic series.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// IsValid reports whether the kind is a known value.
func (k Kind) IsValid() bool {
	switch k {
	case KindMovie, KindSeries:
		return true
	default:
		return false
	}
}

// Record is a single piece of content. Synopsis is markdown and is
// rendered by the detail modal.
type Record struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Kind     Kind     `yaml:"kind"`
	Year     int      `yaml:"year"`
	Genres   []string `yaml:"genres"`
	Rating   float64  `yaml:"rating"`   // 0-10
	Maturity string   `yaml:"maturity"` // e.g. PG-13, TV-MA
	Runtime  int      `yaml:"runtime"`  // minutes, movies only
	Seasons  int      `yaml:"seasons"`  // series only
	Synopsis string   `yaml:"synopsis"`
	Cast     []string `yaml:"cast"`
	Progress float64  `yaml:"progress"` // 0-1 resume position
	Hero     bool     `yaml:"hero"`     // eligible for the hero banner
	URL      string   `yaml:"url"`      // external link for copy-link
}

// RuntimeLabel returns a short human readable length, "2h 14m" for movies
// and "3 seasons" for series.
func (r Record) RuntimeLabel() string {
	if r.Kind == KindSeries {
		if r.Seasons == 1 {
			return "1 season"
		}
		return fmt.Sprintf("%d seasons", r.Seasons)
	}
	h, m := r.Runtime/60, r.Runtime%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// InProgress reports whether the record has a partial resume position.
func (r Record) InProgress() bool {
	return r.Progress > 0 && r.Progress < 1
}

// Row is an ordered shelf of content rendered as one carousel.
type Row struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Content []string `yaml:"content"` // record IDs in display order
}

// File is the on-disk document shape.
type File struct {
	Rows    []Row    `yaml:"rows"`
	Content []Record `yaml:"content"`
}

// Catalog is an immutable snapshot of the loaded library. Reloads build a
// fresh Catalog and swap the pointer; readers keep the snapshot they hold.
type Catalog struct {
	rows    []Row
	records *kv.Store[string, Record]
	order   []string // record IDs in first-seen order
}

// New builds a snapshot from display rows and content records. Records
// sharing an ID keep the last definition.
func New(rows []Row, records []Record) *Catalog {
	c := &Catalog{
		rows:    rows,
		records: kv.New[string, Record](),
		order:   make([]string, 0, len(records)),
	}
	for _, r := range records {
		if _, seen := c.records.Get(r.ID); !seen {
			c.order = append(c.order, r.ID)
		}
		c.records.Set(r.ID, r)
	}
	return c
}

// Get returns the record for a content ID.
func (c *Catalog) Get(id string) (Record, bool) {
	return c.records.Get(id)
}

// Rows returns the display rows in catalog order.
func (c *Catalog) Rows() []Row {
	return c.rows
}

// Records returns all records in first-seen order.
func (c *Catalog) Records() []Record {
	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		if r, ok := c.records.Get(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// RowRecords resolves a row's content IDs. Records come back in row order;
// IDs with no matching record are returned separately so the caller can
// log and skip them.
func (c *Catalog) RowRecords(row Row) ([]Record, []string) {
	records := make([]Record, 0, len(row.Content))
	var missing []string
	for _, id := range row.Content {
		r, ok := c.records.Get(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		records = append(records, r)
	}
	return records, missing
}

// Unresolved returns row IDs mapped to content IDs that have no record.
// Used by catalog validation to surface dangling references.
func (c *Catalog) Unresolved() map[string][]string {
	out := map[string][]string{}
	for _, row := range c.rows {
		if _, missing := c.RowRecords(row); len(missing) > 0 {
			out[row.ID] = missing
		}
	}
	return out
}

// Hero returns the record featured in the hero banner: the first record
// flagged hero, falling back to the first record of the first row.
func (c *Catalog) Hero() (Record, bool) {
	for _, id := range c.order {
		if r, ok := c.records.Get(id); ok && r.Hero {
			return r, true
		}
	}
	for _, row := range c.rows {
		if records, _ := c.RowRecords(row); len(records) > 0 {
			return records[0], true
		}
	}
	return Record{}, false
}

// Len returns the number of distinct records.
func (c *Catalog) Len() int {
	return len(c.order)
}
