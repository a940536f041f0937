package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []Record {
	return []Record{
		{ID: "alpha", Title: "Alpha", Kind: KindMovie, Runtime: 134},
		{ID: "beta", Title: "Beta", Kind: KindSeries, Seasons: 1},
		{ID: "gamma", Title: "Gamma", Kind: KindMovie, Runtime: 60, Hero: true},
	}
}

func TestCatalogGet(t *testing.T) {
	c := New(nil, testRecords())

	r, ok := c.Get("beta")
	require.True(t, ok)
	assert.Equal(t, "Beta", r.Title)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCatalogRecordsKeepFirstSeenOrder(t *testing.T) {
	records := testRecords()
	// Redefinition updates the record but keeps its original position.
	records = append(records, Record{ID: "alpha", Title: "Alpha Redux", Kind: KindMovie})

	c := New(nil, records)

	got := c.Records()
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha Redux", got[0].Title)
	assert.Equal(t, "Beta", got[1].Title)
	assert.Equal(t, "Gamma", got[2].Title)
}

func TestRowRecords(t *testing.T) {
	row := Row{ID: "shelf", Title: "Shelf", Content: []string{"gamma", "ghost", "alpha"}}
	c := New([]Row{row}, testRecords())

	records, missing := c.RowRecords(row)

	require.Len(t, records, 2)
	assert.Equal(t, "gamma", records[0].ID)
	assert.Equal(t, "alpha", records[1].ID)
	assert.Equal(t, []string{"ghost"}, missing)
}

func TestUnresolved(t *testing.T) {
	rows := []Row{
		{ID: "ok", Title: "OK", Content: []string{"alpha"}},
		{ID: "broken", Title: "Broken", Content: []string{"alpha", "ghost"}},
	}
	c := New(rows, testRecords())

	unresolved := c.Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, []string{"ghost"}, unresolved["broken"])
}

func TestHero(t *testing.T) {
	t.Run("flagged record wins", func(t *testing.T) {
		c := New(nil, testRecords())
		hero, ok := c.Hero()
		require.True(t, ok)
		assert.Equal(t, "gamma", hero.ID)
	})

	t.Run("falls back to first row record", func(t *testing.T) {
		records := []Record{
			{ID: "alpha", Title: "Alpha", Kind: KindMovie},
			{ID: "beta", Title: "Beta", Kind: KindMovie},
		}
		rows := []Row{{ID: "shelf", Title: "Shelf", Content: []string{"beta", "alpha"}}}
		c := New(rows, records)

		hero, ok := c.Hero()
		require.True(t, ok)
		assert.Equal(t, "beta", hero.ID)
	})

	t.Run("empty catalog", func(t *testing.T) {
		c := New(nil, nil)
		_, ok := c.Hero()
		assert.False(t, ok)
	})
}

func TestRuntimeLabel(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"movie hours and minutes", Record{Kind: KindMovie, Runtime: 134}, "2h 14m"},
		{"movie exact hours", Record{Kind: KindMovie, Runtime: 120}, "2h"},
		{"movie under an hour", Record{Kind: KindMovie, Runtime: 45}, "45m"},
		{"single season", Record{Kind: KindSeries, Seasons: 1}, "1 season"},
		{"multiple seasons", Record{Kind: KindSeries, Seasons: 3}, "3 seasons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.RuntimeLabel())
		})
	}
}

func TestInProgress(t *testing.T) {
	assert.False(t, Record{Progress: 0}.InProgress())
	assert.True(t, Record{Progress: 0.5}.InProgress())
	assert.False(t, Record{Progress: 1}.InProgress())
}
