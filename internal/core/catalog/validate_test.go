package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		ID:      "static-horizon",
		Title:   "Static Horizon",
		Kind:    KindSeries,
		Year:    2024,
		Rating:  8.7,
		Seasons: 2,
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr string
	}{
		{"valid", func(r *Record) {}, ""},
		{"missing id", func(r *Record) { r.ID = "" }, "id"},
		{"uppercase id", func(r *Record) { r.ID = "Static" }, "lowercase"},
		{"missing title", func(r *Record) { r.Title = "" }, "title"},
		{"bad kind", func(r *Record) { r.Kind = "short" }, "kind"},
		{"year out of range", func(r *Record) { r.Year = 1600 }, "year"},
		{"rating too high", func(r *Record) { r.Rating = 11 }, "rating"},
		{"negative progress", func(r *Record) { r.Progress = -0.1 }, "progress"},
		{"progress above one", func(r *Record) { r.Progress = 1.5 }, "progress"},
		{"negative runtime", func(r *Record) { r.Runtime = -10 }, "runtime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should mention %q", err.Error(), tt.wantErr)
		})
	}
}

func TestRowValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		row := Row{ID: "trending", Title: "Trending Now", Content: []string{"a", "b"}}
		assert.NoError(t, row.Validate())
	})

	t.Run("empty content allowed", func(t *testing.T) {
		row := Row{ID: "empty", Title: "Empty Shelf"}
		assert.NoError(t, row.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		row := Row{Title: "Trending Now"}
		require.Error(t, row.Validate())
	})

	t.Run("bad content id", func(t *testing.T) {
		row := Row{ID: "trending", Title: "Trending", Content: []string{"OK Not"}}
		err := row.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content[0]")
	})
}

func TestFileValidateCollectsAllFailures(t *testing.T) {
	f := File{
		Rows:    []Row{{Title: "No ID"}},
		Content: []Record{{ID: "ok-id", Kind: KindMovie}}, // missing title
	}

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows[0]")
	assert.Contains(t, err.Error(), "content[0]")
}

func TestNormalizeDefaultsKind(t *testing.T) {
	f := File{Content: []Record{{ID: "x", Title: "X"}}}
	f.normalize()
	assert.Equal(t, KindMovie, f.Content[0].Kind)
}
