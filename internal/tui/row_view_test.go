package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/config"
	"github.com/colonyops/marquee/internal/tui/carousel"
	"github.com/colonyops/marquee/internal/tui/mouse"
	"github.com/colonyops/marquee/pkg/tuitest"
)

func TestStripViewportWidth(t *testing.T) {
	assert.Equal(t, 114, stripViewportWidth(120))
	assert.Equal(t, 74, stripViewportWidth(80))

	// narrow screens clamp to a usable minimum
	assert.Equal(t, 10, stripViewportWidth(12))
	assert.Equal(t, 10, stripViewportWidth(0))
}

func TestRowMetricsFollowBreakpointTier(t *testing.T) {
	cfg := config.DefaultConfig()

	m := rowMetrics(&cfg, 120, 8)
	assert.Equal(t, float64(18), m.CardWidth)
	assert.Equal(t, float64(2), m.CardGap)
	assert.Equal(t, 3, m.CardsPerClick)
	assert.Equal(t, float64(114), m.ViewportWidth)
	assert.Equal(t, 8, m.CardCount)

	narrow := rowMetrics(&cfg, 70, 8)
	assert.Equal(t, float64(14), narrow.CardWidth)
	assert.Equal(t, 2, narrow.CardsPerClick)
}

func TestParseRowRegionRoundTrip(t *testing.T) {
	id := rowRegionID("trending", "strip")
	assert.Equal(t, "row:trending:strip", id)

	rowID, part, ok := parseRowRegion(id)
	require.True(t, ok)
	assert.Equal(t, "trending", rowID)
	assert.Equal(t, "strip", part)

	// row ids containing colons survive the round trip
	rowID, part, ok = parseRowRegion(rowRegionID("genre:noir", "left"))
	require.True(t, ok)
	assert.Equal(t, "genre:noir", rowID)
	assert.Equal(t, "left", part)
}

func TestParseRowRegionRejectsForeignIDs(t *testing.T) {
	_, _, ok := parseRowRegion("toast:stack")
	assert.False(t, ok)

	_, _, ok = parseRowRegion("row:broken")
	assert.False(t, ok)

	_, _, ok = parseRowRegion("")
	assert.False(t, ok)
}

func stripState(offset float64, cardCount int) carousel.RowScrollState {
	return carousel.RowScrollState{
		Offset: offset,
		Metrics: carousel.Metrics{
			CardWidth: 18,
			CardGap:   2,
			CardCount: cardCount,
		},
	}
}

func TestCardIndexAt(t *testing.T) {
	state := stripState(0, 5)
	stripX := 3

	assert.Equal(t, 0, cardIndexAt(state, stripX, 3))
	assert.Equal(t, 0, cardIndexAt(state, stripX, 20)) // last column of card 0
	assert.Equal(t, -1, cardIndexAt(state, stripX, 21)) // the gap
	assert.Equal(t, 1, cardIndexAt(state, stripX, 23))

	// past the last card
	assert.Equal(t, -1, cardIndexAt(state, stripX, stripX+5*20))
	// left of the strip
	assert.Equal(t, -1, cardIndexAt(state, stripX, 2))
}

func TestCardIndexAtHonorsOffset(t *testing.T) {
	state := stripState(40, 5)
	// the strip is scrolled two cards in, so its left edge shows card 2
	assert.Equal(t, 2, cardIndexAt(state, 3, 3))
}

func TestCardIndexAtZeroStride(t *testing.T) {
	state := carousel.RowScrollState{Metrics: carousel.Metrics{CardCount: 3}}
	assert.Equal(t, -1, cardIndexAt(state, 0, 5))
}

func TestRenderCardGeometry(t *testing.T) {
	rec := catalog.Record{
		ID:     "midnight-freight",
		Title:  "Midnight Freight",
		Kind:   catalog.KindMovie,
		Year:   2023,
		Rating: 7.8,
	}

	card := renderCard(rec, 18, false, false)
	assert.Equal(t, 18, lipgloss.Width(card))
	assert.Equal(t, cardHeight, lipgloss.Height(card))
	assert.Contains(t, tuitest.StripANSI(card), "Midnight Freight")
	assert.Contains(t, tuitest.StripANSI(card), "2023")
}

func TestRenderCardTruncatesLongTitles(t *testing.T) {
	rec := catalog.Record{
		ID:    "long",
		Title: "An Extremely Overlong Title That Cannot Fit",
		Kind:  catalog.KindSeries,
	}

	card := renderCard(rec, 14, false, false)
	assert.Equal(t, 14, lipgloss.Width(card))
	assert.Contains(t, tuitest.StripANSI(card), "…")
}

func TestRenderCardResumeBar(t *testing.T) {
	rec := catalog.Record{ID: "half", Title: "Half Watched", Progress: 0.5}

	card := tuitest.StripANSI(renderCard(rec, 18, false, false))
	assert.Contains(t, card, "█")
	assert.Contains(t, card, "░")
}

func TestWindowStripClipsAndPads(t *testing.T) {
	strip := "abcdefghij\n0123456789"

	out := windowStrip(strip, 2, 5)
	assert.Equal(t, "cdefg\n23456", out)

	// negative offsets clamp to the start
	out = windowStrip(strip, -3, 5)
	assert.Equal(t, "abcde\n01234", out)

	// a strip shorter than the viewport pads to full width
	out = windowStrip("ab", 0, 5)
	assert.Equal(t, "ab   ", out)
}

func TestArrowColumnGeometry(t *testing.T) {
	col := arrowColumn("X", true, false)
	lines := strings.Split(col, "\n")
	require.Len(t, lines, cardHeight)
	for i, ln := range lines {
		if i == cardHeight/2 {
			assert.Contains(t, ln, "X")
		} else {
			assert.Equal(t, strings.Repeat(" ", arrowColWidth), ln)
		}
	}

	// hover keeps the same footprint
	hovered := arrowColumn("X", true, true)
	assert.Equal(t, lipgloss.Width(col), lipgloss.Width(hovered))
	assert.Contains(t, tuitest.StripANSI(hovered), "X")
}

func TestRenderRowRegistersRegions(t *testing.T) {
	cfg := config.DefaultConfig()
	facade := carousel.New(&cfg)

	recs := make([]catalog.Record, 10)
	for i := range recs {
		recs[i] = catalog.Record{ID: string(rune('a' + i)), Title: "Title", Kind: catalog.KindMovie}
	}
	row := rowData{id: "trending", title: "Trending Now", records: recs}
	facade.Mount(row.id, rowMetrics(&cfg, 120, len(recs)))

	hm := mouse.NewHitMap()
	out := renderRow(hm, facade, row, nil, 120, 9, true, "")
	require.NotEmpty(t, out)
	assert.Contains(t, tuitest.StripANSI(out), "Trending Now")
	assert.Contains(t, tuitest.StripANSI(out), "0%")

	var ids []string
	for _, r := range hm.Regions() {
		ids = append(ids, r.ID)
	}
	// at offset zero the left arrow is hidden, the right arrow armed
	assert.NotContains(t, ids, "row:trending:left")
	assert.Contains(t, ids, "row:trending:strip")
	assert.Contains(t, ids, "row:trending:right")

	strip := hm.Test(3, 10)
	require.NotNil(t, strip)
	assert.Equal(t, "row:trending:strip", strip.ID)
	assert.Equal(t, mouse.Rect{X: 3, Y: 10, W: 114, H: cardHeight}, strip.Rect)

	right := hm.Test(117, 10)
	require.NotNil(t, right)
	assert.Equal(t, "row:trending:right", right.ID)
}

func TestRenderRowMidScrollArmsBothArrows(t *testing.T) {
	cfg := config.DefaultConfig()
	facade := carousel.New(&cfg)

	recs := make([]catalog.Record, 10)
	for i := range recs {
		recs[i] = catalog.Record{ID: string(rune('a' + i)), Title: "Title"}
	}
	row := rowData{id: "trending", records: recs}
	facade.Mount(row.id, rowMetrics(&cfg, 120, len(recs)))
	facade.SetOffset(row.id, 30)

	hm := mouse.NewHitMap()
	renderRow(hm, facade, row, nil, 120, 0, false, "")

	var ids []string
	for _, r := range hm.Regions() {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "row:trending:left")
	assert.Contains(t, ids, "row:trending:right")
}

func TestRenderRowUnscrollableHasNoArrows(t *testing.T) {
	cfg := config.DefaultConfig()
	facade := carousel.New(&cfg)

	recs := []catalog.Record{{ID: "only", Title: "Only One"}}
	row := rowData{id: "short", title: "Short", records: recs}
	facade.Mount(row.id, rowMetrics(&cfg, 120, len(recs)))

	hm := mouse.NewHitMap()
	out := renderRow(hm, facade, row, nil, 120, 0, false, "")

	var ids []string
	for _, r := range hm.Regions() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"row:short:strip"}, ids)

	// no percent label on an unscrollable shelf
	assert.NotContains(t, tuitest.StripANSI(out), "%")
}

func TestRenderRowUnmountedRowIsEmpty(t *testing.T) {
	cfg := config.DefaultConfig()
	facade := carousel.New(&cfg)

	hm := mouse.NewHitMap()
	out := renderRow(hm, facade, rowData{id: "ghost"}, nil, 120, 0, false, "")
	assert.Empty(t, out)
	assert.Empty(t, hm.Regions())
}
