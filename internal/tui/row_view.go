package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/config"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/tui/carousel"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

// Row layout geometry. Every shelf renders as a title line, a fixed-height
// card strip flanked by arrow columns, and a trailing blank line. Uniform
// section heights keep the vertical scroll math trivial.
const (
	rowEdgePad    = 1 // blank column at each screen edge
	arrowColWidth = 2 // chevron plus a space
	cardBodyLines = 3 // art, title, meta
	cardHeight    = cardBodyLines + 2
	rowHeight     = cardHeight + 2
)

// stripViewportWidth is the horizontal window the card strip scrolls
// through: the full width minus edge padding and both arrow columns.
func stripViewportWidth(total int) int {
	w := total - 2*(rowEdgePad+arrowColWidth)
	if w < 10 {
		w = 10
	}
	return w
}

// rowMetrics derives the carousel metrics for a shelf at the current
// terminal width from its breakpoint tier.
func rowMetrics(cfg *config.Config, width, cardCount int) carousel.Metrics {
	tier := cfg.TierFor(width)
	return carousel.Metrics{
		ViewportWidth: float64(stripViewportWidth(width)),
		CardWidth:     float64(tier.CardWidth),
		CardGap:       float64(tier.CardGap),
		CardsPerClick: tier.CardsPerClick,
		CardCount:     cardCount,
	}
}

// Row region naming: "row:<id>:left|right|strip".
func rowRegionID(rowID, part string) string {
	return "row:" + rowID + ":" + part
}

func parseRowRegion(id string) (rowID, part string, ok bool) {
	rest, found := strings.CutPrefix(id, "row:")
	if !found {
		return "", "", false
	}
	idx := strings.LastIndex(rest, ":")
	if idx < 0 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// cardIndexAt maps a click at screen column x inside the strip (whose
// left edge sits at stripX) to a card index, or -1 when the click lands
// in a gap or past the last card.
func cardIndexAt(state carousel.RowScrollState, stripX, x int) int {
	local := state.Offset + float64(x-stripX)
	if local < 0 {
		return -1
	}
	stride := state.Metrics.CardWidth + state.Metrics.CardGap
	if stride <= 0 {
		return -1
	}
	idx := int(local / stride)
	if idx >= state.Metrics.CardCount {
		return -1
	}
	if math.Mod(local, stride) >= state.Metrics.CardWidth {
		return -1 // gap between cards
	}
	return idx
}

// renderCard draws one poster card at the tier's card width.
func renderCard(rec catalog.Record, cardW int, selected, onList bool) string {
	inner := cardW - 2
	if inner < 4 {
		inner = 4
	}

	// Art line: resume bar for in-progress titles, otherwise a color
	// band hashed from the id so each card reads distinct.
	var art string
	if rec.InProgress() {
		filled := int(math.Round(rec.Progress * float64(inner)))
		if filled > inner {
			filled = inner
		}
		art = styles.CardProgressStyle.Render(strings.Repeat(styles.IconProgressFull, filled)) +
			styles.CardMetaStyle.Render(strings.Repeat(styles.IconProgressEmpty, inner-filled))
	} else {
		band := lipgloss.NewStyle().Foreground(styles.ColorForString(rec.ID))
		art = band.Render(strings.Repeat("▂", inner))
	}

	title := runewidth.Truncate(rec.Title, inner, "…")
	titleLine := styles.CardTitleStyle.Render(title)
	if onList && runewidth.StringWidth(title)+2 <= inner {
		listed := lipgloss.NewStyle().Foreground(styles.ColorSuccess)
		titleLine = styles.CardTitleStyle.Render(runewidth.Truncate(rec.Title, inner-2, "…")) +
			" " + listed.Render(styles.IconListed)
	}

	kindIcon := styles.IconFilm
	if rec.Kind == catalog.KindSeries {
		kindIcon = styles.IconSeries
	}
	meta := fmt.Sprintf("%s %d %s %.1f", kindIcon, rec.Year, styles.IconStar, rec.Rating)
	metaLine := styles.CardMetaStyle.Render(runewidth.Truncate(meta, inner, "…"))

	body := art + "\n" + titleLine + "\n" + metaLine

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(inner).Render(body)
}

// renderStrip joins a shelf's cards into one unclipped horizontal band.
func renderStrip(records []catalog.Record, listIDs map[string]bool, cardW, gap, selectedIdx int, active bool) string {
	parts := make([]string, 0, len(records)*2)
	spacer := strings.Repeat(" ", gap)
	for i, rec := range records {
		if i > 0 && gap > 0 {
			parts = append(parts, spacer)
		}
		selected := active && i == selectedIdx
		parts = append(parts, renderCard(rec, cardW, selected, listIDs[rec.ID]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// windowStrip clips the band to the viewport at the row's scroll offset.
// Cutting per line keeps ANSI styling intact across the cut points, so a
// card half past the edge renders cleanly clipped.
func windowStrip(strip string, offset float64, viewport int) string {
	off := int(math.Round(offset))
	if off < 0 {
		off = 0
	}
	lines := strings.Split(strip, "\n")
	out := make([]string, len(lines))
	for i, ln := range lines {
		cut := ansi.Cut(ln, off, off+viewport)
		if n := ansi.StringWidth(cut); n < viewport {
			cut += strings.Repeat(" ", viewport-n)
		}
		out[i] = cut
	}
	return strings.Join(out, "\n")
}

// arrowColumn renders one navigation arrow as a cardHeight-tall column
// with the chevron on the middle line. Disabled arrows keep the column
// width so the strip doesn't shift at the edges.
func arrowColumn(glyph string, enabled, hovered bool) string {
	style := styles.RowArrowStyle
	if hovered && enabled {
		style = styles.RowArrowHoverStyle
	}
	if !enabled {
		style = styles.RowArrowDisabledStyle
	}
	blank := strings.Repeat(" ", arrowColWidth)
	lines := make([]string, cardHeight)
	for i := range lines {
		if i == cardHeight/2 {
			lines[i] = style.Render(glyph) + " "
		} else {
			lines[i] = blank
		}
	}
	return strings.Join(lines, "\n")
}

// renderRow draws one shelf and registers its mouse regions at vertical
// position y. The caller owns vertical layout; this owns everything
// horizontal. hover names the hit region under the pointer, for arrow
// highlighting.
func renderRow(hm *mouse.HitMap, facade *carousel.Facade, row rowData, listIDs map[string]bool, width, y int, active bool, hover string) string {
	state, ok := facade.State(row.id)
	if !ok {
		return ""
	}
	viewport := stripViewportWidth(width)
	atStart, atEnd := facade.Edges(row.id)
	scrollable := state.MaxOffset > 0

	// Title line: focus marker, shelf title, percent-scrolled label.
	marker := "  "
	if active {
		marker = styles.RowArrowStyle.Render("▎ ")
	}
	title := marker + styles.RowTitleStyle.Render(row.title)
	var label string
	if scrollable {
		label = styles.RowPositionStyle.Render(fmt.Sprintf("%d%%", facade.Percent(row.id)))
	}
	gap := width - 2*rowEdgePad - lipgloss.Width(title) - lipgloss.Width(label)
	if gap < 1 {
		gap = 1
	}
	pad := strings.Repeat(" ", rowEdgePad)
	titleLine := pad + title + strings.Repeat(" ", gap) + label

	strip := renderStrip(row.records, listIDs, int(state.Metrics.CardWidth), int(state.Metrics.CardGap), row.sel, active)
	windowed := windowStrip(strip, state.Offset, viewport)

	left := arrowColumn(styles.IconChevronLeft, scrollable && !atStart,
		hover == rowRegionID(row.id, "left"))
	right := arrowColumn(styles.IconChevronRight, scrollable && !atEnd,
		hover == rowRegionID(row.id, "right"))

	band := lipgloss.JoinHorizontal(lipgloss.Top, pad, left, windowed, right)

	stripX := rowEdgePad + arrowColWidth
	stripY := y + 1
	if scrollable && !atStart {
		hm.AddRect(rowRegionID(row.id, "left"), rowEdgePad, stripY, arrowColWidth, cardHeight, nil)
	}
	hm.AddRect(rowRegionID(row.id, "strip"), stripX, stripY, viewport, cardHeight, nil)
	if scrollable && !atEnd {
		hm.AddRect(rowRegionID(row.id, "right"), stripX+viewport, stripY, arrowColWidth, cardHeight, nil)
	}

	return titleLine + "\n" + band + "\n"
}
