package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/marquee/internal/core/styles"
)

// splitScreen breaks a rendered frame into exactly h lines, each padded
// to w columns. Per-line splicing needs stable geometry; short frames and
// ragged right edges would misplace everything composited on top.
func splitScreen(s string, w, h int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, ln := range lines {
		if n := ansi.StringWidth(ln); n < w {
			lines[i] = ln + strings.Repeat(" ", w-n)
		}
	}
	return lines
}

// overlayAt splices fgLines over bgLines at cell position (x, y). The
// background is cut around the foreground with ANSI-aware slicing so
// styling on either side of the splice survives.
func overlayAt(bgLines, fgLines []string, w, x, y, fgW int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+fgW > w {
		fgW = w - x
	}
	if fgW <= 0 {
		return
	}
	for i := 0; i < len(fgLines) && y+i < len(bgLines); i++ {
		bgLine := bgLines[y+i]
		left := ansi.Cut(bgLine, 0, x)
		right := ansi.Cut(bgLine, x+fgW, w)

		fgLine := fgLines[i]
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			fgLine = ansi.Cut(fgLine, 0, fgW)
		}

		bgLines[y+i] = left + fgLine + right
	}
}

// overlayCenter composites fg centered over bg in a w x h frame.
func overlayCenter(bg, fg string, w, h int) string {
	bgLines := splitScreen(bg, w, h)
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	fgH := len(fgLines)
	if fgW <= 0 || fgH <= 0 {
		return strings.Join(bgLines, "\n")
	}
	if fgW > w {
		fgW = w
	}

	x := (w - fgW) / 2
	y := (h - fgH) / 2
	overlayAt(bgLines, fgLines, w, x, y, fgW)
	return strings.Join(bgLines, "\n")
}

// overlayTop composites fg horizontally centered near the top of the
// frame, below the navigation bar.
func overlayTop(bg, fg string, w, h, topY int) string {
	bgLines := splitScreen(bg, w, h)
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	if fgW > w {
		fgW = w
	}
	overlayAt(bgLines, fgLines, w, (w-fgW)/2, topY, fgW)
	return strings.Join(bgLines, "\n")
}

// overlayBottomRight pins fg to the lower-right corner, inset one column.
func overlayBottomRight(bg, fg string, w, h int) string {
	bgLines := splitScreen(bg, w, h)
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	fgH := len(fgLines)
	x := max(w-fgW-1, 0)
	y := max(h-fgH, 0)
	overlayAt(bgLines, fgLines, w, x, y, fgW)
	return strings.Join(bgLines, "\n")
}

// dimBackground mutes the frame behind a modal. Segments that carry their
// own color keep it; everything else drops to the muted foreground, which
// reads as a scrim without disturbing layout.
func dimBackground(s string) string {
	return lipgloss.NewStyle().Foreground(styles.ColorMuted).Faint(true).Render(s)
}
