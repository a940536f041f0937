package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

// heroHeight matches rowHeight so vertical scrolling treats the banner
// as just another section.
const heroHeight = rowHeight

const (
	heroRegionPlay = "hero:play"
	heroRegionInfo = "hero:info"
)

// renderHero draws the featured banner: oversized title, meta line, a
// two-line synopsis, and the play/info buttons. Registers the button
// regions at vertical position y.
func renderHero(hm *mouse.HitMap, rec catalog.Record, width, y int) string {
	pad := strings.Repeat(" ", rowEdgePad)
	contentW := width - 2*rowEdgePad
	if contentW < 20 {
		contentW = 20
	}

	title := styles.HeroTitleStyle.Render(strings.ToUpper(rec.Title))

	meta := fmt.Sprintf("%d %s %s %s %s %s %s %.1f",
		rec.Year, styles.IconDot, rec.Maturity, styles.IconDot,
		rec.RuntimeLabel(), styles.IconDot, styles.IconStar, rec.Rating)
	metaLine := styles.HeroMetaStyle.Render(meta)

	synopsis := wrapText(rec.Synopsis, contentW, 2)
	for len(synopsis) < 2 {
		synopsis = append(synopsis, "")
	}

	play := styles.ModalButtonFocusedStyle.Render(styles.IconPlay + " Play")
	info := styles.ModalButtonStyle.Render(styles.IconInfo + " More Info")
	buttons := play + "  " + info

	lines := []string{
		pad + title,
		pad + metaLine,
		pad + styles.HeroSynopsisStyle.Render(synopsis[0]),
		pad + styles.HeroSynopsisStyle.Render(synopsis[1]),
		"",
		pad + buttons,
		"",
	}

	buttonY := y + 5
	playW := lipgloss.Width(play)
	hm.AddRect(heroRegionPlay, rowEdgePad, buttonY, playW, 1, nil)
	hm.AddRect(heroRegionInfo, rowEdgePad+playW+2, buttonY, lipgloss.Width(info), 1, nil)

	return strings.Join(lines, "\n")
}

// wrapText wraps text to fit within maxWidth, returning up to maxLines.
// If text exceeds maxLines, the last line is truncated with "...".
func wrapText(text string, maxWidth, maxLines int) []string {
	if text == "" {
		return nil
	}

	words := strings.Fields(text)
	var lines []string
	var current strings.Builder
	overflow := false

	for _, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if current.Len()+1+len(word) <= maxWidth {
			current.WriteString(" ")
			current.WriteString(word)
			continue
		}
		if len(lines) == maxLines-1 {
			overflow = true
			break
		}
		lines = append(lines, current.String())
		current.Reset()
		current.WriteString(word)
	}
	if current.Len() > 0 && len(lines) < maxLines {
		lines = append(lines, current.String())
	}

	if overflow {
		last := []rune(lines[maxLines-1])
		if len(last) > maxWidth-3 {
			last = last[:maxWidth-3]
		}
		lines[maxLines-1] = string(last) + "..."
	}
	return lines
}
