package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

const (
	searchMaxVisible  = 10
	searchPanelWidth  = 60
	searchPanelTopY   = 3
	searchItemPrefix  = "search:item:"
	searchRegionPanel = "search:panel"
)

// SearchPanel is the full-catalog fuzzy finder opened with the search
// key. It matches titles as you type, best score first; picking a result
// hands the record back to the model, which opens its detail modal.
type SearchPanel struct {
	resolver ContentResolver
	input    textinput.Model

	results      []catalog.Match
	selectedIdx  int
	scrollOffset int
	width        int
	height       int

	chosen    *catalog.Record
	cancelled bool
}

func NewSearchPanel(resolver ContentResolver, width, height int) *SearchPanel {
	input := textinput.New()
	input.Placeholder = "title..."
	input.Prompt = styles.IconSearch + " "
	input.PromptStyle = styles.SearchPromptStyle
	input.CharLimit = 64
	input.Width = searchPanelWidth - 10
	input.Focus()

	p := &SearchPanel{
		resolver: resolver,
		input:    input,
		width:    width,
		height:   height,
	}
	p.updateFilter()
	return p
}

// SetSize updates the frame the panel is composited into.
func (p *SearchPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles messages while the panel is open.
func (p *SearchPanel) Update(msg tea.Msg) (*SearchPanel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if len(p.results) > 0 && p.selectedIdx < len(p.results) {
				rec := p.results[p.selectedIdx].Record
				p.chosen = &rec
			}
			return p, nil
		case "esc":
			p.cancelled = true
			return p, nil
		case "up", "ctrl+k", "ctrl+p":
			if p.selectedIdx > 0 {
				p.selectedIdx--
				p.adjustScroll()
			}
			return p, nil
		case "down", "ctrl+j", "ctrl+n":
			if p.selectedIdx < len(p.results)-1 {
				p.selectedIdx++
				p.adjustScroll()
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.updateFilter()
	return p, cmd
}

// Choose selects a visible result directly, bypassing the cursor. Used
// by mouse clicks on result rows.
func (p *SearchPanel) Choose(visibleIdx int) {
	idx := p.scrollOffset + visibleIdx
	if idx >= 0 && idx < len(p.results) {
		rec := p.results[idx].Record
		p.chosen = &rec
	}
}

// Chosen returns the picked record, if any.
func (p *SearchPanel) Chosen() (catalog.Record, bool) {
	if p.chosen == nil {
		return catalog.Record{}, false
	}
	return *p.chosen, true
}

// Cancelled returns true once the panel has been dismissed.
func (p *SearchPanel) Cancelled() bool {
	return p.cancelled
}

// Query returns the current input text.
func (p *SearchPanel) Query() string {
	return p.input.Value()
}

// Results returns the current match list.
func (p *SearchPanel) Results() []catalog.Match {
	return p.results
}

func (p *SearchPanel) updateFilter() {
	p.results = p.resolver.Search(p.input.Value())
	p.selectedIdx = 0
	p.scrollOffset = 0
}

// adjustScroll keeps the selected result inside the visible window.
func (p *SearchPanel) adjustScroll() {
	if p.selectedIdx < p.scrollOffset {
		p.scrollOffset = p.selectedIdx
	}
	if p.selectedIdx >= p.scrollOffset+searchMaxVisible {
		p.scrollOffset = p.selectedIdx - searchMaxVisible + 1
	}
}

// View renders the panel box: input on top, matches below, newest-best
// first. Matched runes in each title are highlighted.
func (p *SearchPanel) View() string {
	title := styles.ModalTitleStyle.Render(styles.IconSearch + " Search")
	contentWidth := searchPanelWidth - 6 // panel border and padding

	endIdx := min(p.scrollOffset+searchMaxVisible, len(p.results))
	visible := p.results[p.scrollOffset:endIdx]

	rows := make([]string, 0, len(visible)+1)
	for i, match := range visible {
		actualIdx := p.scrollOffset + i
		cursor := "  "
		titleStyle := styles.CardTitleStyle
		if actualIdx == p.selectedIdx {
			cursor = styles.SearchPromptStyle.Render("> ")
			titleStyle = titleStyle.Bold(true)
		}

		name := highlightMatch(match.Record.Title, match.Indexes, titleStyle, styles.SearchPromptStyle)
		meta := styles.CardMetaStyle.Render(fmt.Sprintf("  %d %s %s", match.Record.Year, styles.IconDot, match.Record.RuntimeLabel()))

		line := cursor + name + meta
		if lipgloss.Width(line) > contentWidth {
			line = lipgloss.NewStyle().MaxWidth(contentWidth).Render(line)
		}
		rows = append(rows, line)
	}

	if len(p.results) == 0 {
		rows = append(rows, styles.ModalLoadingStyle.Render("  no matches"))
	} else if remaining := len(p.results) - endIdx; remaining > 0 {
		rows = append(rows, styles.SearchCountStyle.Render(fmt.Sprintf("  ... and %d more", remaining)))
	}

	count := styles.SearchCountStyle.Render(strconv.Itoa(len(p.results)) + " matches")
	help := styles.ModalHelpStyle.Render("↑/↓ move  enter open  esc close")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		p.input.View(),
		count,
		"",
		strings.Join(rows, "\n"),
		help,
	)

	return styles.ModalStyle.Width(searchPanelWidth - 2).Render(content)
}

// highlightMatch renders title with the matched rune positions styled.
func highlightMatch(title string, indexes []int, base, hit lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(title)
	}
	set := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		set[i] = struct{}{}
	}
	var b strings.Builder
	for i, r := range []rune(title) {
		if _, ok := set[i]; ok {
			b.WriteString(hit.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Overlay composites the panel near the top of the frame.
func (p *SearchPanel) Overlay(background string) string {
	return overlayTop(background, p.View(), p.width, p.height, searchPanelTopY)
}

// RegisterHitRegions maps the panel and its visible result rows. Result
// regions carry the visible index so a click can pick directly.
func (p *SearchPanel) RegisterHitRegions(hm *mouse.HitMap) {
	view := p.View()
	panelW := lipgloss.Width(view)
	panelH := lipgloss.Height(view)
	panelX := (p.width - panelW) / 2
	if panelX < 0 {
		panelX = 0
	}
	hm.AddRect(searchRegionPanel, panelX, searchPanelTopY, panelW, panelH, nil)

	// Rows start inside the frame: border 1 + padding 1 vertically, then
	// title, blank, input, count, blank.
	rowY := searchPanelTopY + 2 + 5
	rowX := panelX + 3
	rowW := panelW - 6
	endIdx := min(p.scrollOffset+searchMaxVisible, len(p.results))
	for i := 0; i < endIdx-p.scrollOffset; i++ {
		hm.AddRect(searchItemPrefix+strconv.Itoa(i), rowX, rowY+i, rowW, 1, nil)
	}
}
