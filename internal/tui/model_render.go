package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/marquee/internal/core/styles"
)

// Vertical chrome: a two-line navbar on top, a one-line status bar at
// the bottom. Everything between is sections rowHeight tall.
const (
	navbarHeight    = 2
	statusBarHeight = 1
)

// View renders the full screen and rebuilds the mouse hit map to match.
// Overlays composite in stacking order, registering their regions after
// the page's so the top layer wins hit tests.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	m.mouse.HitMap.Clear()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderNavbar()...)
	lines = append(lines, m.renderBody()...)
	lines = append(lines, m.renderStatusBar())
	screen := strings.Join(lines, "\n")

	if m.state == stateSearching && m.search != nil {
		screen = m.search.Overlay(screen)
		m.search.RegisterHitRegions(m.mouse.HitMap)
	}
	if m.modal.Active() {
		sv := m.spinner.View()
		screen = m.modal.Overlay(screen, sv)
		m.modal.RegisterHitRegions(m.mouse.HitMap, sv)
	}
	if m.toastController.HasToasts() {
		screen = m.toastView.Overlay(screen, m.width, m.height)
		m.toastView.RegisterHitRegions(m.mouse.HitMap, m.width, m.height)
	}
	return screen
}

// renderNavbar returns the navbar's lines: branding and catalog counts
// on the first, a blank separator on the second.
func (m Model) renderNavbar() []string {
	pad := strings.Repeat(" ", rowEdgePad)

	left := styles.NavBrandingStyle.Render(styles.IconMarquee + " MARQUEE")
	if m.loading {
		left += " " + m.spinner.View() + styles.NavMetaStyle.Render(" loading")
	}

	var meta string
	if cat := m.library.Current(); cat != nil {
		meta = styles.NavMetaStyle.Render(fmt.Sprintf("%d titles %s %d shelves",
			cat.Len(), styles.IconDot, len(m.rows)))
	}
	searchBtn := styles.NavMetaStyle.Render(styles.IconSearch + " Search")

	right := searchBtn
	if meta != "" {
		right = meta + "   " + searchBtn
	}

	gap := m.width - 2*rowEdgePad - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	prefix := pad + left + strings.Repeat(" ", gap)
	if meta != "" {
		prefix += meta + "   "
	}
	m.mouse.HitMap.AddRect(navRegionSearch, lipgloss.Width(prefix), 0, lipgloss.Width(searchBtn), 1, nil)

	return []string{ansi.Truncate(prefix+searchBtn, m.width, ""), ""}
}

// renderBody returns exactly the body's line count, rendering the
// visible sections from topSection and padding the remainder.
func (m Model) renderBody() []string {
	bodyH := m.height - navbarHeight - statusBarHeight
	if bodyH < 0 {
		bodyH = 0
	}
	lines := make([]string, 0, bodyH)

	if m.sectionCount() == 0 {
		msg := styles.NavMetaStyle.Render("The catalog is empty")
		if m.loading {
			msg = m.spinner.View() + " " + styles.NavMetaStyle.Render("loading catalog")
		}
		for len(lines) < bodyH {
			if len(lines) == bodyH/2 {
				lines = append(lines, strings.Repeat(" ", rowEdgePad)+msg)
				continue
			}
			lines = append(lines, "")
		}
		return lines
	}

	vis := m.visibleSections()
	for i := 0; i < vis; i++ {
		s := m.topSection + i
		if s >= m.sectionCount() {
			break
		}
		y := navbarHeight + i*rowHeight
		var sec string
		if m.hasHero && s == 0 {
			sec = renderHero(m.mouse.HitMap, m.hero, m.width, y)
		} else {
			rowIdx := s
			if m.hasHero {
				rowIdx--
			}
			sec = renderRow(m.mouse.HitMap, m.facade, m.rows[rowIdx], m.listIDs,
				m.width, y, rowIdx == m.selRow, m.hoverRegion)
		}
		lines = append(lines, sectionLines(sec)...)
	}
	for len(lines) < bodyH {
		lines = append(lines, "")
	}
	return lines[:bodyH]
}

// sectionLines normalizes a rendered section to exactly rowHeight lines
// so section boundaries stay aligned with the hit map's y math.
func sectionLines(s string) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < rowHeight {
		lines = append(lines, "")
	}
	return lines[:rowHeight]
}

// renderStatusBar returns the bottom help line: the confirm prompt when
// a destructive binding is pending, the open title and modal keys while
// the detail modal is up, otherwise the browse help.
func (m Model) renderStatusBar() string {
	pad := strings.Repeat(" ", rowEdgePad)

	if m.state == stateConfirming {
		question := m.pendingAction.Confirm
		if question == "" {
			question = m.pendingAction.Help + "?"
		}
		prompt := styles.StatusKeyStyle.Render(question) + " " +
			styles.StatusHelpStyle.Render("y/enter confirm "+styles.IconDot+" any other key cancels")
		return ansi.Truncate(pad+prompt, m.width, "")
	}

	if m.modal.Active() {
		announce := ""
		if m.modal.Phase() == ModalOpen {
			announce = styles.StatusKeyStyle.Render(m.modal.Record().Title) + "  "
		}
		parts := []string{
			styles.StatusKeyStyle.Render("tab") + " " + styles.StatusHelpStyle.Render("controls"),
			styles.StatusKeyStyle.Render("enter") + " " + styles.StatusHelpStyle.Render("activate"),
			styles.StatusKeyStyle.Render("esc") + " " + styles.StatusHelpStyle.Render("close"),
		}
		return ansi.Truncate(pad+announce+strings.Join(parts, "  "), m.width, "")
	}

	parts := []string{
		styles.StatusKeyStyle.Render("←→") + " " + styles.StatusHelpStyle.Render("browse"),
		styles.StatusKeyStyle.Render("↑↓") + " " + styles.StatusHelpStyle.Render("shelves"),
		styles.StatusKeyStyle.Render("enter") + " " + styles.StatusHelpStyle.Render("details"),
	}
	for _, p := range m.resolver.Pairs() {
		parts = append(parts, styles.StatusKeyStyle.Render(p[0])+" "+styles.StatusHelpStyle.Render(p[1]))
	}
	return ansi.Truncate(pad+strings.Join(parts, "  "), m.width, "")
}
