package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

// ModalPhase is the lifecycle state of the detail modal.
type ModalPhase int

const (
	ModalClosed ModalPhase = iota
	ModalOpening
	ModalOpen
	ModalClosing
)

func (p ModalPhase) String() string {
	switch p {
	case ModalOpening:
		return "opening"
	case ModalOpen:
		return "open"
	case ModalClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Modal control ids, also used as hit map region ids.
const (
	modalControlPlay  = "modal:btn:play"
	modalControlList  = "modal:btn:list"
	modalControlCopy  = "modal:btn:copy"
	modalControlClose = "modal:btn:close"

	modalRegionBackdrop = "modal:backdrop"
	modalRegionPanel    = "modal:panel"
)

// ModalAction is what activating the focused control asks the model to do.
type ModalAction int

const (
	ModalActionNone ModalAction = iota
	ModalActionPlay
	ModalActionToggleList
	ModalActionCopyLink
	ModalActionClose
)

// ModalTrigger remembers which card opened the modal so selection can be
// restored on close.
type ModalTrigger struct {
	RowID string
	Index int
}

// DetailModal runs the content detail overlay through its lifecycle:
// closed, opening (loading placeholder), open (populated, focus trapped),
// and back to closed. All transitions happen on the update loop; the only
// deferred step is population, which arrives as a tick carrying the
// generation it was scheduled under.
type DetailModal struct {
	phase      ModalPhase
	generation uint64

	contentID string
	trigger   ModalTrigger
	record    catalog.Record
	synopsis  string // glamour-rendered markdown
	onList    bool
	ring      *FocusRing

	width  int
	height int
}

// NewDetailModal creates a closed modal.
func NewDetailModal() *DetailModal {
	return &DetailModal{}
}

// Phase returns the current lifecycle phase.
func (m *DetailModal) Phase() ModalPhase {
	return m.phase
}

// Generation returns the open counter. Deferred population ticks carry it
// so stale ones can be discarded.
func (m *DetailModal) Generation() uint64 {
	return m.generation
}

// ActiveContentID returns the id being shown, or empty when closed.
func (m *DetailModal) ActiveContentID() string {
	return m.contentID
}

// Active reports whether the modal should absorb input, true in every
// phase except closed.
func (m *DetailModal) Active() bool {
	return m.phase != ModalClosed
}

// Record returns the populated content record. Valid while open.
func (m *DetailModal) Record() catalog.Record {
	return m.record
}

// OnList reports whether the shown record is on my list.
func (m *DetailModal) OnList() bool {
	return m.onList
}

// Ring returns the focus ring, nil until the modal is populated.
func (m *DetailModal) Ring() *FocusRing {
	return m.ring
}

// SetSize records the viewport for overlay layout.
func (m *DetailModal) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Open starts the open sequence for a content id, recording the card that
// triggered it. Opening over a live modal supersedes it: the previous
// content never mutates in place, the overlay restarts from the loading
// placeholder under a fresh generation. Returns the generation the
// deferred population tick must carry.
func (m *DetailModal) Open(contentID string, trigger ModalTrigger) uint64 {
	if m.phase != ModalClosed {
		m.reset()
	}
	m.generation++
	m.phase = ModalOpening
	m.contentID = contentID
	m.trigger = trigger
	log.Debug().Str("content_id", contentID).Uint64("generation", m.generation).Msg("modal opening")
	return m.generation
}

// Populate completes the open sequence with the resolved record. A tick
// from a superseded or closed open is discarded. The caller resolves the
// record at delivery time, so a catalog reload during the placeholder
// window is reflected rather than raced.
func (m *DetailModal) Populate(generation uint64, rec catalog.Record, onList bool) bool {
	if m.phase != ModalOpening || generation != m.generation {
		log.Debug().
			Uint64("generation", generation).
			Uint64("current", m.generation).
			Str("phase", m.phase.String()).
			Msg("stale modal population discarded")
		return false
	}

	m.record = rec
	m.onList = onList
	m.synopsis = renderSynopsis(rec.Synopsis, modalBodyWidth(m.width))
	m.ring = NewFocusRing(
		Focusable{ID: modalControlPlay, Label: playLabel(rec)},
		Focusable{ID: modalControlList, Label: listLabel(onList)},
		Focusable{ID: modalControlCopy, Label: "Copy Link", Disabled: rec.URL == ""},
		Focusable{ID: modalControlClose, Label: "Close"},
	)
	m.ring.Focus(modalControlClose)
	m.phase = ModalOpen
	log.Info().Str("content_id", m.contentID).Str("title", rec.Title).Msg("modal open")
	return true
}

// Abort cancels an open sequence whose content could not be resolved. The
// modal returns to closed; the caller owns telling the user why.
func (m *DetailModal) Abort() {
	log.Warn().Str("content_id", m.contentID).Msg("modal open aborted, content unresolved")
	m.reset()
}

// Close ends the modal from any live phase and returns the trigger so the
// caller can restore selection. Closing during opening leaves the pending
// population tick orphaned; its generation no longer matches.
func (m *DetailModal) Close() (ModalTrigger, bool) {
	if m.phase == ModalClosed {
		return ModalTrigger{}, false
	}
	trigger := m.trigger
	m.phase = ModalClosing
	log.Debug().Str("content_id", m.contentID).Msg("modal closing")
	m.reset()
	return trigger, true
}

// reset drops all per-open state. Bindings and hit regions are rebuilt
// from scratch each open, so nothing accumulates across cycles.
func (m *DetailModal) reset() {
	m.phase = ModalClosed
	m.contentID = ""
	m.trigger = ModalTrigger{}
	m.record = catalog.Record{}
	m.synopsis = ""
	m.onList = false
	m.ring = nil
}

// SetOnList updates the list state and the toggle button label in place.
// The record itself never mutates while open.
func (m *DetailModal) SetOnList(v bool) {
	m.onList = v
	if m.ring == nil {
		return
	}
	for i := range m.ring.items {
		if m.ring.items[i].ID == modalControlList {
			m.ring.items[i].Label = listLabel(v)
		}
	}
}

// FocusNext advances the focus trap.
func (m *DetailModal) FocusNext() {
	if m.phase == ModalOpen && m.ring != nil {
		m.ring.Next()
	}
}

// FocusPrev moves the focus trap backwards.
func (m *DetailModal) FocusPrev() {
	if m.phase == ModalOpen && m.ring != nil {
		m.ring.Prev()
	}
}

// Activate maps the focused control to the action the model should run.
// During opening only close is available (Esc and backdrop still work).
func (m *DetailModal) Activate() ModalAction {
	if m.phase != ModalOpen || m.ring == nil {
		return ModalActionNone
	}
	cur, ok := m.ring.Current()
	if !ok {
		return ModalActionNone
	}
	return actionForControl(cur.ID)
}

// ActivateControl focuses and activates a specific control, for mouse
// clicks that land on a button.
func (m *DetailModal) ActivateControl(id string) ModalAction {
	if m.phase != ModalOpen || m.ring == nil {
		return ModalActionNone
	}
	if !m.ring.Focus(id) {
		return ModalActionNone
	}
	return actionForControl(id)
}

func actionForControl(id string) ModalAction {
	switch id {
	case modalControlPlay:
		return ModalActionPlay
	case modalControlList:
		return ModalActionToggleList
	case modalControlCopy:
		return ModalActionCopyLink
	case modalControlClose:
		return ModalActionClose
	default:
		return ModalActionNone
	}
}

func playLabel(rec catalog.Record) string {
	if rec.InProgress() {
		return "Resume"
	}
	return "Play"
}

func listLabel(onList bool) string {
	if onList {
		return "On My List " + styles.IconListed
	}
	return "My List " + styles.IconListAdd
}

// --- layout and rendering ---

// modalPanelWidth is the outer width of the centered panel, clamped to
// the viewport.
func modalPanelWidth(viewport int) int {
	w := 64
	if viewport > 0 && viewport-4 < w {
		w = viewport - 4
	}
	if w < 20 {
		w = 20
	}
	return w
}

// modalBodyWidth is the wrap width for body text inside the panel frame
// (border 1 + padding 2 per side).
func modalBodyWidth(viewport int) int {
	return modalPanelWidth(viewport) - 6
}

// renderSynopsis renders markdown through glamour at the given wrap
// width. Render errors fall back to the raw text; the modal never fails
// to open over cosmetics.
func renderSynopsis(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	log.Debug().Err(err).Msg("synopsis render failed, using raw text")
	return lipgloss.NewStyle().Width(width).Render(md)
}

// View renders the panel contents for the current phase.
func (m *DetailModal) View(spinnerView string) string {
	bodyWidth := modalBodyWidth(m.width)

	if m.phase == ModalOpening {
		content := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.ModalTitleStyle.Render("Loading"),
			"",
			spinnerView+" "+styles.ModalLoadingStyle.Render("fetching details"),
			styles.ModalHelpStyle.Render("esc close"),
		)
		return styles.ModalStyle.Width(modalPanelWidth(m.width) - 2).Render(content)
	}

	rec := m.record
	meta := fmt.Sprintf("%d  %s  %s  %s %.1f",
		rec.Year, rec.Maturity, rec.RuntimeLabel(), styles.IconStar, rec.Rating)

	sections := []string{
		styles.ModalTitleStyle.Render(rec.Title),
		styles.ModalMetaStyle.Render(meta),
	}
	if len(rec.Genres) > 0 {
		sections = append(sections, styles.ModalMetaStyle.Render(strings.Join(rec.Genres, " "+styles.IconDot+" ")))
	}
	if m.synopsis != "" {
		sections = append(sections, "", m.synopsis)
	}
	if len(rec.Cast) > 0 {
		sections = append(sections, "", styles.ModalMetaStyle.Render("Cast: "+strings.Join(rec.Cast, ", ")))
	}
	sections = append(sections,
		"",
		m.renderButtons(),
		styles.ModalHelpStyle.Render("tab cycle  enter select  esc close"),
	)

	content := lipgloss.NewStyle().Width(bodyWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
	return styles.ModalStyle.Width(modalPanelWidth(m.width) - 2).Render(content)
}

func (m *DetailModal) renderButtons() string {
	if m.ring == nil {
		return ""
	}
	parts := make([]string, 0, m.ring.Len()*2)
	for _, item := range m.ring.Items() {
		style := styles.ModalButtonStyle
		switch {
		case item.Disabled:
			style = styles.ModalButtonDisabledStyle
		case m.ring.IsFocused(item.ID):
			style = styles.ModalButtonFocusedStyle
		}
		if len(parts) > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, style.Render(item.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Overlay composites the modal over the background, centered, with the
// page behind it dimmed to read as inactive.
func (m *DetailModal) Overlay(background, spinnerView string) string {
	if !m.Active() {
		return background
	}
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return overlayCenter(dimBackground(background), m.View(spinnerView), w, h)
}

// RegisterHitRegions rebuilds the modal's mouse regions for this frame:
// the full-screen backdrop, the panel, and one region per button. The
// panel region shields clicks that land inside the modal but not on a
// control; only the backdrop itself closes.
func (m *DetailModal) RegisterHitRegions(hm *mouse.HitMap, spinnerView string) {
	if !m.Active() {
		return
	}
	w, h := m.width, m.height
	if w == 0 || h == 0 {
		return
	}

	hm.AddRect(modalRegionBackdrop, 0, 0, w, h, nil)

	view := m.View(spinnerView)
	panelW := lipgloss.Width(view)
	panelH := lipgloss.Height(view)
	panelX := (w - panelW) / 2
	panelY := (h - panelH) / 2
	hm.AddRect(modalRegionPanel, panelX, panelY, panelW, panelH, nil)

	if m.phase != ModalOpen || m.ring == nil {
		return
	}

	// Counting up from the panel's last row: bottom border, bottom
	// padding, help text, help margin blank, then the button row.
	buttonY := panelY + panelH - 5
	// Content starts inside the frame: border 1 + padding 2.
	buttonX := panelX + 3
	for _, item := range m.ring.Items() {
		bw := lipgloss.Width(styles.ModalButtonStyle.Render(item.Label))
		if !item.Disabled {
			hm.AddRect(item.ID, buttonX, buttonY, bw, 1, nil)
		}
		buttonX += bw + 1
	}
}
