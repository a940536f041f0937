package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/marquee/internal/core/config"
	"github.com/colonyops/marquee/internal/core/eventbus"
	"github.com/colonyops/marquee/internal/core/notify"
	"github.com/colonyops/marquee/internal/tui/carousel"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

// handleWindowSize applies the new size immediately so rendering never
// works against a stale frame, but defers the metrics recompute behind
// the resize debounce. The first size mounts the shelves.
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	first := m.width == 0
	m.width = msg.Width
	m.height = msg.Height
	m.modal.SetSize(msg.Width, msg.Height)
	if m.search != nil {
		m.search.SetSize(msg.Width, msg.Height)
	}
	m.clampScroll()

	if first {
		m.syncMounts()
		m.restoreUIState()
		return m, nil
	}
	m.resizeSeq++
	return m, scheduleResizeTick(m.cfg.Motion.ResizeDebounce(), m.resizeSeq)
}

// handleResizeTick recomputes layout metrics once a resize burst has
// settled. Earlier bursts' ticks are dropped by seq. Animations in
// flight keep running against the reclamped extents.
func (m Model) handleResizeTick(msg resizeTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.resizeSeq {
		return m, nil
	}
	m.applyMetrics()
	m.clampScroll()
	m.revealSelection(time.Now())
	return m, nil
}

// handleFrameTick advances animations and keeps the chain alive while
// any remain.
func (m Model) handleFrameTick(msg frameTickMsg) (tea.Model, tea.Cmd) {
	m.frameScheduled = false
	m.facade.Advance(time.Time(msg))
	if m.facade.Animating() {
		m.frameScheduled = true
		return m, scheduleFrameTick()
	}
	return m, nil
}

// handleModalPopulate fills the detail modal once the loading delay has
// elapsed. The record resolves at delivery time, not open time, so a
// catalog reload between the two is honored; a miss aborts the modal.
func (m Model) handleModalPopulate(msg modalPopulateMsg) (tea.Model, tea.Cmd) {
	if m.modal.Phase() != ModalOpening || m.modal.Generation() != msg.generation {
		return m, nil // the modal this tick was scheduled for is gone
	}
	id := m.modal.ActiveContentID()
	rec, ok := m.library.Get(id)
	if !ok {
		m.modal.Abort()
		if m.bus != nil {
			// The content.unresolved notification routes back in as a toast.
			m.bus.PublishContentUnresolved(eventbus.ContentUnresolvedPayload{ContentID: id})
		} else {
			m.notifyBus.Errorf("Title unavailable: %s", id)
		}
		return m, nil
	}
	m.modal.Populate(msg.generation, rec, m.listIDs[id])
	if m.bus != nil {
		m.bus.PublishModalOpened(eventbus.ModalOpenedPayload{ContentID: id})
	}
	return m, nil
}

// handleCatalogLoaded swaps in the freshly loaded catalog snapshot.
func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.notifyBus.Errorf("Catalog load failed: %v", msg.err)
		return m, nil
	}
	m.rebuildRows(msg.catalog)
	if unresolved := msg.catalog.Unresolved(); len(unresolved) > 0 {
		m.notifyBus.Warnf("%d unresolved content references", countRefs(unresolved))
	}
	if m.loadedOnce {
		m.notifyBus.Successf("Catalog reloaded: %d titles", msg.catalog.Len())
	}
	m.loadedOnce = true
	m.restoreUIState()
	return m, m.loadMyList()
}

func countRefs(unresolved map[string][]string) int {
	n := 0
	for _, ids := range unresolved {
		n += len(ids)
	}
	return n
}

// handleCatalogChanged reloads after the file watcher reports a change.
func (m Model) handleCatalogChanged(CatalogChangedMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	return m, m.loadCatalog()
}

// handleMyListLoaded refreshes the synthetic shelf and membership set,
// remounting the My List carousel at its new extent.
func (m Model) handleMyListLoaded(msg myListLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notifyBus.Errorf("My List unavailable: %v", msg.err)
		return m, nil
	}
	m.listRecs = msg.records
	m.listIDs = msg.ids
	if cat := m.library.Current(); cat != nil {
		m.rebuildRows(cat)
	}
	if m.modal.Active() {
		m.modal.SetOnList(m.listIDs[m.modal.ActiveContentID()])
	}
	return m, nil
}

// handleListToggled applies a toggle result. The success toast arrives
// separately, routed off the list.added/removed events.
func (m Model) handleListToggled(msg listToggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notifyBus.Errorf("My List update failed: %v", msg.err)
		return m, nil
	}
	if m.bus == nil {
		if msg.onList {
			m.notifyBus.Successf("Added to My List: %s", msg.title)
		} else {
			m.notifyBus.Infof("Removed from My List: %s", msg.title)
		}
	}
	if m.modal.Active() && m.modal.ActiveContentID() == msg.contentID {
		m.modal.SetOnList(msg.onList)
	}
	return m, m.loadMyList()
}

func (m Model) handleCopyLink(msg copyLinkMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notifyBus.Errorf("Copy failed: %v", msg.err)
	} else {
		m.notifyBus.Successf("Link copied: %s", msg.title)
	}
	return m, nil
}

// handleNotification surfaces a bus-routed notification as a toast.
func (m Model) handleNotification(msg NotificationMsg) (tea.Model, tea.Cmd) {
	m.notifyBus.Publish(notify.Notification{
		Level:   msg.Level,
		Message: msg.Message,
	})
	return m, nil
}

func (m Model) handleToastTick(toastTickMsg) (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

func (m Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleKeyMsg routes key presses by mode. The modal claims keys first
// whenever it is up; focus never leaks to the page behind it.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keyCtrlC {
		return m.quit()
	}
	if m.modal.Active() {
		return m.handleModalKey(key)
	}
	switch m.state {
	case stateSearching:
		return m.handleSearchKey(msg)
	case stateConfirming:
		return m.handleConfirmKey(key)
	}
	return m.handleBrowseKey(key)
}

// handleModalKey drives the focus ring and control activation. Tab wraps
// in both directions; Esc and q close with focus restore.
func (m Model) handleModalKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q":
		return m.closeModal()
	case "tab":
		m.modal.FocusNext()
	case "shift+tab":
		m.modal.FocusPrev()
	case keyEnter, " ":
		return m.dispatchModalAction(m.modal.Activate())
	case "m":
		if m.modal.Phase() == ModalOpen {
			rec := m.modal.Record()
			return m, m.toggleList(rec.ID, rec.Title)
		}
	case "y":
		if m.modal.Phase() == ModalOpen {
			return m, copyLink(m.modal.Record())
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	next, fcmd := m.finishSearch()
	if fcmd != nil {
		return next, tea.Batch(cmd, fcmd)
	}
	return next, cmd
}

// finishSearch drains the panel's outcome: a cancelled panel closes, a
// chosen record closes the panel and opens its details.
func (m Model) finishSearch() (tea.Model, tea.Cmd) {
	if m.search == nil {
		return m, nil
	}
	if m.search.Cancelled() {
		m.search = nil
		m.state = stateBrowsing
		return m, nil
	}
	if rec, ok := m.search.Chosen(); ok {
		m.search = nil
		m.state = stateBrowsing
		m.selectContent(rec.ID)
		return m.openModal(rec.ID)
	}
	return m, nil
}

func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	act := m.pendingAction
	m.pendingAction = BoundAction{}
	m.state = stateBrowsing
	switch key {
	case "y", keyEnter:
		return m.dispatchAction(act)
	}
	m.notifyBus.Infof("Cancelled")
	return m, nil
}

// handleBrowseKey resolves configured bindings first, then falls back to
// the fixed navigation keys.
func (m Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	if act, ok := m.resolver.Resolve(key); ok {
		if act.NeedsConfirm() {
			m.state = stateConfirming
			m.pendingAction = act
			return m, nil
		}
		return m.dispatchAction(act)
	}

	now := time.Now()
	switch key {
	case "left", "h":
		return m.moveCursor(-1, now)
	case "right", "l":
		return m.moveCursor(1, now)
	case "up", "k":
		return m.moveRow(-1, now)
	case "down", "j":
		return m.moveRow(1, now)
	case "home", "g":
		return m.jumpRowEdge(false, now)
	case "end", "G":
		return m.jumpRowEdge(true, now)
	case keyEnter:
		if rec, ok := m.selectedRecord(); ok {
			return m.openModal(rec.ID)
		}
	case "esc":
		m.toastController.DismissAll()
	}
	return m, nil
}

// dispatchAction executes a resolved keybinding action.
func (m Model) dispatchAction(act BoundAction) (tea.Model, tea.Cmd) {
	switch act.Action {
	case config.ActionQuit:
		return m.quit()
	case config.ActionSearch:
		return m.startSearch()
	case config.ActionMyList:
		if i := m.rowIndexByID(myListRowID); i >= 0 {
			m.selRow = i
			m.ensureSectionVisible(m.sectionIndex(i))
			m.revealSelection(time.Now())
		} else {
			m.notifyBus.Infof("My List is empty")
		}
		return m, nil
	case config.ActionReload:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.loadCatalog()
	case config.ActionCopy:
		if rec, ok := m.selectedRecord(); ok {
			return m, copyLink(rec)
		}
		return m, nil
	}
	m.notifyBus.Warnf("Unknown action: %s", act.Action)
	return m, nil
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.state = stateSearching
	m.search = NewSearchPanel(m.library, m.width, m.height)
	return m, textinput.Blink
}

// moveCursor moves the card cursor within the active shelf, scrolling
// just enough to keep it visible. At the ends it stays put.
func (m Model) moveCursor(delta int, now time.Time) (tea.Model, tea.Cmd) {
	row := m.currentRow()
	if row == nil {
		return m, nil
	}
	ns := clampInt(row.sel+delta, 0, len(row.records)-1)
	if ns != row.sel {
		row.sel = ns
		m.revealSelection(now)
	}
	return m, nil
}

// moveRow moves the shelf cursor vertically. Each shelf remembers its
// own card cursor.
func (m Model) moveRow(delta int, now time.Time) (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		return m, nil
	}
	ns := clampInt(m.selRow+delta, 0, len(m.rows)-1)
	if ns != m.selRow {
		m.selRow = ns
		m.ensureSectionVisible(m.sectionIndex(ns))
		m.revealSelection(now)
	}
	return m, nil
}

// jumpRowEdge jumps the cursor to the first or last card of the shelf.
func (m Model) jumpRowEdge(end bool, now time.Time) (tea.Model, tea.Cmd) {
	row := m.currentRow()
	if row == nil {
		return m, nil
	}
	if end {
		row.sel = len(row.records) - 1
	} else {
		row.sel = 0
	}
	m.revealSelection(now)
	return m, nil
}

func (m *Model) rowIndexByID(id string) int {
	for i, r := range m.rows {
		if r.id == id {
			return i
		}
	}
	return -1
}

// openModal starts the detail modal lifecycle for a record and schedules
// its deferred population.
func (m Model) openModal(contentID string) (tea.Model, tea.Cmd) {
	trigger := ModalTrigger{RowID: m.currentRowID()}
	if row := m.currentRow(); row != nil {
		trigger.Index = row.sel
	}
	gen := m.modal.Open(contentID, trigger)

	delay := m.cfg.Motion.ModalOpenDelay()
	if m.cfg.UI.ReducedMotion {
		delay = 0
	}
	return m, scheduleModalPopulate(delay, gen)
}

// closeModal tears the modal down and restores the cursor to the card
// that opened it.
func (m Model) closeModal() (tea.Model, tea.Cmd) {
	closedID := m.modal.ActiveContentID()
	trigger, ok := m.modal.Close()
	if !ok {
		return m, nil
	}
	if m.bus != nil {
		m.bus.PublishModalClosed(eventbus.ModalClosedPayload{ContentID: closedID})
	}
	if i := m.rowIndexByID(trigger.RowID); i >= 0 {
		m.selRow = i
		m.rows[i].sel = clampInt(trigger.Index, 0, len(m.rows[i].records)-1)
		m.ensureSectionVisible(m.sectionIndex(i))
		m.revealSelection(time.Now())
	}
	return m, nil
}

// dispatchModalAction executes an activated modal control.
func (m Model) dispatchModalAction(action ModalAction) (tea.Model, tea.Cmd) {
	switch action {
	case ModalActionPlay:
		m.notifyBus.Infof("Now playing %s", m.modal.Record().Title)
		return m, nil
	case ModalActionToggleList:
		rec := m.modal.Record()
		return m, m.toggleList(rec.ID, rec.Title)
	case ModalActionCopyLink:
		return m, copyLink(m.modal.Record())
	case ModalActionClose:
		return m.closeModal()
	}
	return m, nil
}

// handleMouseMsg interprets a raw mouse event through the hit map and
// routes the resulting action.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	act := m.mouse.HandleMouse(msg)
	switch act.Type {
	case mouse.ActionClick:
		return m.handleMouseClick(act)
	case mouse.ActionDrag:
		return m.handleMouseDrag(act)
	case mouse.ActionDragEnd:
		return m.handleMouseDragEnd(act)
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		return m.handleWheelVertical(act)
	case mouse.ActionScrollLeft, mouse.ActionScrollRight:
		return m.handleWheelHorizontal(act)
	case mouse.ActionHover:
		m.hoverRegion = ""
		if act.Region != nil {
			m.hoverRegion = act.Region.ID
		}
	}
	return m, nil
}

func (m Model) handleMouseClick(act mouse.Action) (tea.Model, tea.Cmd) {
	if act.Region == nil {
		return m, nil
	}
	id := act.Region.ID

	if id == toastRegionStack {
		m.toastController.Dismiss()
		return m, nil
	}

	if m.modal.Active() {
		switch id {
		case modalRegionBackdrop:
			return m.closeModal()
		case modalRegionPanel:
			return m, nil
		}
		if strings.HasPrefix(id, "modal:btn:") {
			return m.dispatchModalAction(m.modal.ActivateControl(id))
		}
		return m, nil
	}

	if m.state == stateSearching {
		if strings.HasPrefix(id, searchItemPrefix) {
			idx, err := strconv.Atoi(strings.TrimPrefix(id, searchItemPrefix))
			if err == nil {
				m.search.Choose(idx)
			}
			return m.finishSearch()
		}
		if id == searchRegionPanel {
			return m, nil
		}
		// Click outside the panel dismisses it.
		m.search = nil
		m.state = stateBrowsing
		return m, nil
	}

	switch id {
	case navRegionSearch:
		return m.startSearch()
	case heroRegionPlay:
		m.notifyBus.Infof("Now playing %s", m.hero.Title)
		return m, nil
	case heroRegionInfo:
		m.selectContent(m.hero.ID)
		return m.openModal(m.hero.ID)
	}

	if rowID, part, ok := parseRowRegion(id); ok {
		return m.handleRowClick(act, rowID, part)
	}
	return m, nil
}

// handleRowClick maps presses on a shelf: arrows page, the strip starts
// a gesture (and remembers the pressed card so a clean release opens
// it).
func (m Model) handleRowClick(act mouse.Action, rowID, part string) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch part {
	case "left":
		m.facade.ScrollRow(rowID, carousel.Left, now)
	case "right":
		m.facade.ScrollRow(rowID, carousel.Right, now)
	case "strip":
		state, ok := m.facade.State(rowID)
		if !ok {
			return m, nil
		}
		if i := m.rowIndexByID(rowID); i >= 0 {
			m.selRow = i
			m.ensureSectionVisible(m.sectionIndex(i))
			idx := cardIndexAt(state, act.Region.Rect.X, act.X)
			m.pressCard = idx
			if idx >= 0 {
				m.rows[i].sel = idx
			}
		}
		m.mouse.StartDrag(act.X, act.Y, act.Region.ID, int(state.Offset))
		m.dragRow = rowID
		m.facade.GestureBegin(rowID, float64(act.X), float64(act.Y), true, now)
	}
	return m, nil
}

func (m Model) handleMouseDrag(act mouse.Action) (tea.Model, tea.Cmd) {
	if m.dragRow == "" {
		return m, nil
	}
	m.facade.GestureMove(m.dragRow, float64(act.X), float64(act.Y), time.Now())
	return m, nil
}

// handleMouseDragEnd closes the gesture. A release that never became a
// drag is a click on the pressed card, which opens its details.
func (m Model) handleMouseDragEnd(act mouse.Action) (tea.Model, tea.Cmd) {
	if m.dragRow == "" {
		return m, nil
	}
	rowID := m.dragRow
	m.dragRow = ""
	wasDragging := m.facade.Dragging(rowID)
	m.facade.GestureEnd(rowID, time.Now())

	pressed := m.pressCard
	m.pressCard = -1
	if !wasDragging && pressed >= 0 {
		if rec, ok := m.selectedRecord(); ok {
			return m.openModal(rec.ID)
		}
	}
	return m, nil
}

// handleWheelVertical scrolls the page. Vertical intent over a shelf
// passes through to the page rather than moving the shelf.
func (m Model) handleWheelVertical(act mouse.Action) (tea.Model, tea.Cmd) {
	if m.modal.Active() || m.state == stateSearching {
		return m, nil
	}
	if act.Type == mouse.ActionScrollUp {
		m.scrollSections(-1)
	} else {
		m.scrollSections(1)
	}
	return m, nil
}

// handleWheelHorizontal nudges the shelf under the cursor by the fixed
// wheel step. Shift+wheel reads as horizontal.
func (m Model) handleWheelHorizontal(act mouse.Action) (tea.Model, tea.Cmd) {
	if m.modal.Active() || m.state == stateSearching || act.Region == nil {
		return m, nil
	}
	rowID, _, ok := parseRowRegion(act.Region.ID)
	if !ok {
		return m, nil
	}
	dir := carousel.Right
	if act.Type == mouse.ActionScrollLeft {
		dir = carousel.Left
	}
	m.facade.Wheel(rowID, dir, time.Now())
	return m, nil
}
