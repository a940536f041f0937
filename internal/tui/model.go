// Package tui implements the marquee browse screen: a vertical stack of
// horizontally scrolling shelves with momentum physics, a detail modal,
// fuzzy search, and toast notifications. All state lives in one Bubble
// Tea model; input, animation ticks, and async results funnel through
// its single Update loop.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/config"
	"github.com/colonyops/marquee/internal/core/eventbus"
	corekv "github.com/colonyops/marquee/internal/core/kv"
	"github.com/colonyops/marquee/internal/core/notify"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/tui/carousel"
	"github.com/colonyops/marquee/internal/tui/mouse"
	tuinotify "github.com/colonyops/marquee/internal/tui/notify"
)

// UIState represents the current input mode of the browse screen. The
// detail modal is tracked by its own lifecycle phase, not a UIState:
// it overlays whichever mode is active.
type UIState int

const (
	stateBrowsing UIState = iota
	stateSearching
	stateConfirming
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// myListRowID is the synthetic shelf fed from the persisted list rather
// than the catalog.
const myListRowID = "my-list"

const navRegionSearch = "nav:search"

// Options configures the TUI behavior.
type Options struct {
	Bus         *eventbus.EventBus // event bus for cross-component communication
	KVStore     corekv.KV          // persistent KV store for UI state (optional)
	NotifyStore notify.Store       // notification history store (optional)
	Warnings    []string           // startup warnings to display as toasts
}

// rowData is one rendered shelf: the catalog row (or the synthetic My
// List row) resolved to records, plus its cursor.
type rowData struct {
	id      string
	title   string
	records []catalog.Record
	sel     int
}

// browseState is the persisted UI state restored on the next launch.
type browseState struct {
	SelectedRow string             `json:"selected_row"`
	Cursors     map[string]int     `json:"cursors"`
	Offsets     map[string]float64 `json:"offsets"`
}

// Model is the main Bubble Tea model for the browse screen.
type Model struct {
	cfg     *config.Config
	library ContentResolver
	list    ListMutator

	facade   *carousel.Facade
	modal    *DetailModal
	mouse    *mouse.Handler
	resolver *KeybindingResolver
	search   *SearchPanel
	spinner  spinner.Model

	state    UIState
	rows     []rowData
	hero     catalog.Record
	hasHero  bool
	listRecs []catalog.Record
	listIDs  map[string]bool

	selRow     int
	topSection int

	width  int
	height int

	// resizeSeq stamps resize debounce ticks; a tick whose seq is stale
	// belongs to an earlier burst and is dropped.
	resizeSeq uint64
	// frameScheduled guards the animation tick chain: one chain at a time.
	frameScheduled bool

	// dragRow is the shelf that captured the pointer, "" when none. The
	// press position's card is kept so a clean click opens its details.
	dragRow   string
	pressCard int
	// hoverRegion is the hit region under the pointer, for arrow
	// highlighting.
	hoverRegion string

	loading    bool
	loadedOnce bool
	restored   bool
	quitting   bool

	pendingAction BoundAction

	notifyBus       *tuinotify.Bus
	toastController *ToastController
	toastView       *ToastView

	uiState *corekv.TypedKV[browseState]
	bus     *eventbus.EventBus

	startupWarnings []string
}

// New creates the browse screen model.
func New(library ContentResolver, list ListMutator, cfg *config.Config, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.CardProgressStyle

	notifyBus := tuinotify.NewBus(opts.NotifyStore)
	toastCtrl := NewToastController()
	toastView := NewToastView(toastCtrl)

	// Wire bus -> toast controller. Publishes happen inside the Update
	// loop, so the push is single-threaded.
	notifyBus.Subscribe(func(n notify.Notification) {
		toastCtrl.Push(n)
	})

	var uiState *corekv.TypedKV[browseState]
	if opts.KVStore != nil {
		uiState = corekv.Scoped[browseState](opts.KVStore, "ui")
	}

	return Model{
		cfg:             cfg,
		library:         library,
		list:            list,
		facade:          carousel.New(cfg),
		modal:           NewDetailModal(),
		mouse:           mouse.NewHandler(),
		resolver:        NewKeybindingResolver(cfg.Keybindings),
		spinner:         s,
		state:           stateBrowsing,
		listIDs:         map[string]bool{},
		loading:         true,
		pressCard:       -1,
		notifyBus:       notifyBus,
		toastController: toastCtrl,
		toastView:       toastView,
		uiState:         uiState,
		bus:             opts.Bus,
		startupWarnings: opts.Warnings,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCatalog(), m.spinner.Tick}
	if m.bus != nil {
		m.bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	}
	for _, w := range m.startupWarnings {
		m.toastController.Push(notify.Notification{
			Level:   notify.LevelWarning,
			Message: w,
		})
	}
	if m.toastController.HasToasts() {
		m.toastController.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

// Update handles messages. Handlers return the next model; the tick
// chains that drive animations and toast TTLs are re-armed centrally
// here so no handler has to remember.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.dispatch(msg)
	model, ok := next.(Model)
	if !ok {
		return next, cmd
	}
	if c := model.ensureFrameTick(); c != nil {
		cmd = tea.Batch(cmd, c)
	}
	if c := model.ensureToastTick(); c != nil {
		cmd = tea.Batch(cmd, c)
	}
	return model, cmd
}

func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// Window
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case resizeTickMsg:
		return m.handleResizeTick(msg)

	// Animation
	case frameTickMsg:
		return m.handleFrameTick(msg)

	// Modal lifecycle
	case modalPopulateMsg:
		return m.handleModalPopulate(msg)

	// Data loaded
	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)
	case CatalogChangedMsg:
		return m.handleCatalogChanged(msg)
	case myListLoadedMsg:
		return m.handleMyListLoaded(msg)

	// Action results
	case listToggledMsg:
		return m.handleListToggled(msg)
	case copyLinkMsg:
		return m.handleCopyLink(msg)

	// Notifications
	case NotificationMsg:
		return m.handleNotification(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)

	// Input
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	return m, nil
}

// ensureFrameTick arms the animation tick chain if an animation is live
// and no chain is running.
func (m *Model) ensureFrameTick() tea.Cmd {
	if m.frameScheduled || !m.facade.Animating() {
		return nil
	}
	m.frameScheduled = true
	return scheduleFrameTick()
}

// ensureToastTick arms the toast TTL chain if toasts are showing and no
// chain is running.
func (m *Model) ensureToastTick() tea.Cmd {
	if m.toastController.Ticking() || !m.toastController.HasToasts() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

// quit persists UI state, emits tui.stopped, and exits.
func (m Model) quit() (Model, tea.Cmd) {
	m.saveUIState()
	m.quitting = true
	if m.bus != nil {
		m.bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
	}
	return m, tea.Quit
}

// loadCatalog loads the library off the update loop.
func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		cat, err := m.library.Load(context.Background())
		return catalogLoadedMsg{catalog: cat, err: err}
	}
}

// loadMyList fetches the persisted list and membership set.
func (m Model) loadMyList() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		recs, err := m.list.Records(ctx)
		if err != nil {
			return myListLoadedMsg{err: err}
		}
		ids, err := m.list.IDSet(ctx)
		return myListLoadedMsg{records: recs, ids: ids, err: err}
	}
}

// toggleList flips a title's list membership off the update loop.
func (m Model) toggleList(contentID, title string) tea.Cmd {
	return func() tea.Msg {
		onList, err := m.list.Toggle(context.Background(), contentID)
		return listToggledMsg{contentID: contentID, title: title, onList: onList, err: err}
	}
}

// copyLink writes a record's external link to the system clipboard.
func copyLink(rec catalog.Record) tea.Cmd {
	return func() tea.Msg {
		if rec.URL == "" {
			return copyLinkMsg{title: rec.Title, err: errors.New("no link available")}
		}
		return copyLinkMsg{title: rec.Title, err: clipboard.WriteAll(rec.URL)}
	}
}

// rebuildRows recomputes the shelf list from a catalog snapshot plus the
// synthetic My List shelf, carrying cursors over and syncing carousel
// mounts. Rows whose every reference is unresolved disappear.
func (m *Model) rebuildRows(cat *catalog.Catalog) {
	oldSel := make(map[string]int, len(m.rows))
	selID := m.currentRowID()
	for _, r := range m.rows {
		oldSel[r.id] = r.sel
	}

	rows := make([]rowData, 0, len(cat.Rows())+1)
	if len(m.listRecs) > 0 {
		rows = append(rows, rowData{id: myListRowID, title: "My List", records: m.listRecs})
	}
	for _, row := range cat.Rows() {
		recs, missing := cat.RowRecords(row)
		if len(missing) > 0 {
			log.Warn().Str("row", row.ID).Strs("content_ids", missing).Msg("unresolved content references")
		}
		if len(recs) == 0 {
			continue
		}
		rows = append(rows, rowData{id: row.ID, title: row.Title, records: recs})
	}

	for i := range rows {
		if sel, ok := oldSel[rows[i].id]; ok {
			rows[i].sel = clampInt(sel, 0, len(rows[i].records)-1)
		}
	}

	m.rows = rows
	m.hero, m.hasHero = cat.Hero()
	m.selRow = 0
	for i, r := range rows {
		if r.id == selID {
			m.selRow = i
			break
		}
	}
	m.syncMounts()
	m.clampScroll()
}

// syncMounts reconciles carousel rows with the shelf list: mount new and
// changed rows at the current metrics, unmount removed ones. Remounts
// keep their offsets, clamped to the new extent.
func (m *Model) syncMounts() {
	if m.width == 0 {
		// No size yet; mounts happen on the first WindowSizeMsg.
		return
	}
	want := make(map[string]bool, len(m.rows))
	for _, r := range m.rows {
		want[r.id] = true
		m.facade.Mount(r.id, rowMetrics(m.cfg, m.width, len(r.records)))
	}
	for _, id := range m.facade.RowIDs() {
		if !want[id] {
			m.facade.Unmount(id)
		}
	}
}

// applyMetrics recomputes every row's metrics for the current width.
// Offsets reclamp; in-flight animations keep running against the new
// extents.
func (m *Model) applyMetrics() {
	for _, r := range m.rows {
		m.facade.Resize(r.id, rowMetrics(m.cfg, m.width, len(r.records)))
	}
}

// currentRow returns the selected shelf, nil when none exist.
func (m *Model) currentRow() *rowData {
	if m.selRow < 0 || m.selRow >= len(m.rows) {
		return nil
	}
	return &m.rows[m.selRow]
}

func (m *Model) currentRowID() string {
	if row := m.currentRow(); row != nil {
		return row.id
	}
	return ""
}

// selectedRecord returns the record under the cursor.
func (m *Model) selectedRecord() (catalog.Record, bool) {
	row := m.currentRow()
	if row == nil || row.sel < 0 || row.sel >= len(row.records) {
		return catalog.Record{}, false
	}
	return row.records[row.sel], true
}

// selectContent moves the cursor to the first shelf containing id.
func (m *Model) selectContent(id string) bool {
	for i, row := range m.rows {
		for j, rec := range row.records {
			if rec.ID == id {
				m.selRow = i
				m.rows[i].sel = j
				m.ensureSectionVisible(m.sectionIndex(i))
				m.revealSelection(time.Now())
				return true
			}
		}
	}
	return false
}

// revealSelection scrolls the active shelf just far enough to bring the
// cursor's card fully into view, animated.
func (m *Model) revealSelection(now time.Time) {
	row := m.currentRow()
	if row == nil {
		return
	}
	state, ok := m.facade.State(row.id)
	if !ok {
		return
	}
	left := state.Metrics.CardLeft(row.sel)
	right := left + state.Metrics.CardWidth
	viewport := state.Metrics.ViewportWidth

	switch {
	case left < state.Offset:
		m.facade.ScrollTo(row.id, left, now)
	case right > state.Offset+viewport:
		m.facade.ScrollTo(row.id, right-viewport, now)
	}
}

// Section layout: the hero banner (when present) is section 0, shelves
// follow. All sections are rowHeight tall.

func (m *Model) sectionCount() int {
	n := len(m.rows)
	if m.hasHero {
		n++
	}
	return n
}

// sectionIndex maps a shelf index to its section index.
func (m *Model) sectionIndex(rowIdx int) int {
	if m.hasHero {
		return rowIdx + 1
	}
	return rowIdx
}

// visibleSections is how many sections fit between the navbar and the
// status bar.
func (m *Model) visibleSections() int {
	body := m.height - navbarHeight - statusBarHeight
	n := body / rowHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) ensureSectionVisible(idx int) {
	if idx < m.topSection {
		m.topSection = idx
		return
	}
	vis := m.visibleSections()
	if idx >= m.topSection+vis {
		m.topSection = idx - vis + 1
	}
}

// clampScroll keeps the vertical scroll inside the section list after
// rebuilds and resizes.
func (m *Model) clampScroll() {
	maxTop := m.sectionCount() - m.visibleSections()
	if maxTop < 0 {
		maxTop = 0
	}
	m.topSection = clampInt(m.topSection, 0, maxTop)
}

// scrollSections moves the page without moving the cursor.
func (m *Model) scrollSections(delta int) {
	m.topSection += delta
	m.clampScroll()
}

// saveUIState persists scroll offsets and cursors for the next launch.
func (m Model) saveUIState() {
	if m.uiState == nil {
		return
	}
	st := browseState{
		SelectedRow: m.currentRowID(),
		Cursors:     make(map[string]int, len(m.rows)),
		Offsets:     make(map[string]float64, len(m.rows)),
	}
	for _, r := range m.rows {
		st.Cursors[r.id] = r.sel
		if state, ok := m.facade.State(r.id); ok {
			st.Offsets[r.id] = state.Offset
		}
	}
	if err := m.uiState.Set(context.Background(), "browse", st); err != nil {
		log.Warn().Err(err).Msg("failed to persist ui state")
	}
}

// restoreUIState reapplies the persisted offsets and cursors once, after
// the first catalog load has mounted the shelves.
func (m *Model) restoreUIState() {
	if m.uiState == nil || m.restored || m.width == 0 || len(m.rows) == 0 {
		return
	}
	m.restored = true
	st, err := m.uiState.Get(context.Background(), "browse")
	if err != nil {
		return // first run or unreadable state; start fresh
	}
	for i := range m.rows {
		r := &m.rows[i]
		if off, ok := st.Offsets[r.id]; ok {
			m.facade.SetOffset(r.id, off)
		}
		if sel, ok := st.Cursors[r.id]; ok {
			r.sel = clampInt(sel, 0, len(r.records)-1)
		}
	}
	for i, r := range m.rows {
		if r.id == st.SelectedRow {
			m.selRow = i
			m.ensureSectionVisible(m.sectionIndex(i))
			break
		}
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
