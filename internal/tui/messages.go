package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/notify"
)

// frameInterval paces scroll animation redraws. Terminal cells are chunky
// enough that 30fps reads as smooth.
const frameInterval = time.Second / 30

// frameTickMsg advances in-flight scroll animations. Only one tick chain
// is live at a time; the ensure guard in Update re-arms it whenever an
// animation starts while no chain is running.
type frameTickMsg time.Time

func scheduleFrameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// resizeTickMsg fires after the resize quiet period. seq pairs the tick
// with the resize burst that scheduled it; stale ticks are dropped on
// arrival so only the last burst recomputes layout metrics.
type resizeTickMsg struct {
	seq uint64
}

func scheduleResizeTick(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return resizeTickMsg{seq: seq}
	})
}

// modalPopulateMsg fills the detail modal after the loading placeholder
// delay. generation pairs the tick with one modal open; a tick that
// outlives its open is discarded.
type modalPopulateMsg struct {
	generation uint64
}

func scheduleModalPopulate(d time.Duration, generation uint64) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg {
			return modalPopulateMsg{generation: generation}
		}
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return modalPopulateMsg{generation: generation}
	})
}

// catalogLoadedMsg carries the result of an async catalog (re)load.
type catalogLoadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

// CatalogChangedMsg is injected into the program from outside when a
// watched catalog source changes on disk.
type CatalogChangedMsg struct{}

// NotificationMsg is injected into the program from outside, carrying a
// notification routed off the event bus. It surfaces as a toast.
type NotificationMsg struct {
	Level   notify.Level
	Message string
}

// myListLoadedMsg carries the My List row contents and membership set.
type myListLoadedMsg struct {
	records []catalog.Record
	ids     map[string]bool
	err     error
}

// listToggledMsg carries the result of an async My List toggle.
type listToggledMsg struct {
	contentID string
	title     string
	onList    bool
	err       error
}

// copyLinkMsg carries the result of a clipboard write.
type copyLinkMsg struct {
	title string
	err   error
}
