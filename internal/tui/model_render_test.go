package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/notify"
	"github.com/colonyops/marquee/pkg/tuitest"
)

func TestView_BeforeFirstSize(t *testing.T) {
	cat := testCatalog()
	m := New(&fakeResolver{cat: cat}, &fakeList{cat: cat, ids: map[string]bool{}}, browseConfig(), Options{})

	assert.Equal(t, "starting...", m.View())
}

func TestView_FrameGeometry(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 40)
	for i, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 120, "line %d overflows", i)
	}
}

func TestView_BrowseScreenContent(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "MARQUEE")
	assert.Contains(t, view, "14 titles")
	assert.Contains(t, view, "2 shelves")
	assert.Contains(t, view, "Search")

	// hero banner above the shelves
	assert.Contains(t, view, "AURORA FALLS")
	assert.Contains(t, view, "PG-13")
	assert.Contains(t, view, "2h 14m")

	assert.Contains(t, view, "Trending Now")
	assert.Contains(t, view, "New Releases")

	// status bar help
	assert.Contains(t, view, "browse")
	assert.Contains(t, view, "shelves")
	assert.Contains(t, view, "details")
}

func TestView_MyListShelfRenders(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})
	cat := testCatalog()
	rec, _ := cat.Get("solstice")
	m = drive(t, m, myListLoadedMsg{records: []catalog.Record{rec}, ids: map[string]bool{"solstice": true}})

	assert.Contains(t, tuitest.StripANSI(m.View()), "My List")
}

func TestView_EmptyCatalog(t *testing.T) {
	empty := catalog.New(nil, nil)
	m := New(&fakeResolver{cat: empty}, &fakeList{cat: empty, ids: map[string]bool{}}, browseConfig(), Options{})
	m = drive(t, m, tuitest.WindowSize(120, 40), catalogLoadedMsg{catalog: empty})

	assert.Contains(t, tuitest.StripANSI(m.View()), "The catalog is empty")
}

func TestView_LoadingState(t *testing.T) {
	cat := testCatalog()
	m := New(&fakeResolver{cat: cat}, &fakeList{cat: cat, ids: map[string]bool{}}, browseConfig(), Options{})
	m = drive(t, m, tuitest.WindowSize(120, 40))

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "loading catalog")
	assert.Contains(t, view, "loading")
}

func TestView_ConfirmPrompt(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})
	m = drive(t, m, key("X"))
	require.Equal(t, stateConfirming, m.state)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Quit marquee?")
	assert.Contains(t, view, "y/enter confirm")
}

func TestView_SearchOverlay(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})
	m = drive(t, m, key("/"))

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "14 matches")

	findRegion(t, m, searchRegionPanel)
	findRegion(t, m, searchItemPrefix+"0")
}

func TestView_ModalOverlay(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})
	m = drive(t, m, key("enter"))
	m = drive(t, m, modalPopulateMsg{generation: m.modal.Generation()})
	require.Equal(t, ModalOpen, m.modal.Phase())

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "lighthouse")

	// the status line announces the open title and the modal keys
	frame := strings.Split(view, "\n")
	status := frame[len(frame)-1]
	assert.Contains(t, status, "Aurora Falls")
	assert.Contains(t, status, "esc close")

	findRegion(t, m, modalRegionBackdrop)
	findRegion(t, m, modalRegionPanel)
	findRegion(t, m, modalControlPlay)

	// overlaying never changes the frame height
	require.Len(t, strings.Split(m.View(), "\n"), 40)
}

func TestView_ToastOverlay(t *testing.T) {
	m, _, _ := newBrowseModel(t, Options{})
	m = drive(t, m, NotificationMsg{Level: notify.LevelSuccess, Message: "Link copied: Aurora Falls"})

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Link copied: Aurora Falls")
	findRegion(t, m, toastRegionStack)
}

func TestView_ShortWindow(t *testing.T) {
	cat := testCatalog()
	m := New(&fakeResolver{cat: cat}, &fakeList{cat: cat, ids: map[string]bool{}}, browseConfig(), Options{})
	m = drive(t, m,
		tuitest.WindowSize(120, 12),
		catalogLoadedMsg{catalog: cat},
		myListLoadedMsg{ids: map[string]bool{}},
	)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 12)

	// only the hero section fits; the first shelf starts offscreen
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "AURORA FALLS")
	assert.NotContains(t, view, "Trending Now")
}
