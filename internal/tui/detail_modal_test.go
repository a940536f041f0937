package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

func modalTestRecord() catalog.Record {
	return catalog.Record{
		ID:       "midnight-freight",
		Title:    "Midnight Freight",
		Kind:     catalog.KindMovie,
		Year:     2023,
		Maturity: "R",
		Runtime:  118,
		Rating:   7.8,
		Genres:   []string{"Thriller", "Crime"},
		Synopsis: "A night train, a missing manifest.",
		Cast:     []string{"R. Vasquez", "T. Okafor"},
		URL:      "https://example.com/watch/midnight-freight",
	}
}

func openTestModal(t *testing.T) *DetailModal {
	t.Helper()
	m := NewDetailModal()
	m.SetSize(100, 40)
	gen := m.Open("midnight-freight", ModalTrigger{RowID: "trending", Index: 2})
	require.True(t, m.Populate(gen, modalTestRecord(), false))
	return m
}

func TestDetailModal_OpenSequence(t *testing.T) {
	m := NewDetailModal()
	m.SetSize(100, 40)

	require.Equal(t, ModalClosed, m.Phase())
	assert.False(t, m.Active())

	gen := m.Open("midnight-freight", ModalTrigger{RowID: "trending", Index: 2})
	assert.Equal(t, ModalOpening, m.Phase())
	assert.True(t, m.Active())
	assert.Equal(t, "midnight-freight", m.ActiveContentID())

	require.True(t, m.Populate(gen, modalTestRecord(), false))
	assert.Equal(t, ModalOpen, m.Phase())
	assert.Equal(t, "Midnight Freight", m.Record().Title)

	// focus lands on the close control
	cur, ok := m.Ring().Current()
	require.True(t, ok)
	assert.Equal(t, modalControlClose, cur.ID)
}

func TestDetailModal_AbortLeavesClosed(t *testing.T) {
	m := NewDetailModal()
	m.Open("vanished", ModalTrigger{RowID: "trending", Index: 0})

	m.Abort()
	assert.Equal(t, ModalClosed, m.Phase())
	assert.Empty(t, m.ActiveContentID())
	assert.False(t, m.Active())
}

func TestDetailModal_CloseRestoresTrigger(t *testing.T) {
	m := openTestModal(t)

	trigger, ok := m.Close()
	require.True(t, ok)
	assert.Equal(t, "trending", trigger.RowID)
	assert.Equal(t, 2, trigger.Index)

	assert.Equal(t, ModalClosed, m.Phase())
	assert.Empty(t, m.ActiveContentID())
	assert.Nil(t, m.Ring())

	// closing again is a no-op
	_, ok = m.Close()
	assert.False(t, ok)
}

func TestDetailModal_CloseDuringOpeningOrphansPopulation(t *testing.T) {
	m := NewDetailModal()
	gen := m.Open("midnight-freight", ModalTrigger{RowID: "trending", Index: 2})

	_, ok := m.Close()
	require.True(t, ok)
	require.Equal(t, ModalClosed, m.Phase())

	// the deferred population arrives after the close and must not revive
	// the modal
	assert.False(t, m.Populate(gen, modalTestRecord(), false))
	assert.Equal(t, ModalClosed, m.Phase())
	assert.Empty(t, m.ActiveContentID())
}

func TestDetailModal_ReopenSupersedesPending(t *testing.T) {
	m := NewDetailModal()
	first := m.Open("midnight-freight", ModalTrigger{RowID: "trending", Index: 2})
	second := m.Open("quiet-hours", ModalTrigger{RowID: "new-releases", Index: 0})
	require.NotEqual(t, first, second)

	// the superseded population is discarded
	assert.False(t, m.Populate(first, modalTestRecord(), false))
	assert.Equal(t, ModalOpening, m.Phase())
	assert.Equal(t, "quiet-hours", m.ActiveContentID())

	rec := modalTestRecord()
	rec.ID = "quiet-hours"
	rec.Title = "Quiet Hours"
	require.True(t, m.Populate(second, rec, true))
	assert.Equal(t, ModalOpen, m.Phase())
	assert.Equal(t, "Quiet Hours", m.Record().Title)
}

func TestDetailModal_OpenWhileOpenNeverMutatesInPlace(t *testing.T) {
	m := openTestModal(t)
	require.Equal(t, ModalOpen, m.Phase())

	m.Open("quiet-hours", ModalTrigger{RowID: "new-releases", Index: 1})

	// back to the loading placeholder under the new id, old content gone
	assert.Equal(t, ModalOpening, m.Phase())
	assert.Equal(t, "quiet-hours", m.ActiveContentID())
	assert.Empty(t, m.Record().Title)
	assert.Nil(t, m.Ring())
}

func TestDetailModal_FocusTrapWraps(t *testing.T) {
	m := openTestModal(t)
	ring := m.Ring()
	require.NotNil(t, ring)

	// display order is play, list, copy, close; focus starts on close
	assert.True(t, ring.IsFocused(modalControlClose))

	m.FocusNext() // wraps to the first control
	assert.True(t, ring.IsFocused(modalControlPlay))
	m.FocusNext()
	assert.True(t, ring.IsFocused(modalControlList))
	m.FocusNext()
	assert.True(t, ring.IsFocused(modalControlCopy))
	m.FocusNext()
	assert.True(t, ring.IsFocused(modalControlClose))

	// and backwards across the same seam
	m.FocusPrev()
	assert.True(t, ring.IsFocused(modalControlCopy))
	m.FocusPrev()
	m.FocusPrev()
	assert.True(t, ring.IsFocused(modalControlPlay))
	m.FocusPrev()
	assert.True(t, ring.IsFocused(modalControlClose))
}

func TestDetailModal_FocusSkipsDisabledCopy(t *testing.T) {
	m := NewDetailModal()
	rec := modalTestRecord()
	rec.URL = "" // no link, copy is disabled
	gen := m.Open(rec.ID, ModalTrigger{})
	require.True(t, m.Populate(gen, rec, false))

	ring := m.Ring()
	assert.True(t, ring.IsFocused(modalControlClose))
	m.FocusPrev() // skips disabled copy
	assert.True(t, ring.IsFocused(modalControlList))

	assert.Equal(t, ModalActionNone, m.ActivateControl(modalControlCopy))
}

func TestDetailModal_Activate(t *testing.T) {
	m := openTestModal(t)

	assert.Equal(t, ModalActionClose, m.Activate())

	m.FocusNext()
	assert.Equal(t, ModalActionPlay, m.Activate())

	assert.Equal(t, ModalActionToggleList, m.ActivateControl(modalControlList))
	assert.True(t, m.Ring().IsFocused(modalControlList))

	assert.Equal(t, ModalActionCopyLink, m.ActivateControl(modalControlCopy))
}

func TestDetailModal_ActivateWhileOpeningIsNoOp(t *testing.T) {
	m := NewDetailModal()
	m.Open("midnight-freight", ModalTrigger{})

	assert.Equal(t, ModalActionNone, m.Activate())
	assert.Equal(t, ModalActionNone, m.ActivateControl(modalControlPlay))
}

func TestDetailModal_SetOnList(t *testing.T) {
	m := openTestModal(t)
	require.False(t, m.OnList())

	m.SetOnList(true)
	assert.True(t, m.OnList())

	var label string
	for _, item := range m.Ring().Items() {
		if item.ID == modalControlList {
			label = item.Label
		}
	}
	assert.Contains(t, label, "On My List")
}

func TestDetailModal_HitRegions(t *testing.T) {
	m := openTestModal(t)
	hm := mouse.NewHitMap()
	m.RegisterHitRegions(hm, "")

	var ids []string
	for _, r := range hm.Regions() {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, modalRegionBackdrop)
	assert.Contains(t, ids, modalRegionPanel)
	assert.Contains(t, ids, modalControlPlay)
	assert.Contains(t, ids, modalControlClose)

	// a corner click lands on the backdrop, not the panel
	r := hm.Test(0, 0)
	require.NotNil(t, r)
	assert.Equal(t, modalRegionBackdrop, r.ID)
}

func TestDetailModal_HitRegionsWhileOpening(t *testing.T) {
	m := NewDetailModal()
	m.SetSize(100, 40)
	m.Open("midnight-freight", ModalTrigger{})

	hm := mouse.NewHitMap()
	m.RegisterHitRegions(hm, "*")

	var ids []string
	for _, r := range hm.Regions() {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, modalRegionBackdrop)
	assert.Contains(t, ids, modalRegionPanel)
	assert.NotContains(t, ids, modalControlPlay)
}

func TestDetailModal_HitRegionsWhenClosed(t *testing.T) {
	m := NewDetailModal()
	m.SetSize(100, 40)

	hm := mouse.NewHitMap()
	m.RegisterHitRegions(hm, "")
	assert.Empty(t, hm.Regions())
}
