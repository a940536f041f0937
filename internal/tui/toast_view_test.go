package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/marquee/internal/core/notify"
	"github.com/colonyops/marquee/internal/tui/mouse"
	"github.com/colonyops/marquee/pkg/tuitest"
)

func TestToastView_EmptyRendersNothing(t *testing.T) {
	v := NewToastView(NewToastController())
	assert.Empty(t, v.View())

	bg := "line one\nline two"
	assert.Equal(t, bg, v.Overlay(bg, 20, 2))

	hm := mouse.NewHitMap()
	v.RegisterHitRegions(hm, 80, 24)
	assert.Empty(t, hm.Regions())
}

func TestToastView_StacksOldestFirst(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelSuccess, Message: "first"})
	c.Push(notify.Notification{Level: notify.LevelError, Message: "second"})
	v := NewToastView(c)

	out := tuitest.StripANSI(v.View())
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestToastView_OverlayPinsBottomRight(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "saved"})
	v := NewToastView(c)

	w, h := 80, 24
	out := v.Overlay(strings.Repeat(strings.Repeat(".", w)+"\n", h-1)+strings.Repeat(".", w), w, h)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, h)

	fg := v.View()
	fgW := lipgloss.Width(fg)
	fgH := lipgloss.Height(fg)

	// the stack occupies the last fgH lines, inset one column from the
	// right edge; everything above stays background
	stack := tuitest.StripANSI(strings.Join(lines[h-fgH:], "\n"))
	assert.Contains(t, stack, "saved")
	assert.NotContains(t, tuitest.StripANSI(lines[h-fgH-1]), "saved")

	msgLine := tuitest.StripANSI(lines[h-fgH+1])
	assert.Greater(t, strings.Index(msgLine, "saved"), w-fgW-1)
	assert.True(t, strings.HasPrefix(msgLine, "."))
}

func TestToastView_HitRegionMirrorsOverlay(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelWarning, Message: "disk almost full"})
	v := NewToastView(c)

	w, h := 80, 24
	hm := mouse.NewHitMap()
	v.RegisterHitRegions(hm, w, h)

	regions := hm.Regions()
	require.Len(t, regions, 1)
	r := regions[0]
	assert.Equal(t, toastRegionStack, r.ID)

	fg := v.View()
	fgW := lipgloss.Width(fg)
	fgH := lipgloss.Height(fg)
	assert.Equal(t, w-fgW-1, r.Rect.X)
	assert.Equal(t, h-fgH, r.Rect.Y)
	assert.Equal(t, fgW, r.Rect.W)
	assert.Equal(t, fgH, r.Rect.H)

	// a click inside the stack resolves to it
	hit := hm.Test(r.Rect.X, r.Rect.Y)
	require.NotNil(t, hit)
	assert.Equal(t, toastRegionStack, hit.ID)
}

func TestToastView_RegionClampsOnTinyScreen(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "hi"})
	v := NewToastView(c)

	hm := mouse.NewHitMap()
	v.RegisterHitRegions(hm, 10, 2)

	regions := hm.Regions()
	require.Len(t, regions, 1)
	assert.Zero(t, regions[0].Rect.X)
	assert.Zero(t, regions[0].Rect.Y)
}
