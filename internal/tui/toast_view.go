package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/marquee/internal/core/notify"
	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/tui/mouse"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

const toastRegionStack = "toast:stack"

// ToastView renders toast notifications and composites them as an overlay
// in the lower-right corner, above the status bar.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack as a single string with toasts stacked
// vertically (oldest at top, newest at bottom).
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon = styles.IconError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconWarn
		style = styles.ToastWarningStyle
	case notify.LevelSuccess:
		icon = styles.IconCheck
		style = styles.ToastSuccessStyle
	default:
		icon = styles.IconInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + t.notification.Message
	return style.Width(toastWidth).Render(content)
}

// Overlay composites the toast stack over background in the lower-right
// corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}
	return overlayBottomRight(background, toastContent, width, height)
}

// RegisterHitRegions maps the rendered stack so a click dismisses the
// newest toast. Must mirror the placement math in Overlay.
func (v *ToastView) RegisterHitRegions(hm *mouse.HitMap, width, height int) {
	toastContent := v.View()
	if toastContent == "" {
		return
	}
	w := lipgloss.Width(toastContent)
	h := lipgloss.Height(toastContent)
	x := max(width-w-1, 0)
	y := max(height-h, 0)
	hm.AddRect(toastRegionStack, x, y, w, h, nil)
}
