// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Hero banner styles.
	HeroTitleStyle    lipgloss.Style
	HeroMetaStyle     lipgloss.Style
	HeroSynopsisStyle lipgloss.Style

	// Row and card styles.
	RowTitleStyle         lipgloss.Style
	RowPositionStyle      lipgloss.Style
	RowArrowStyle         lipgloss.Style
	RowArrowHoverStyle    lipgloss.Style
	RowArrowDisabledStyle lipgloss.Style
	CardStyle             lipgloss.Style
	CardSelectedStyle     lipgloss.Style
	CardTitleStyle        lipgloss.Style
	CardMetaStyle         lipgloss.Style
	CardBadgeStyle        lipgloss.Style
	CardProgressStyle     lipgloss.Style

	// Detail modal styles.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalMetaStyle           lipgloss.Style
	ModalLoadingStyle        lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonFocusedStyle  lipgloss.Style
	ModalButtonDisabledStyle lipgloss.Style

	// Search styles.
	SearchPromptStyle lipgloss.Style
	SearchCountStyle  lipgloss.Style

	// Toast styles.
	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// Status bar styles.
	StatusBarStyle  lipgloss.Style
	StatusKeyStyle  lipgloss.Style
	StatusHelpStyle lipgloss.Style

	// Top navigation bar styles.
	NavBrandingStyle lipgloss.Style
	NavMetaStyle     lipgloss.Style
)

// ColorPool is used for deterministic color hashing of genres and badges.
var ColorPool []lipgloss.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	HeroTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	HeroMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HeroSynopsisStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	RowTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	RowPositionStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	RowArrowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	RowArrowHoverStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	RowArrowDisabledStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface)
	CardSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary)
	CardTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	CardMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CardBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSuccess).
		Padding(0, 1)
	CardProgressStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ModalLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonFocusedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	ModalButtonDisabledStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorBackground).
		Foreground(ColorSurface)

	SearchPromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SearchCountStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ToastInfoStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)
	ToastSuccessStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 1)
	ToastWarningStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1)
	ToastErrorStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	StatusHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	NavBrandingStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	NavMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ColorPool = []lipgloss.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) lipgloss.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
