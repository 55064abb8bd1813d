// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Text styles.
	TextPrimaryStyle     lipgloss.Style
	TextPrimaryBoldStyle lipgloss.Style
	TextForegroundStyle  lipgloss.Style
	TextMutedStyle       lipgloss.Style
	TextSurfaceStyle     lipgloss.Style
	TextSuccessStyle     lipgloss.Style
	TextWarningStyle     lipgloss.Style
	TextErrorStyle       lipgloss.Style

	// Modal styles.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	// Filter tabs.
	ViewSelectedStyle lipgloss.Style
	ViewNormalStyle   lipgloss.Style

	// Question table.
	TableHeaderStyle   lipgloss.Style
	RowSelectedStyle   lipgloss.Style
	RowBusyStyle       lipgloss.Style
	ScoreAgreeStyle    lipgloss.Style
	ScoreDisagreeStyle lipgloss.Style
	ScoreUnsetStyle    lipgloss.Style
	BannerErrorStyle   lipgloss.Style
	BannerInfoStyle    lipgloss.Style
	HelpBarStyle       lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// CategoryColors is the pool category chips are colored from. It is a
// gradient across the palette so neighbouring ids stay distinguishable.
var CategoryColors []color.Color

const categoryColorCount = 8

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

	CommandHeaderStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	DividerStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = TextPrimaryStyle.Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSurfaceStyle = lipgloss.NewStyle().Foreground(ColorSurface)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().Foreground(ColorMuted).Bold(true)
	RowSelectedStyle = lipgloss.NewStyle().Foreground(ColorForeground).Background(ColorSurface)
	RowBusyStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ScoreAgreeStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	ScoreDisagreeStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	ScoreUnsetStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	BannerErrorStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorError).
		Padding(0, 1)
	BannerInfoStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	HelpBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).PaddingLeft(1)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorPrimary).Foreground(ColorForeground)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning).Foreground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError).Foreground(ColorError)

	CategoryColors = blendPool(p.Primary, p.Warning, categoryColorCount)
}

// blendPool returns n colors blended in HCL space from a to b. It falls back
// to the two endpoints if either color cannot be converted.
func blendPool(a, b color.Color, n int) []color.Color {
	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA || !okB || n < 2 {
		return []color.Color{a, b}
	}

	pool := make([]color.Color, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		pool[i] = lipgloss.Color(ca.BlendHcl(cb, t).Clamped().Hex())
	}
	return pool
}

// ColorForCategory returns a stable color for a category id.
func ColorForCategory(id int) color.Color {
	if len(CategoryColors) == 0 {
		return ColorSecondary
	}
	if id < 0 {
		id = -id
	}
	return CategoryColors[id%len(CategoryColors)]
}

// ScoreStyle returns the glyph style for a score rendering.
func ScoreStyle(agree, set bool) lipgloss.Style {
	switch {
	case !set:
		return ScoreUnsetStyle
	case agree:
		return ScoreAgreeStyle
	default:
		return ScoreDisagreeStyle
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
