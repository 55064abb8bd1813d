// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/qaeval/internal/core/styles"
)

const (
	infoModalMaxHeight = 30
	infoModalMargin    = 4
	infoModalChrome    = 6 // title + divider + help + spacing
	infoModalMinWidth  = 50
)

// InfoStatus represents the status of an info item.
type InfoStatus int

const (
	InfoStatusNone InfoStatus = iota
	InfoStatusPass
	InfoStatusWarn
	InfoStatusFail
)

// InfoItem is a single labeled row in an info section.
type InfoItem struct {
	Label  string
	Value  string
	Status InfoStatus
}

// InfoSection groups related info items under a section title.
type InfoSection struct {
	Title string
	Items []InfoItem
}

// InfoDialog is a scrollable modal of titled sections. The TUI uses it for
// the notification history and for upload rejection reports.
type InfoDialog struct {
	title    string
	sections []InfoSection
	footer   string
	helpText string
	viewport viewport.Model
}

// NewInfoDialog creates a new info dialog sized for a width x height screen.
func NewInfoDialog(title string, sections []InfoSection, footer, helpText string, width, height int) *InfoDialog {
	w, h := infoModalSize(width, height)

	d := &InfoDialog{
		title:    title,
		sections: sections,
		footer:   footer,
		helpText: helpText,
		viewport: viewport.New(
			viewport.WithWidth(w-4),
			viewport.WithHeight(h-infoModalChrome),
		),
	}
	d.viewport.SetContent(d.renderContent(w))
	return d
}

// infoModalSize is 65% of the screen width, clamped to the margins, and at
// most infoModalMaxHeight rows.
func infoModalSize(width, height int) (int, int) {
	w := min(max(width*65/100, infoModalMinWidth), width-infoModalMargin)
	h := min(height-infoModalMargin, infoModalMaxHeight)
	return w, h
}

func (d *InfoDialog) renderContent(modalWidth int) string {
	separator := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))

	var b strings.Builder
	for i, section := range d.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			b.WriteString(styles.TextPrimaryBoldStyle.Render(section.Title) + "\n")
			b.WriteString(separator + "\n")
		}

		labelWidth := 0
		for _, item := range section.Items {
			labelWidth = max(labelWidth, lipgloss.Width(item.Label))
		}
		for _, item := range section.Items {
			b.WriteString(formatInfoItem(item, labelWidth) + "\n")
		}
	}

	if d.footer != "" {
		b.WriteString("\n" + d.footer)
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatInfoItem renders one row with the label padded to labelWidth so
// values in a section line up.
func formatInfoItem(item InfoItem, labelWidth int) string {
	label := styles.TextForegroundStyle.Bold(true).Render(item.Label + Pad(labelWidth-lipgloss.Width(item.Label)))
	row := label + "  " + styles.TextMutedStyle.Render(item.Value)

	if icon := statusIcon(item.Status); icon != "" {
		return icon + " " + row
	}
	return row
}

func statusIcon(s InfoStatus) string {
	switch s {
	case InfoStatusPass:
		return styles.TextSuccessStyle.Render("✔")
	case InfoStatusWarn:
		return styles.TextWarningStyle.Render("●")
	case InfoStatusFail:
		return styles.TextErrorStyle.Render("✘")
	default:
		return ""
	}
}

func (d *InfoDialog) ScrollUp() {
	d.viewport.ScrollUp(1)
}

func (d *InfoDialog) ScrollDown() {
	d.viewport.ScrollDown(1)
}

// Overlay renders the dialog centered over the provided background. The
// title carries the scroll position when the content overflows.
func (d *InfoDialog) Overlay(background string, width, height int) string {
	w, h := infoModalSize(width, height)

	title := d.title
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		title += styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100))
	}

	modal := styles.ModalStyle.
		Width(w).
		Height(h).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			styles.ModalTitleStyle.Render(title),
			styles.TextSurfaceStyle.Render(strings.Repeat("─", max(w-6, 1))),
			d.viewport.View(),
			styles.ModalHelpStyle.Render(d.helpText),
		))

	return Center(background, modal, width, height)
}
