package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/tui/components"
)

// size returns the terminal size, defaulting before the first WindowSizeMsg.
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return w, h
}

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = !m.quitting
	return v
}

// render composes the screen: title bar, table, help bar, the active modal
// and the toast stack on top.
func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.size()
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(w),
		lipgloss.NewStyle().Height(max(h-chromeHeight, 1)).Render(m.questions.View()),
		m.renderHelpBar(),
	)

	var content string
	switch {
	case m.state == stateShowingHelp && m.helpDialog != nil:
		content = m.helpDialog.Overlay(main, w, h)
	case (m.state == stateShowingNotifications || m.state == stateShowingUploadReport) && m.infoDialog != nil:
		content = m.infoDialog.Overlay(main, w, h)
	case m.state == stateUploading && m.upload != nil:
		content = m.upload.Overlay(main, w, h)
	case m.questions.HasModal():
		content = m.questions.Overlay(main, w, h)
	default:
		content = main
	}

	if m.toasts.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

// renderTitleBar renders the product name on the left and the server on the right.
func (m Model) renderTitleBar(width int) string {
	left := styles.TextPrimaryBoldStyle.Render("qaeval")
	if m.build.Version != "" {
		left += " " + styles.TextMutedStyle.Render(m.build.Version)
	}
	right := styles.TextMutedStyle.Render(m.cfg.Server.URL)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return components.Pad(1) + left + components.Pad(gap) + right
}

// renderHelpBar lists the most used bindings.
func (m Model) renderHelpBar() string {
	qk := m.questions.Keys()
	bindings := []key.Binding{qk.Agree, qk.Disagree, qk.Categories, qk.ViewQuestion, qk.NextPage, qk.NextFilter, m.keys.Upload, m.keys.Help, m.keys.Quit}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return styles.HelpBarStyle.Render(strings.Join(parts, " • "))
}
