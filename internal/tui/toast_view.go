package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack in the lower-right corner, above the
// help bar.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toasts oldest first.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t.notification))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	icon, style := styles.IconNotifyInfo, styles.ToastInfoStyle
	switch n.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	}
	return style.Width(toastWidth).Render(icon + " " + n.Message)
}

// Overlay composites the toast stack over background.
func (v *ToastView) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}

	layer := lipgloss.NewLayer(content)
	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-lipgloss.Height(content)-1, 0)
	layer.X(x).Y(y).Z(2)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
