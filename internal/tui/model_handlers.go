package tui

import (
	"errors"
	"path/filepath"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/tui/components"
)

// chromeHeight is the title bar plus the help bar.
const chromeHeight = 2

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.questions.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))
	return m, nil
}

func (m Model) handleDrainNotifications() (tea.Model, tea.Cmd) {
	for _, n := range m.notifyBuf.Drain() {
		m.toasts.Push(n)
	}
	return m, tea.Batch(m.notifyBuf.WaitForSignal(), m.ensureToastTick())
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if m.toasts.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toasts.SetTicking(false)
	return m, nil
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.state = stateNormal
	m.upload = nil
	name := filepath.Base(msg.path)

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("path", msg.path).Msg("upload failed")

		var uerr *api.UploadError
		if errors.As(msg.err, &uerr) {
			w, h := m.size()
			m.infoDialog = uploadReport(name, uerr, w, h)
			m.state = stateShowingUploadReport
			m.notifyBus.Errorf("Upload of %s rejected: %s", name, uerr.Details()[0])
			return m, nil
		}

		m.notifyBus.Errorf("Upload of %s failed: %v", name, msg.err)
		return m, nil
	}

	m.logger.Info().Str("path", msg.path).Int("processed", msg.result.TotalQuestionsProcessed).Msg("upload complete")
	m.notifyBus.Infof("%s: %d questions processed", msg.result.Message, msg.result.TotalQuestionsProcessed)
	return m, m.questions.Reload()
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case stateShowingHelp:
		switch msg.String() {
		case "esc", "q", "?", "enter":
			m.state = stateNormal
			m.helpDialog = nil
		}
		return m, nil

	case stateShowingNotifications, stateShowingUploadReport:
		return m.handleInfoDialogKey(msg)

	case stateUploading:
		if m.upload.Sending() {
			return m, nil
		}
		outcome, cmd := m.upload.Update(msg)
		switch outcome {
		case uploadCancelled:
			m.state = stateNormal
			m.upload = nil
			return m, nil
		case uploadSubmitted:
			m.logger.Debug().Str("path", m.upload.Path()).Msg("upload submitted")
			return m, uploadFile(m.backend, m.upload.Path())
		}
		return m, cmd
	}

	if m.questions.HasModal() {
		return m, m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpDialog = m.newHelpDialog()
		m.state = stateShowingHelp
		return m, nil
	case key.Matches(msg, m.keys.Upload):
		m.upload = NewUploadModal(m.cfg.Upload.Patterns, m.cfg.AllowsUpload)
		m.state = stateUploading
		return m, m.upload.Focus()
	case key.Matches(msg, m.keys.Notifications):
		return m.openHistory()
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
		return m, nil
	}

	return m, m.forward(msg)
}

func (m Model) handleInfoDialogKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "N":
		m.state = stateNormal
		m.infoDialog = nil
	case "j", "down":
		m.infoDialog.ScrollDown()
	case "k", "up":
		m.infoDialog.ScrollUp()
	case "c":
		if m.state != stateShowingNotifications {
			return m, nil
		}
		if err := m.notifyBus.Clear(); err != nil {
			m.notifyBus.Errorf("Failed to clear notification history: %v", err)
			return m, nil
		}
		m.state = stateNormal
		m.infoDialog = nil
	}
	return m, nil
}

func (m Model) newHelpDialog() *components.HelpDialog {
	qk := m.questions.Keys()
	return components.NewHelpDialog("Keyboard shortcuts", []components.HelpDialogSection{
		{Title: "Navigation", Bindings: qk.Navigation()},
		{Title: "Editing", Bindings: qk.Editing()},
		{Title: "Viewing", Bindings: qk.Viewing()},
		{Title: "General", Bindings: m.keys.General()},
	})
}

// openHistory shows persisted notifications, newest first.
func (m Model) openHistory() (tea.Model, tea.Cmd) {
	history, err := m.notifyBus.History()
	if err != nil {
		m.logger.Error().Err(err).Msg("load notification history")
		m.notifyBus.Errorf("Failed to load notification history: %v", err)
		return m, nil
	}

	items := make([]components.InfoItem, 0, len(history))
	for _, n := range history {
		items = append(items, components.InfoItem{
			Label:  n.CreatedAt.Format("Jan 02 15:04:05"),
			Value:  n.Message,
			Status: historyStatus(n.Level),
		})
	}

	footer := ""
	if len(items) == 0 {
		footer = "No notifications yet."
	}

	w, h := m.size()
	m.infoDialog = components.NewInfoDialog(
		"Notifications",
		[]components.InfoSection{{Title: "History", Items: items}},
		footer,
		"[j/k] scroll  [c] clear  [esc] close",
		w,
		h,
	)
	m.state = stateShowingNotifications
	return m, nil
}

func historyStatus(l notify.Level) components.InfoStatus {
	switch l {
	case notify.LevelError:
		return components.InfoStatusFail
	case notify.LevelWarning:
		return components.InfoStatusWarn
	default:
		return components.InfoStatusPass
	}
}
