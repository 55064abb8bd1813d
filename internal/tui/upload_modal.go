package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/tui/components"
)

const uploadWarning = "Uploading replaces ALL questions and categories on the server."

type uploadStage int

const (
	uploadStagePath uploadStage = iota
	uploadStageConfirm
	uploadStageSending
)

// uploadOutcome tells the model what the modal wants after a key press.
type uploadOutcome int

const (
	uploadPending uploadOutcome = iota
	uploadCancelled
	uploadSubmitted
)

// Uploader sends a spreadsheet to the service.
type Uploader interface {
	UploadFile(ctx context.Context, path string) (api.UploadResult, error)
}

type uploadDoneMsg struct {
	path   string
	result api.UploadResult
	err    error
}

func uploadFile(u Uploader, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := u.UploadFile(context.Background(), path)
		return uploadDoneMsg{path: path, result: res, err: err}
	}
}

// UploadModal collects a spreadsheet path, checks it against the configured
// patterns and asks for confirmation before the destructive upload.
type UploadModal struct {
	input    textinput.Model
	confirm  components.ConfirmModal
	stage    uploadStage
	path     string
	problem  string
	patterns []string
	allow    func(string) bool
}

// NewUploadModal creates a modal accepting paths for which allow is true.
// patterns is only used for the error message.
func NewUploadModal(patterns []string, allow func(string) bool) *UploadModal {
	ti := textinput.New()
	ti.Placeholder = "path/to/questions.xlsx"
	ti.Prompt = "› "
	ti.SetWidth(48)
	ti.CharLimit = 4096

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	return &UploadModal{
		input:    ti,
		patterns: patterns,
		allow:    allow,
	}
}

// Focus focuses the path input.
func (m *UploadModal) Focus() tea.Cmd {
	return m.input.Focus()
}

// Path returns the path accepted for upload.
func (m *UploadModal) Path() string {
	return m.path
}

// Sending reports whether the upload request is in flight.
func (m *UploadModal) Sending() bool {
	return m.stage == uploadStageSending
}

// Update routes input to the current stage.
func (m *UploadModal) Update(msg tea.Msg) (uploadOutcome, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyPressMsg)

	switch m.stage {
	case uploadStagePath:
		if isKey {
			switch keyMsg.String() {
			case "esc":
				return uploadCancelled, nil
			case "enter":
				m.accept()
				return uploadPending, nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return uploadPending, cmd

	case uploadStageConfirm:
		m.confirm, _ = m.confirm.Update(msg)
		switch {
		case m.confirm.Confirmed():
			m.stage = uploadStageSending
			return uploadSubmitted, nil
		case m.confirm.Cancelled():
			return uploadCancelled, nil
		}
	}

	return uploadPending, nil
}

// accept validates the typed path and advances to confirmation.
func (m *UploadModal) accept() {
	path := strings.TrimSpace(m.input.Value())
	switch {
	case path == "":
		m.problem = "enter a file path"
		return
	case !m.allow(path):
		m.problem = fmt.Sprintf("file must match one of: %s", strings.Join(m.patterns, ", "))
		return
	}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		m.problem = fmt.Sprintf("cannot read file: %v", err)
		return
	case info.IsDir():
		m.problem = "path is a directory"
		return
	}

	m.problem = ""
	m.path = path
	m.stage = uploadStageConfirm
	m.confirm = components.NewConfirmModal("Upload "+path, uploadWarning)
}

// View renders the current stage.
func (m *UploadModal) View() string {
	switch m.stage {
	case uploadStageConfirm:
		return m.confirm.View()
	case uploadStageSending:
		return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render("Upload"),
			"",
			styles.TextMutedStyle.Render("Uploading "+m.path+"…"),
		))
	}

	lines := []string{
		styles.ModalTitleStyle.Render("Upload spreadsheet"),
		"",
		m.input.View(),
	}
	if m.problem != "" {
		lines = append(lines, "", styles.TextErrorStyle.Render(m.problem))
	}
	lines = append(lines, "", styles.ModalHelpStyle.Render("[enter] continue  [esc] cancel"))
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Overlay centers the modal over background.
func (m *UploadModal) Overlay(background string, width, height int) string {
	return components.Center(background, m.View(), width, height)
}

// uploadReport turns a structured rejection into an info dialog listing
// every problem the service reported.
func uploadReport(path string, uerr *api.UploadError, width, height int) *components.InfoDialog {
	items := []components.InfoItem{{Label: "File", Value: path}}
	if uerr.Status != 0 {
		items = append(items, components.InfoItem{Label: "Status", Value: fmt.Sprintf("%d", uerr.Status)})
	}

	problems := make([]components.InfoItem, 0)
	for _, d := range uerr.Details() {
		problems = append(problems, components.InfoItem{Value: d, Status: components.InfoStatusFail})
	}

	return components.NewInfoDialog(
		"Upload rejected",
		[]components.InfoSection{
			{Title: "Request", Items: items},
			{Title: "Problems", Items: problems},
		},
		"Nothing was changed. Fix the spreadsheet and upload again.",
		"[j/k] scroll  [esc] close",
		width,
		height,
	)
}
