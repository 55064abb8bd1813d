package components

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoDialog_RendersSectionsItemsFooter(t *testing.T) {
	d := NewInfoDialog(
		"Upload rejected",
		[]InfoSection{
			{
				Title: "File",
				Items: []InfoItem{
					{Label: "Name", Value: "questions.xlsx"},
					{Label: "Status", Value: "400"},
				},
			},
			{
				Title: "Problems",
				Items: []InfoItem{
					{Label: "processed", Value: "0", Status: InfoStatusPass},
					{Label: "empty rows", Value: "14", Status: InfoStatusWarn},
					{Label: "duplicate ids", Value: "5, Q-7", Status: InfoStatusFail},
				},
			},
		},
		"fix the spreadsheet and upload again",
		"[j/k] scroll  [esc] close",
		120,
		40,
	)

	out := ansi.Strip(d.Overlay("bg", 120, 40))
	assert.Contains(t, out, "Upload rejected")
	assert.Contains(t, out, "Problems")
	assert.Contains(t, out, "questions.xlsx")
	assert.Contains(t, out, "5, Q-7")
	assert.Contains(t, out, "fix the spreadsheet")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "✘")
}

func TestInfoDialog_ScrollAndEmptySections(t *testing.T) {
	items := make([]InfoItem, 0, 50)
	for range 50 {
		items = append(items, InfoItem{Label: "row", Value: "duplicate"})
	}

	d := NewInfoDialog(
		"Notifications",
		[]InfoSection{
			{Title: "Many", Items: items},
			{Title: "Empty", Items: nil},
		},
		"",
		"help",
		70,
		18,
	)

	before := d.Overlay("bg", 70, 18)
	d.ScrollDown()
	after := d.Overlay("bg", 70, 18)

	assert.Contains(t, before, "Notifications")
	assert.Contains(t, after, "Notifications")
	assert.NotEqual(t, before, after)
}

func TestHelpDialog_SkipsDisabledBindings(t *testing.T) {
	enabled := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agree"))
	disabled := key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "hidden"))
	disabled.SetEnabled(false)

	d := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "Editing", Bindings: []key.Binding{enabled, disabled}},
	})

	out := ansi.Strip(d.View())
	assert.Contains(t, out, "Editing")
	assert.Contains(t, out, "agree")
	assert.NotContains(t, out, "hidden")
}

func TestConfirmModal(t *testing.T) {
	tests := []struct {
		key       rune
		confirmed bool
		cancelled bool
	}{
		{'y', true, false},
		{'n', false, true},
		{'z', false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := NewConfirmModal("Upload", "Replaces everything")
			m, _ = m.Update(tea.KeyPressMsg(tea.Key{Code: tt.key, Text: string(tt.key)}))
			assert.Equal(t, tt.confirmed, m.Confirmed())
			assert.Equal(t, tt.cancelled, m.Cancelled())
		})
	}

	m := NewConfirmModal("Upload", "Replaces everything")
	require.Contains(t, ansi.Strip(m.View()), "Continue? (y/n)")
}

func TestPad(t *testing.T) {
	assert.Empty(t, Pad(-1))
	assert.Len(t, Pad(7), 7)
	assert.Len(t, Pad(250), 250)
}
