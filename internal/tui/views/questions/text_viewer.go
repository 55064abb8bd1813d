package questions

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/tui/components"
)

const (
	viewerMaxWidth  = 100
	viewerMaxHeight = 30
	viewerMargin    = 4
	viewerChrome    = 6
	viewerPadding   = 4
)

// Selection is what the text viewer is showing. The zero value is closed.
type Selection struct {
	IsOpen bool
	Title  string
	Body   string
}

// TextViewer shows one full question or answer in a scrollable modal.
type TextViewer struct {
	sel      Selection
	viewport viewport.Model
	width    int
	maxWidth int
}

// NewTextViewer creates a closed viewer.
func NewTextViewer() *TextViewer {
	return &TextViewer{maxWidth: viewerMaxWidth}
}

// SetMaxWidth caps the modal width. Values below 20 are ignored.
func (t *TextViewer) SetMaxWidth(w int) {
	if w >= 20 {
		t.maxWidth = w
	}
}

// Open shows body under title, sized for a terminal of width x height.
func (t *TextViewer) Open(title, body string, width, height int) {
	modalWidth := max(min(width-viewerMargin, t.maxWidth), 20)
	modalHeight := max(min(height-viewerMargin, viewerMaxHeight), viewerChrome+3)

	t.sel = Selection{IsOpen: true, Title: title, Body: body}
	t.width = modalWidth
	t.viewport = viewport.New(
		viewport.WithWidth(modalWidth-viewerPadding),
		viewport.WithHeight(modalHeight-viewerChrome),
	)
	t.viewport.SetContent(renderMarkdown(body, modalWidth-viewerPadding))
}

// Close hides the viewer and drops its contents.
func (t *TextViewer) Close() {
	t.sel = Selection{}
}

// IsOpen reports whether the viewer is showing.
func (t *TextViewer) IsOpen() bool { return t.sel.IsOpen }

// Selection returns the current selection.
func (t *TextViewer) Selection() Selection { return t.sel }

// ScrollUp scrolls the body up one line.
func (t *TextViewer) ScrollUp() { t.viewport.ScrollUp(1) }

// ScrollDown scrolls the body down one line.
func (t *TextViewer) ScrollDown() { t.viewport.ScrollDown(1) }

// UpdateViewport forwards a message to the viewport (paging keys, mouse).
func (t *TextViewer) UpdateViewport(msg any) {
	t.viewport, _ = t.viewport.Update(msg)
}

// View renders the modal, or "" when closed.
func (t *TextViewer) View() string {
	if !t.sel.IsOpen {
		return ""
	}

	title := t.sel.Title
	if t.viewport.TotalLineCount() > t.viewport.VisibleLineCount() {
		title += styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", t.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		styles.TextSurfaceStyle.Render(strings.Repeat("─", max(t.width-viewerPadding, 1))),
		t.viewport.View(),
		styles.ModalHelpStyle.Render("[↑/↓/j/k] scroll  [esc/enter/q] close"),
	)

	return styles.ModalStyle.Width(t.width).Render(content)
}

// Overlay renders the viewer centered over background.
func (t *TextViewer) Overlay(background string, width, height int) string {
	return components.Center(background, t.View(), width, height)
}

func renderMarkdown(body string, width int) string {
	if strings.TrimSpace(body) == "" {
		return styles.TextMutedStyle.Render("(empty)")
	}

	renderer, err := styles.MarkdownRenderer(width)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw text")
		return body
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw text")
		return body
	}
	return strings.Trim(rendered, "\n")
}
