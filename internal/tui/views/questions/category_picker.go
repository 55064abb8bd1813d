package questions

import (
	"fmt"
	"slices"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/qaeval/internal/core/question"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/tui/components"
)

// CategoryPicker is a checkbox list over the directory for one question.
// It edits a local copy of the id set; nothing is sent until the caller
// reads Desired after the operator confirms.
type CategoryPicker struct {
	questionID int
	options    []question.Category
	checked    map[int]bool
	initial    []int
	cursor     int
}

// NewCategoryPicker opens a picker for q over the directory options.
func NewCategoryPicker(q question.Question, options []question.Category) *CategoryPicker {
	checked := make(map[int]bool, len(q.Categories))
	for _, c := range q.Categories {
		checked[c.ID] = true
	}

	initial := q.CategoryIDs()
	slices.Sort(initial)

	return &CategoryPicker{
		questionID: q.ID,
		options:    options,
		checked:    checked,
		initial:    initial,
	}
}

// QuestionID returns the question being edited.
func (p *CategoryPicker) QuestionID() int { return p.questionID }

// MoveUp moves the cursor up.
func (p *CategoryPicker) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor down.
func (p *CategoryPicker) MoveDown() {
	if p.cursor < len(p.options)-1 {
		p.cursor++
	}
}

// Toggle flips the category under the cursor.
func (p *CategoryPicker) Toggle() {
	if p.cursor >= len(p.options) {
		return
	}
	id := p.options[p.cursor].ID
	p.checked[id] = !p.checked[id]
}

// Desired returns the sorted id set currently checked.
func (p *CategoryPicker) Desired() []int {
	out := make([]int, 0, len(p.checked))
	for _, c := range p.options {
		if p.checked[c.ID] {
			out = append(out, c.ID)
		}
	}
	slices.Sort(out)
	return out
}

// Changed reports whether Desired differs from the set the picker opened with.
func (p *CategoryPicker) Changed() bool {
	return !slices.Equal(p.Desired(), p.initial)
}

// View renders the picker modal.
func (p *CategoryPicker) View() string {
	var b strings.Builder

	if len(p.options) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("No categories available"))
	}

	for i, c := range p.options {
		cursor := "  "
		if i == p.cursor {
			cursor = styles.TextPrimaryStyle.Render(styles.IconCursor) + " "
		}

		box := styles.IconUnchecked
		if p.checked[c.ID] {
			box = styles.IconChecked
		}

		name := lipgloss.NewStyle().Foreground(styles.ColorForCategory(c.ID)).Render(c.Name)
		fmt.Fprintf(&b, "%s%s %s", cursor, box, name)
		if i < len(p.options)-1 {
			b.WriteString("\n")
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(fmt.Sprintf("Categories for question %d", p.questionID)),
		"",
		b.String(),
		styles.ModalHelpStyle.Render("[space] toggle  [enter] save  [esc] cancel"),
	)
	return styles.ModalStyle.Render(content)
}

// Overlay renders the picker centered over background.
func (p *CategoryPicker) Overlay(background string, width, height int) string {
	return components.Center(background, p.View(), width, height)
}
