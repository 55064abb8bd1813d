package questions

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/qaeval/internal/core/question"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/tui/components"
)

const (
	colCursor     = 2
	colID         = 6
	colScore      = 11
	colCategories = 26
	minTextWidth  = 12

	maxCategoryKeys = 9
)

// View renders the table.
func (v View) View() string {
	var b strings.Builder

	b.WriteString(v.renderTabs())
	b.WriteString("\n")

	switch v.ctrl.Status() {
	case StatusLoading:
		req := v.ctrl.Requested()
		b.WriteString(" ")
		b.WriteString(v.spinner.View())
		b.WriteString(styles.TextMutedStyle.Render(fmt.Sprintf(" Loading %s questions, page %d…", strings.ToLower(req.Filter.Label()), req.Page)))
		b.WriteString("\n")
		return b.String()

	case StatusError:
		b.WriteString(styles.BannerErrorStyle.Render(fmt.Sprintf("Failed to load questions: %v", v.ctrl.Err())))
		b.WriteString(styles.TextMutedStyle.Render("  r retry"))
		b.WriteString("\n")
		if len(v.ctrl.Rows()) == 0 {
			return b.String()
		}

	case StatusEmpty:
		b.WriteString(" ")
		b.WriteString(styles.TextMutedStyle.Render(emptyMessage(v.ctrl.State().Filter)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.renderTable())
	b.WriteString(v.renderSelection())
	return b.String()
}

func emptyMessage(f question.Filter) string {
	if f == question.FilterAll {
		return "No questions yet. Press u to upload a spreadsheet."
	}
	return fmt.Sprintf("No questions match the %s filter.", f.Label())
}

func (v View) renderTabs() string {
	active := v.ctrl.Requested().Filter

	tabs := make([]string, 0, len(question.Filters))
	for _, f := range question.Filters {
		if f == active {
			tabs = append(tabs, styles.ViewSelectedStyle.Render("["+f.Label()+"]"))
		} else {
			tabs = append(tabs, styles.ViewNormalStyle.Render(" "+f.Label()+" "))
		}
	}
	left := " " + strings.Join(tabs, " ")

	right := ""
	if st := v.ctrl.State(); st.TotalPages > 0 {
		right = styles.TextMutedStyle.Render(fmt.Sprintf("Page %d/%d ", st.CurrentPage, st.TotalPages))
	}

	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + components.Pad(gap) + right
}

func (v View) textWidth() int {
	rest := v.width - colCursor - colID - colScore - colCategories - 4
	return max(rest/2, minTextWidth)
}

func (v View) renderTable() string {
	var b strings.Builder
	tw := v.textWidth()

	header := components.Pad(colCursor) +
		cell("ID", colID) + " " +
		cell("Score", colScore) + " " +
		cell("Question", tw) + " " +
		cell("Answer", tw) + " " +
		cell("Categories", colCategories)
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	rows := v.ctrl.Rows()
	visible := v.visibleRows()
	start := v.ctrl.Offset()
	end := min(start+visible, len(rows))

	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(rows[i], i == v.ctrl.Cursor(), tw))
		b.WriteString("\n")
	}
	for i := end - start; i < visible; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (v View) renderRow(q question.Question, selected bool, tw int) string {
	busy := v.tracker.Busy(q.ID)

	cursor := components.Pad(colCursor)
	if selected {
		cursor = styles.TextPrimaryStyle.Render(styles.IconCursor) + " "
	}

	score := renderScore(q.Score)
	if busy {
		score = styles.RowBusyStyle.Render(styles.IconBusy + " saving")
	}

	textStyle := styles.TextForegroundStyle
	if busy {
		textStyle = styles.RowBusyStyle
	}

	return cursor +
		textStyle.Render(cell(fmt.Sprintf("%d", q.ID), colID)) + " " +
		cell(score, colScore) + " " +
		textStyle.Render(cell(flatten(q.QuestionPreview()), tw)) + " " +
		textStyle.Render(cell(flatten(q.AnswerPreview()), tw)) + " " +
		cell(v.renderChips(q.Categories), colCategories)
}

// renderScore gives each of the three scores a distinct glyph and word.
func renderScore(s question.Score) string {
	switch s {
	case question.ScoreAgree:
		return styles.ScoreStyle(true, true).Render(styles.IconAgree + " agree")
	case question.ScoreDisagree:
		return styles.ScoreStyle(false, true).Render(styles.IconDisagree + " disagree")
	default:
		return styles.ScoreStyle(false, false).Render(styles.IconUnset + " unset")
	}
}

// renderChips names each category through the directory. List rows only
// carry ids; before the directory loads they show as #id.
func (v View) renderChips(cats []question.Category) string {
	if len(cats) == 0 {
		return styles.TextMutedStyle.Render("—")
	}
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		name := firstNonEmpty(v.dir.Name(c.ID), c.Name, fmt.Sprintf("#%d", c.ID))
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.ColorForCategory(c.ID)).Render(name))
	}
	return strings.Join(parts, ", ")
}

// renderSelection shows the edit affordances for the row under the cursor:
// score controls and the numbered category checkboxes.
func (v View) renderSelection() string {
	row, ok := v.selectedRow()
	if !ok {
		return "\n\n"
	}

	var b strings.Builder
	b.WriteString(styles.TextPrimaryBoldStyle.Render(fmt.Sprintf(" #%d", row.ID)))
	if row.Topic != "" {
		b.WriteString(styles.TextMutedStyle.Render(" · " + row.Topic))
	}
	b.WriteString("  ")

	if v.tracker.Busy(row.ID) {
		b.WriteString(styles.RowBusyStyle.Render(styles.IconBusy + " saving…"))
		b.WriteString("\n")
		b.WriteString(v.renderCheckboxes(row))
		b.WriteString("\n")
		return b.String()
	}

	controls := []string{
		scoreControl("a", "agree", row.Score == question.ScoreAgree),
		scoreControl("d", "disagree", row.Score == question.ScoreDisagree),
	}
	if row.Score.IsSet() {
		controls = append(controls, scoreControl("x", "clear", false))
	}
	b.WriteString(strings.Join(controls, "  "))
	b.WriteString("\n")
	b.WriteString(v.renderCheckboxes(row))
	b.WriteString("\n")
	return b.String()
}

func scoreControl(k, label string, active bool) string {
	if active {
		return styles.ModalButtonSelectedStyle.Render(k + " " + label)
	}
	return styles.ModalButtonStyle.Render(k + " " + label)
}

func (v View) renderCheckboxes(row question.Question) string {
	switch {
	case !v.dir.Loaded() && v.dir.Err() != nil:
		return styles.TextErrorStyle.Render(" categories unavailable")
	case !v.dir.Loaded():
		return styles.TextMutedStyle.Render(" loading categories…")
	case v.dir.Len() == 0:
		return styles.TextMutedStyle.Render(" no categories")
	}

	parts := make([]string, 0, min(v.dir.Len(), maxCategoryKeys))
	for i, c := range v.dir.All() {
		if i >= maxCategoryKeys {
			parts = append(parts, styles.TextMutedStyle.Render(fmt.Sprintf("+%d more (c)", v.dir.Len()-maxCategoryKeys)))
			break
		}
		box := styles.IconUnchecked
		if row.HasCategory(c.ID) {
			box = styles.IconChecked
		}
		name := lipgloss.NewStyle().Foreground(styles.ColorForCategory(c.ID)).Render(c.Name)
		parts = append(parts, styles.TextMutedStyle.Render(fmt.Sprintf("%d", i+1))+" "+box+" "+name)
	}
	return " " + strings.Join(parts, "  ")
}

// visibleRows is the number of table rows that fit. Tabs, header, the
// selection panel and an error banner are reserved.
func (v View) visibleRows() int {
	reserved := 4
	if v.ctrl.Status() == StatusError {
		reserved++
	}
	return max(v.height-reserved, 1)
}

// cell truncates s to width w and pads it with spaces.
func cell(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	return s + components.Pad(w-ansi.StringWidth(s))
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
