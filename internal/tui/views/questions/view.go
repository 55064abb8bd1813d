// Package questions is the review table: a paginated, filterable list of
// questions with per-row scoring and categorisation.
//
// Data flow: the Controller owns the loaded page and decides which fetch
// outcomes apply, the Tracker serialises mutations per row, and the
// Directory resolves category ids to names. View wires them to Bubble Tea.
package questions

import (
	"fmt"
	"slices"
	"strconv"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/core/question"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/pkg/kv"
)

// Notifier receives user-facing outcomes.
type Notifier interface {
	Publish(n notify.Notification)
}

// detailCacheSize bounds how many fetched full texts are kept.
const detailCacheSize = 256

// View is the Bubble Tea sub-model for the question table.
type View struct {
	ctrl    *Controller
	tracker *Tracker
	pending *Tracker
	dir     *Directory
	viewer  *TextViewer
	picker  *CategoryPicker
	details *kv.Store[int, question.Detail]

	svc      Service
	notifier Notifier
	keys     KeyMap
	spinner  spinner.Model
	logger   zerolog.Logger

	width  int
	height int
}

// New creates a question table backed by svc. Outcomes that need the
// operator's attention are published to notifier.
func New(svc Service, notifier Notifier) View {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	return View{
		ctrl:     NewController(),
		tracker:  NewTracker(),
		pending:  NewTracker(),
		dir:      NewDirectory(),
		viewer:   NewTextViewer(),
		details:  kv.New[int, question.Detail](detailCacheSize),
		svc:      svc,
		notifier: notifier,
		keys:     DefaultKeyMap(),
		spinner:  s,
		logger:   log.With().Str("component", "questions").Logger(),
	}
}

// Init loads the first page and the category directory.
func (v View) Init() tea.Cmd {
	return tea.Batch(
		v.load(v.ctrl.Load(1, question.FilterAll)),
		loadCategories(v.svc),
		v.spinner.Tick,
	)
}

// Reload refetches page 1 of the current filter and the category directory.
// Cached question detail is dropped. Used after an upload replaces the data.
func (v View) Reload() tea.Cmd {
	v.details.Clear()
	return tea.Batch(
		v.load(v.ctrl.SetFilter(v.ctrl.Requested().Filter)),
		loadCategories(v.svc),
		v.spinner.Tick,
	)
}

// Update handles messages for the question table.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		return v.handlePageLoaded(msg)
	case categoriesLoadedMsg:
		return v.handleCategoriesLoaded(msg)
	case mutationDoneMsg:
		return v.handleMutationDone(msg)
	case detailLoadedMsg:
		return v.handleDetailLoaded(msg)
	case spinner.TickMsg:
		if !v.ctrl.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyPressMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// SetPreviewWidth caps the width of the full-text viewer.
func (v *View) SetPreviewWidth(w int) {
	v.viewer.SetMaxWidth(w)
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ctrl.SetSize(v.visibleRows())
}

// Status returns the table state for the current fetch cycle.
func (v View) Status() Status {
	return v.ctrl.Status()
}

// HasModal reports whether the text viewer or category picker is open.
// While a modal is open every key goes to it.
func (v View) HasModal() bool {
	return v.viewer.IsOpen() || v.picker != nil
}

// Overlay renders any open modal over background.
func (v View) Overlay(background string, width, height int) string {
	if v.picker != nil {
		return v.picker.Overlay(background, width, height)
	}
	if v.viewer.IsOpen() {
		return v.viewer.Overlay(background, width, height)
	}
	return background
}

// Keys returns the table key map.
func (v View) Keys() KeyMap {
	return v.keys
}

func (v View) load(req Request) tea.Cmd {
	v.logger.Debug().
		Uint64("seq", req.Seq).
		Int("page", req.Page).
		Str("filter", string(req.Filter)).
		Msg("loading page")
	return loadPage(v.svc, req)
}

func (v View) handlePageLoaded(msg pageLoadedMsg) (View, tea.Cmd) {
	if !v.ctrl.Resolve(msg.req, msg.page, msg.err) {
		v.logger.Debug().
			Uint64("seq", msg.req.Seq).
			Uint64("latest", v.ctrl.Requested().Seq).
			Msg("discarding stale page response")
		return v, nil
	}

	if msg.err != nil {
		v.logger.Warn().Err(msg.err).Int("page", msg.req.Page).Msg("failed to load questions")
		return v, nil
	}

	v.ctrl.SetSize(v.visibleRows())
	return v, nil
}

func (v View) handleCategoriesLoaded(msg categoriesLoadedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		v.dir.SetError(msg.err)
		v.logger.Warn().Err(msg.err).Msg("failed to load categories")
		v.publish(notify.LevelError, 0, "Failed to load categories: %v", msg.err)
		return v, nil
	}
	v.dir.Set(msg.categories)
	return v, nil
}

// mutate sends p for row id unless the row already has a mutation in flight.
// The row is not touched until the server accepts the change.
func (v View) mutate(id int, p question.Patch) tea.Cmd {
	if !v.tracker.Begin(id) {
		v.logger.Debug().Int("id", id).Str("patch", p.String()).Msg("row busy, ignoring edit")
		return nil
	}
	v.logger.Debug().Int("id", id).Str("patch", p.String()).Msg("updating question")
	return updateQuestion(v.svc, id, p)
}

func (v View) handleMutationDone(msg mutationDoneMsg) (View, tea.Cmd) {
	defer v.tracker.End(msg.id)

	if msg.err != nil {
		v.logger.Warn().Err(msg.err).Int("id", msg.id).Str("patch", msg.patch.String()).Msg("update rejected")
		v.publish(notify.LevelError, msg.id, "Failed to update question %d: %v", msg.id, msg.err)
		return v, nil
	}

	switch msg.patch.Kind {
	case question.PatchScore:
		v.ctrl.ApplyScore(msg.id, msg.patch.Score)
	case question.PatchCategories:
		ids := msg.patch.CategoryIDs
		if msg.update.CategoryIDs != nil {
			ids = msg.update.CategoryIDs
		}
		v.ctrl.ApplyCategories(msg.id, v.dir.Resolve(ids))
		v.details.Delete(msg.id)
	}
	return v, nil
}

func (v View) handleDetailLoaded(msg detailLoadedMsg) (View, tea.Cmd) {
	v.pending.End(msg.id)

	if msg.seq != v.ctrl.Requested().Seq {
		if msg.err == nil {
			v.details.Set(msg.id, msg.detail)
		}
		v.logger.Debug().Int("id", msg.id).Msg("page changed, not opening viewer")
		return v, nil
	}
	if _, ok := v.ctrl.Row(msg.id); !ok {
		return v, nil
	}

	if msg.err != nil {
		v.logger.Warn().Err(msg.err).Int("id", msg.id).Msg("failed to load question detail")
		v.publish(notify.LevelWarning, msg.id, "Could not load full text of question %d: %v", msg.id, msg.err)

		// Fall back to whatever text the list row carries.
		if row, ok := v.ctrl.Row(msg.id); ok {
			v.openViewer(msg.id, msg.field, question.Detail{
				ID:       row.ID,
				Question: firstNonEmpty(row.QuestionText, row.QuestionPreview()),
				Answer:   firstNonEmpty(row.AnswerText, row.AnswerPreview()),
			})
		}
		return v, nil
	}

	v.details.Set(msg.id, msg.detail)
	v.openViewer(msg.id, msg.field, msg.detail)
	return v, nil
}

func (v View) openViewer(id int, field textField, d question.Detail) {
	title, body := fmt.Sprintf("Question %d", id), d.Question
	if field == fieldAnswer {
		title, body = fmt.Sprintf("Answer %d", id), d.Answer
	}
	if d.Topic != "" {
		title += " · " + d.Topic
	}
	v.viewer.Open(title, body, v.width, v.height)
}

func (v View) handleKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	if v.picker != nil {
		return v.handlePickerKey(msg)
	}
	if v.viewer.IsOpen() {
		return v.handleViewerKey(msg)
	}
	return v.handleTableKey(msg)
}

func (v View) handleViewerKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		v.viewer.Close()
	case "up", "k":
		v.viewer.ScrollUp()
	case "down", "j":
		v.viewer.ScrollDown()
	default:
		v.viewer.UpdateViewport(msg)
	}
	return v, nil
}

func (v View) handlePickerKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		v.picker = nil
	case "up", "k":
		v.picker.MoveUp()
	case "down", "j":
		v.picker.MoveDown()
	case "space", " ":
		v.picker.Toggle()
	case "enter":
		p := v.picker
		v.picker = nil
		if !p.Changed() {
			return v, nil
		}
		return v, v.mutate(p.QuestionID(), question.CategoriesPatch(p.Desired()))
	}
	return v, nil
}

func (v View) handleTableKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.NextFilter):
		return v, v.switchFilter(v.ctrl.Requested().Filter.Next())
	case key.Matches(msg, v.keys.PrevFilter):
		return v, v.switchFilter(v.ctrl.Requested().Filter.Prev())
	case key.Matches(msg, v.keys.Retry):
		if v.ctrl.Loading() {
			return v, nil
		}
		return v, tea.Batch(v.load(v.ctrl.Retry()), v.spinner.Tick)
	case key.Matches(msg, v.keys.NextPage):
		if req, ok := v.ctrl.Next(); ok {
			return v, tea.Batch(v.load(req), v.spinner.Tick)
		}
		return v, nil
	case key.Matches(msg, v.keys.PrevPage):
		if req, ok := v.ctrl.Prev(); ok {
			return v, tea.Batch(v.load(req), v.spinner.Tick)
		}
		return v, nil
	}

	// Everything below acts on rows, which are hidden while loading.
	if v.ctrl.Loading() {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		v.ctrl.MoveUp(v.visibleRows())
	case key.Matches(msg, v.keys.Down):
		v.ctrl.MoveDown(v.visibleRows())
	case key.Matches(msg, v.keys.Agree):
		return v, v.setScore(question.ScoreAgree)
	case key.Matches(msg, v.keys.Disagree):
		return v, v.setScore(question.ScoreDisagree)
	case key.Matches(msg, v.keys.Clear):
		return v, v.setScore(question.ScoreUnset)
	case key.Matches(msg, v.keys.Toggle):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return v, nil
		}
		return v, v.toggleCategory(n - 1)
	case key.Matches(msg, v.keys.Categories):
		v.openPicker()
	case key.Matches(msg, v.keys.ViewQuestion):
		return v, v.view(fieldQuestion)
	case key.Matches(msg, v.keys.ViewAnswer):
		return v, v.view(fieldAnswer)
	}
	return v, nil
}

func (v View) switchFilter(f question.Filter) tea.Cmd {
	return tea.Batch(v.load(v.ctrl.SetFilter(f)), v.spinner.Tick)
}

// selectedRow returns the current state of the row under the cursor. It is
// read at key time so edits always start from the latest applied values.
func (v View) selectedRow() (question.Question, bool) {
	id, ok := v.ctrl.Selected()
	if !ok {
		return question.Question{}, false
	}
	return v.ctrl.Row(id)
}

func (v View) setScore(s question.Score) tea.Cmd {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	if row.Score == s {
		return nil
	}
	return v.mutate(row.ID, question.ScorePatch(s))
}

func (v View) toggleCategory(i int) tea.Cmd {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	cat, ok := v.dir.Nth(i)
	if !ok {
		return nil
	}
	return v.mutate(row.ID, question.CategoriesPatch(v.dir.Toggle(row.Categories, cat.ID)))
}

func (v *View) openPicker() {
	row, ok := v.selectedRow()
	if !ok || v.tracker.Busy(row.ID) {
		return
	}
	if !v.dir.Loaded() {
		v.publish(notify.LevelWarning, row.ID, "Categories are not loaded yet")
		return
	}
	v.picker = NewCategoryPicker(row, v.dir.All())
}

func (v View) view(field textField) tea.Cmd {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	if d, ok := v.details.Get(row.ID); ok {
		v.openViewer(row.ID, field, d)
		return nil
	}
	if !v.pending.Begin(row.ID) {
		return nil
	}
	return loadDetail(v.svc, row.ID, v.ctrl.Requested().Seq, field)
}

func (v View) publish(level notify.Level, id int, format string, args ...any) {
	if v.notifier == nil {
		return
	}
	v.notifier.Publish(notify.Notification{
		Level:      level,
		Message:    fmt.Sprintf(format, args...),
		QuestionID: id,
	})
}

func firstNonEmpty(vals ...string) string {
	if i := slices.IndexFunc(vals, func(s string) bool { return s != "" }); i >= 0 {
		return vals[i]
	}
	return ""
}
