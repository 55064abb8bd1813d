package questions

import (
	"github.com/colonyops/qaeval/internal/core/question"
)

// Status is the table's state for the current fetch cycle.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusEmpty
	StatusPopulated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusPopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Request identifies one page fetch. Seq increases with every request the
// controller issues, so only the latest one is ever applied.
type Request struct {
	Seq    uint64
	Page   int
	Filter question.Filter
}

// Controller owns the loaded page, its pagination state and the row cursor.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	seq     uint64
	latest  Request
	loading bool
	loaded  bool
	err     error

	rows  []question.Question
	state question.PageState

	cursor int
	offset int
}

// NewController creates a controller with no page loaded.
func NewController() *Controller {
	return &Controller{
		rows:  []question.Question{},
		state: question.NewPageState(1, 0, question.FilterAll),
	}
}

// Load records a fetch of page with filter and marks the controller loading.
// The returned request must be passed back to Resolve with the outcome.
func (c *Controller) Load(page int, filter question.Filter) Request {
	if page < 1 {
		page = 1
	}
	if !filter.IsValid() {
		filter = question.FilterAll
	}

	c.seq++
	c.latest = Request{Seq: c.seq, Page: page, Filter: filter}
	c.loading = true
	return c.latest
}

// Resolve applies the outcome of req. It returns false and changes nothing
// when req is not the latest request issued.
func (c *Controller) Resolve(req Request, page question.Page, err error) bool {
	if req.Seq != c.latest.Seq {
		return false
	}

	c.loading = false
	if err != nil {
		c.err = err
		return true
	}

	rows := page.Questions
	if rows == nil {
		rows = []question.Question{}
	}

	c.err = nil
	c.loaded = true
	c.rows, c.state = rows, page.State
	c.cursor, c.offset = 0, 0
	return true
}

// Retry re-issues the most recently requested page and filter.
func (c *Controller) Retry() Request {
	return c.Load(c.latest.Page, c.latest.Filter)
}

// SetFilter switches to filter and loads its first page.
func (c *Controller) SetFilter(filter question.Filter) Request {
	return c.Load(1, filter)
}

// Next loads the following page. It reports false without issuing a request
// when there is no next page, a fetch is outstanding, or the displayed page
// belongs to a different filter than the one last requested.
func (c *Controller) Next() (Request, bool) {
	if !c.canNavigate() || !c.state.HasNext {
		return Request{}, false
	}
	return c.Load(c.state.CurrentPage+1, c.state.Filter), true
}

// Prev loads the preceding page under the same conditions as Next.
func (c *Controller) Prev() (Request, bool) {
	if !c.canNavigate() || !c.state.HasPrev {
		return Request{}, false
	}
	return c.Load(c.state.CurrentPage-1, c.state.Filter), true
}

func (c *Controller) canNavigate() bool {
	return !c.loading && c.loaded && c.state.Filter == c.latest.Filter
}

// ApplyScore sets the score of the row with id. It reports whether the row
// is on the loaded page.
func (c *Controller) ApplyScore(id int, score question.Score) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.rows[i].Score = score
	return true
}

// ApplyCategories replaces the categories of the row with id. It reports
// whether the row is on the loaded page.
func (c *Controller) ApplyCategories(id int, cats []question.Category) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.rows[i].Categories = append([]question.Category{}, cats...)
	return true
}

// Row returns a copy of the row with id.
func (c *Controller) Row(id int) (question.Question, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return question.Question{}, false
	}
	return c.rows[i], true
}

func (c *Controller) indexOf(id int) int {
	for i := range c.rows {
		if c.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// Status derives the table state from the controller.
func (c *Controller) Status() Status {
	switch {
	case c.loading, !c.loaded && c.err == nil:
		return StatusLoading
	case c.err != nil:
		return StatusError
	case len(c.rows) == 0:
		return StatusEmpty
	default:
		return StatusPopulated
	}
}

// Rows returns the loaded rows.
func (c *Controller) Rows() []question.Question { return c.rows }

// State returns the pagination state of the loaded page.
func (c *Controller) State() question.PageState { return c.state }

// Requested returns the latest request issued.
func (c *Controller) Requested() Request { return c.latest }

// Err returns the error of the last failed fetch, cleared by the next success.
func (c *Controller) Err() error { return c.err }

// Loading reports whether a fetch is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// MoveUp moves the cursor up one row.
func (c *Controller) MoveUp(visible int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down one row.
func (c *Controller) MoveDown(visible int) {
	if c.cursor < len(c.rows)-1 {
		c.cursor++
		c.clampOffset(visible)
	}
}

// Selected returns the id of the row under the cursor.
func (c *Controller) Selected() (int, bool) {
	if c.cursor < 0 || c.cursor >= len(c.rows) {
		return 0, false
	}
	return c.rows[c.cursor].ID, true
}

// Cursor returns the cursor position.
func (c *Controller) Cursor() int { return c.cursor }

// Offset returns the scroll offset.
func (c *Controller) Offset() int { return c.offset }

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visible int) {
	c.clampOffset(visible)
}

func (c *Controller) clampOffset(visible int) {
	if visible < 1 {
		visible = 1
	}

	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}

	maxOffset := max(len(c.rows)-visible, 0)
	c.offset = min(max(c.offset, 0), maxOffset)
}
