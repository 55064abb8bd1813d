package questions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/qaeval/internal/core/question"
)

func newQuestion(id int, score question.Score, cats ...question.Category) question.Question {
	return question.Question{
		ID:            id,
		QuestionShort: "question " + string(rune('A'+id%26)),
		AnswerShort:   "answer " + string(rune('A'+id%26)),
		Score:         score,
		Categories:    cats,
	}
}

func newPage(current, total int, filter question.Filter, qs ...question.Question) question.Page {
	return question.Page{
		Questions: qs,
		State:     question.NewPageState(current, total, filter),
	}
}

func TestController_InitialStatusIsLoading(t *testing.T) {
	c := NewController()
	assert.Equal(t, StatusLoading, c.Status())
	assert.Empty(t, c.Rows())
}

func TestController_Load(t *testing.T) {
	c := NewController()

	req := c.Load(0, question.Filter("bogus"))
	assert.Equal(t, 1, req.Page, "page below 1 is treated as 1")
	assert.Equal(t, question.FilterAll, req.Filter)
	assert.True(t, c.Loading())

	next := c.Load(3, question.FilterEvaluated)
	assert.Greater(t, next.Seq, req.Seq)
	assert.Equal(t, next, c.Requested())
}

func TestController_Resolve(t *testing.T) {
	t.Run("success replaces rows and state together", func(t *testing.T) {
		c := NewController()
		req := c.Load(2, question.FilterAll)

		ok := c.Resolve(req, newPage(2, 3, question.FilterAll, newQuestion(1, question.ScoreUnset)), nil)
		require.True(t, ok)

		assert.Equal(t, StatusPopulated, c.Status())
		assert.Len(t, c.Rows(), 1)
		assert.Equal(t, 2, c.State().CurrentPage)
		assert.True(t, c.State().HasNext)
		assert.True(t, c.State().HasPrev)
		assert.NoError(t, c.Err())
	})

	t.Run("empty page is not an error", func(t *testing.T) {
		c := NewController()
		req := c.Load(1, question.FilterEvaluated)

		require.True(t, c.Resolve(req, newPage(1, 0, question.FilterEvaluated), nil))
		assert.Equal(t, StatusEmpty, c.Status())
		assert.NotNil(t, c.Rows())
	})

	t.Run("failure keeps previous rows", func(t *testing.T) {
		c := NewController()
		req := c.Load(1, question.FilterAll)
		c.Resolve(req, newPage(1, 2, question.FilterAll, newQuestion(1, question.ScoreAgree)), nil)

		req = c.Load(2, question.FilterAll)
		require.True(t, c.Resolve(req, question.Page{}, errors.New("boom")))

		assert.Equal(t, StatusError, c.Status())
		assert.Len(t, c.Rows(), 1)
		assert.Equal(t, 1, c.State().CurrentPage)
		assert.EqualError(t, c.Err(), "boom")
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		c := NewController()
		old := c.Load(1, question.FilterAll)
		latest := c.SetFilter(question.FilterEvaluated)

		require.True(t, c.Resolve(latest, newPage(1, 1, question.FilterEvaluated, newQuestion(7, question.ScoreAgree)), nil))
		assert.False(t, c.Resolve(old, newPage(1, 1, question.FilterAll, newQuestion(1, question.ScoreUnset)), nil))

		require.Len(t, c.Rows(), 1)
		assert.Equal(t, 7, c.Rows()[0].ID)
		assert.Equal(t, question.FilterEvaluated, c.State().Filter)
	})

	t.Run("stale failure does not clobber success", func(t *testing.T) {
		c := NewController()
		old := c.Load(1, question.FilterAll)
		latest := c.Load(2, question.FilterAll)

		c.Resolve(latest, newPage(2, 2, question.FilterAll, newQuestion(3, question.ScoreUnset)), nil)
		assert.False(t, c.Resolve(old, question.Page{}, errors.New("late")))
		assert.Equal(t, StatusPopulated, c.Status())
	})

	t.Run("success resets the cursor", func(t *testing.T) {
		c := NewController()
		req := c.Load(1, question.FilterAll)
		c.Resolve(req, newPage(1, 2, question.FilterAll, newQuestion(1, 0), newQuestion(2, 0)), nil)
		c.MoveDown(10)
		require.Equal(t, 1, c.Cursor())

		req = c.Load(2, question.FilterAll)
		c.Resolve(req, newPage(2, 2, question.FilterAll, newQuestion(3, 0), newQuestion(4, 0)), nil)
		assert.Equal(t, 0, c.Cursor())
	})
}

func TestController_Retry(t *testing.T) {
	c := NewController()
	req := c.Load(4, question.FilterUnevaluated)
	c.Resolve(req, question.Page{}, errors.New("down"))

	retry := c.Retry()
	assert.Equal(t, 4, retry.Page)
	assert.Equal(t, question.FilterUnevaluated, retry.Filter)
	assert.Greater(t, retry.Seq, req.Seq)
}

func TestController_SetFilterResetsPage(t *testing.T) {
	c := NewController()
	req := c.Load(3, question.FilterAll)
	c.Resolve(req, newPage(3, 5, question.FilterAll, newQuestion(1, 0)), nil)

	req = c.SetFilter(question.FilterEvaluated)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, question.FilterEvaluated, req.Filter)
}

func TestController_NextPrev(t *testing.T) {
	loaded := func(current, total int) *Controller {
		c := NewController()
		req := c.Load(current, question.FilterAll)
		c.Resolve(req, newPage(current, total, question.FilterAll, newQuestion(1, 0)), nil)
		return c
	}

	t.Run("middle page moves both ways", func(t *testing.T) {
		c := loaded(2, 3)
		req, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, 3, req.Page)

		c.Resolve(req, newPage(3, 3, question.FilterAll, newQuestion(2, 0)), nil)
		req, ok = c.Prev()
		require.True(t, ok)
		assert.Equal(t, 2, req.Page)
	})

	t.Run("no fetch beyond the last page", func(t *testing.T) {
		c := loaded(3, 3)
		seq := c.Requested().Seq

		_, ok := c.Next()
		assert.False(t, ok)
		assert.Equal(t, seq, c.Requested().Seq, "no request issued")
	})

	t.Run("no fetch before the first page", func(t *testing.T) {
		c := loaded(1, 3)
		_, ok := c.Prev()
		assert.False(t, ok)
	})

	t.Run("blocked while loading", func(t *testing.T) {
		c := loaded(1, 3)
		c.Load(1, question.FilterAll)
		_, ok := c.Next()
		assert.False(t, ok)
	})

	t.Run("blocked when displayed page is for another filter", func(t *testing.T) {
		c := loaded(1, 3)
		req := c.SetFilter(question.FilterEvaluated)
		c.Resolve(req, question.Page{}, errors.New("down"))

		_, ok := c.Next()
		assert.False(t, ok)
	})

	t.Run("blocked before anything loaded", func(t *testing.T) {
		c := NewController()
		_, ok := c.Next()
		assert.False(t, ok)
	})
}

func TestController_ApplyByID(t *testing.T) {
	c := NewController()
	req := c.Load(1, question.FilterAll)
	c.Resolve(req, newPage(1, 1, question.FilterAll,
		newQuestion(1, question.ScoreUnset),
		newQuestion(42, question.ScoreUnset),
	), nil)

	assert.True(t, c.ApplyScore(42, question.ScoreDisagree))
	assert.False(t, c.ApplyScore(99, question.ScoreAgree), "row not on page")

	row, ok := c.Row(42)
	require.True(t, ok)
	assert.Equal(t, question.ScoreDisagree, row.Score)

	other, _ := c.Row(1)
	assert.Equal(t, question.ScoreUnset, other.Score, "other rows untouched")

	cats := []question.Category{{ID: 2, Name: "Neurology"}}
	assert.True(t, c.ApplyCategories(1, cats))
	cats[0].Name = "mutated"
	row, _ = c.Row(1)
	assert.Equal(t, "Neurology", row.Categories[0].Name, "categories are copied")
}

func TestController_Cursor(t *testing.T) {
	c := NewController()
	_, ok := c.Selected()
	assert.False(t, ok)

	req := c.Load(1, question.FilterAll)
	c.Resolve(req, newPage(1, 1, question.FilterAll,
		newQuestion(1, 0), newQuestion(2, 0), newQuestion(3, 0), newQuestion(4, 0),
	), nil)

	c.MoveUp(2)
	assert.Equal(t, 0, c.Cursor())

	c.MoveDown(2)
	c.MoveDown(2)
	id, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, id)
	assert.Equal(t, 1, c.Offset())

	c.MoveDown(2)
	c.MoveDown(2)
	assert.Equal(t, 3, c.Cursor(), "cursor stops at last row")
	assert.Equal(t, 2, c.Offset())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "populated", StatusPopulated.String())
	assert.Equal(t, "unknown", Status(99).String())
}
