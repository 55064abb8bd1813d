package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/qaeval/internal/core/question"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()

	require.True(t, tr.Begin(42))
	assert.False(t, tr.Begin(42), "second begin on a busy row is refused")
	assert.True(t, tr.Begin(7), "other rows are independent")
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Busy(42))

	tr.End(42)
	assert.False(t, tr.Busy(42))
	assert.Equal(t, 1, tr.Len())
	assert.True(t, tr.Begin(42), "row can be edited again after end")
}

func TestDirectory(t *testing.T) {
	d := NewDirectory()
	assert.False(t, d.Loaded())

	d.Set([]question.Category{
		{ID: 3, Name: "Cardiology"},
		{ID: 1, Name: "Neurology"},
		{ID: 8, Name: "Oncology"},
	})
	require.True(t, d.Loaded())
	assert.Equal(t, 3, d.Len())

	t.Run("resolve keeps directory order and drops unknown ids", func(t *testing.T) {
		got := d.Resolve([]int{8, 99, 3})
		assert.Equal(t, []question.Category{{ID: 3, Name: "Cardiology"}, {ID: 8, Name: "Oncology"}}, got)
		assert.Empty(t, d.Resolve(nil))
	})

	t.Run("toggle adds and removes", func(t *testing.T) {
		current := []question.Category{{ID: 8, Name: "Oncology"}, {ID: 3, Name: "Cardiology"}}
		assert.Equal(t, []int{1, 3, 8}, d.Toggle(current, 1))
		assert.Equal(t, []int{8}, d.Toggle(current, 3))
		assert.Equal(t, []int{}, d.Toggle([]question.Category{{ID: 3}}, 3))
	})

	t.Run("nth and name", func(t *testing.T) {
		c, ok := d.Nth(1)
		require.True(t, ok)
		assert.Equal(t, "Neurology", c.Name)

		_, ok = d.Nth(3)
		assert.False(t, ok)
		_, ok = d.Nth(-1)
		assert.False(t, ok)

		assert.Equal(t, "Oncology", d.Name(8))
		assert.Empty(t, d.Name(99))
	})
}

func TestCategoryPicker(t *testing.T) {
	options := []question.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	q := question.Question{ID: 5, Categories: []question.Category{{ID: 2, Name: "B"}}}

	p := NewCategoryPicker(q, options)
	assert.Equal(t, 5, p.QuestionID())
	assert.Equal(t, []int{2}, p.Desired())
	assert.False(t, p.Changed())

	p.Toggle() // A on
	p.MoveDown()
	p.Toggle() // B off
	p.MoveDown()
	p.MoveDown()
	p.Toggle() // C on, cursor clamped

	assert.Equal(t, []int{1, 3}, p.Desired())
	assert.True(t, p.Changed())

	p.Toggle() // C off
	p.MoveUp()
	p.Toggle() // B on
	p.MoveUp()
	p.Toggle() // A off
	assert.Equal(t, []int{2}, p.Desired())
	assert.False(t, p.Changed(), "toggling back to the initial set is no change")
}
