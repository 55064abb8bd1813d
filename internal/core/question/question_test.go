package question

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Wire(t *testing.T) {
	tests := []struct {
		wire  string
		score Score
	}{
		{"1", ScoreAgree},
		{"0", ScoreDisagree},
		{"null", ScoreUnset},
	}

	for _, tt := range tests {
		t.Run(tt.score.String(), func(t *testing.T) {
			var s Score
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &s))
			assert.Equal(t, tt.score, s)

			out, err := json.Marshal(tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(out))
		})
	}

	t.Run("null is not disagree", func(t *testing.T) {
		var q Question
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"score":null}`), &q))
		assert.Equal(t, ScoreUnset, q.Score)
		assert.NotEqual(t, ScoreDisagree, q.Score)
	})

	t.Run("missing score is unset", func(t *testing.T) {
		var q Question
		require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &q))
		assert.Equal(t, ScoreUnset, q.Score)
	})

	t.Run("rejects other values", func(t *testing.T) {
		var s Score
		assert.Error(t, json.Unmarshal([]byte("2"), &s))
		assert.Error(t, json.Unmarshal([]byte(`"yes"`), &s))
	})
}

func TestParseScore(t *testing.T) {
	s, err := ParseScore("agree")
	require.NoError(t, err)
	assert.Equal(t, ScoreAgree, s)

	s, err = ParseScore("0")
	require.NoError(t, err)
	assert.Equal(t, ScoreDisagree, s)

	s, err = ParseScore("unset")
	require.NoError(t, err)
	assert.Equal(t, ScoreUnset, s)

	_, err = ParseScore("maybe")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		f, err := ParseFilter("")
		require.NoError(t, err)
		assert.Equal(t, FilterAll, f)

		f, err = ParseFilter("evaluated")
		require.NoError(t, err)
		assert.Equal(t, FilterEvaluated, f)

		_, err = ParseFilter("scored")
		assert.Error(t, err)
	})

	t.Run("matches", func(t *testing.T) {
		assert.True(t, FilterAll.Matches(ScoreUnset))
		assert.True(t, FilterEvaluated.Matches(ScoreDisagree))
		assert.False(t, FilterEvaluated.Matches(ScoreUnset))
		assert.True(t, FilterUnevaluated.Matches(ScoreUnset))
		assert.False(t, FilterUnevaluated.Matches(ScoreAgree))
	})

	t.Run("cycles", func(t *testing.T) {
		assert.Equal(t, FilterEvaluated, FilterAll.Next())
		assert.Equal(t, FilterUnevaluated, FilterEvaluated.Next())
		assert.Equal(t, FilterAll, FilterUnevaluated.Next())
		assert.Equal(t, FilterUnevaluated, FilterAll.Prev())
	})
}

func TestNewPageState(t *testing.T) {
	t.Run("navigation flags agree with page bounds", func(t *testing.T) {
		for total := 1; total <= 6; total++ {
			for page := 1; page <= total; page++ {
				for _, f := range Filters {
					ps := NewPageState(page, total, f)
					assert.Equal(t, page > 1, ps.HasPrev, "page %d of %d", page, total)
					assert.Equal(t, page < total, ps.HasNext, "page %d of %d", page, total)
					assert.Equal(t, f, ps.Filter)
				}
			}
		}
	})

	t.Run("clamps out of range pages", func(t *testing.T) {
		ps := NewPageState(9, 3, FilterAll)
		assert.Equal(t, 3, ps.CurrentPage)
		assert.False(t, ps.HasNext)
		assert.True(t, ps.HasPrev)

		ps = NewPageState(0, 3, FilterAll)
		assert.Equal(t, 1, ps.CurrentPage)
		assert.False(t, ps.HasPrev)
	})

	t.Run("no pages", func(t *testing.T) {
		ps := NewPageState(4, 0, FilterEvaluated)
		assert.Equal(t, 1, ps.CurrentPage)
		assert.False(t, ps.HasNext)
		assert.False(t, ps.HasPrev)
	})
}

func TestQuestion_Decode(t *testing.T) {
	t.Run("category ids", func(t *testing.T) {
		var q Question
		err := json.Unmarshal([]byte(`{"id":7,"question_short":"q","answer_short":"a","categories":[2,5]}`), &q)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 5}, q.CategoryIDs())
		assert.True(t, q.HasCategory(5))
		assert.False(t, q.HasCategory(3))
	})

	t.Run("category objects", func(t *testing.T) {
		var q Question
		err := json.Unmarshal([]byte(`{"id":7,"categories":[{"id":2,"name":"Cardio"}]}`), &q)
		require.NoError(t, err)
		require.Len(t, q.Categories, 1)
		assert.Equal(t, Category{ID: 2, Name: "Cardio"}, q.Categories[0])
	})

	t.Run("alternate text keys", func(t *testing.T) {
		var q Question
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"question":"full q","answer":"full a"}`), &q))
		assert.Equal(t, "full q", q.QuestionText)
		assert.Equal(t, "full a", q.AnswerText)
	})
}

func TestQuestion_Previews(t *testing.T) {
	q := Question{QuestionText: "short", AnswerText: strings.Repeat("é", 80)}
	assert.Equal(t, "short", q.QuestionPreview())
	assert.Equal(t, PreviewLength+3, len([]rune(q.AnswerPreview())))

	q.QuestionShort = "server preview"
	assert.Equal(t, "server preview", q.QuestionPreview())
}

func TestDetail_Decode(t *testing.T) {
	var d Detail
	err := json.Unmarshal([]byte(`{"id":3,"question_text":"Q","answer_text":"A","topic":"t","categories":[1],"additional_data":{"source":"x"}}`), &d)
	require.NoError(t, err)
	assert.Equal(t, "Q", d.Question)
	assert.Equal(t, "A", d.Answer)
	assert.Equal(t, "x", d.AdditionalData["source"])
}

func TestPatch(t *testing.T) {
	t.Run("score body", func(t *testing.T) {
		out, err := json.Marshal(ScorePatch(ScoreAgree))
		require.NoError(t, err)
		assert.JSONEq(t, `{"score":1}`, string(out))

		out, err = json.Marshal(ScorePatch(ScoreUnset))
		require.NoError(t, err)
		assert.JSONEq(t, `{"score":null}`, string(out))
	})

	t.Run("category body is a sorted set", func(t *testing.T) {
		out, err := json.Marshal(CategoriesPatch([]int{3, 1, 3}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"category_ids":[1,3]}`, string(out))

		out, err = json.Marshal(CategoriesPatch(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"category_ids":[]}`, string(out))
	})

	t.Run("empty patch fails", func(t *testing.T) {
		_, err := json.Marshal(Patch{})
		assert.Error(t, err)
	})
}

func TestUpdate_Decode(t *testing.T) {
	var u Update
	err := json.Unmarshal([]byte(`{"message":"ok","question":{"id":42,"score":null,"categories":[1,4]}}`), &u)
	require.NoError(t, err)
	assert.Equal(t, 42, u.ID)
	require.NotNil(t, u.Score)
	assert.Equal(t, ScoreUnset, *u.Score)
	assert.Equal(t, []int{1, 4}, u.CategoryIDs)

	var bare Update
	require.NoError(t, json.Unmarshal([]byte(`{"message":"ok"}`), &bare))
	assert.Nil(t, bare.Score)
	assert.Nil(t, bare.CategoryIDs)
}
