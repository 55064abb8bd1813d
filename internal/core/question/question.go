// Package question defines the question/answer review domain types and their
// wire representation.
package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// PreviewLength is the rune length of question/answer previews shown in the table.
const PreviewLength = 50

// Category is an assignable tag. Categories are immutable reference data.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either a bare id (as returned in question rows) or a
// full {id, name} object (as returned by the category listing).
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("category: %w", err)
		}
		*c = Category{ID: id}
		return nil
	}

	type alias Category
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Category(a)
	return nil
}

// Question is a single question/answer pair under review.
type Question struct {
	ID            int        `json:"id"`
	QuestionText  string     `json:"question_text,omitempty"`
	AnswerText    string     `json:"answer_text,omitempty"`
	QuestionShort string     `json:"question_short,omitempty"`
	AnswerShort   string     `json:"answer_short,omitempty"`
	Topic         string     `json:"topic,omitempty"`
	Score         Score      `json:"score"`
	Categories    []Category `json:"categories"`
}

// UnmarshalJSON tolerates the "question"/"answer" key spelling used by some
// server versions in addition to "question_text"/"answer_text".
func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	var wire struct {
		alias
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*q = Question(wire.alias)
	if q.QuestionText == "" {
		q.QuestionText = wire.Question
	}
	if q.AnswerText == "" {
		q.AnswerText = wire.Answer
	}
	return nil
}

// QuestionPreview returns the short form of the question text.
func (q Question) QuestionPreview() string {
	if q.QuestionShort != "" {
		return q.QuestionShort
	}
	return Truncate(q.QuestionText, PreviewLength)
}

// AnswerPreview returns the short form of the answer text.
func (q Question) AnswerPreview() string {
	if q.AnswerShort != "" {
		return q.AnswerShort
	}
	return Truncate(q.AnswerText, PreviewLength)
}

// CategoryIDs returns the ids of the assigned categories.
func (q Question) CategoryIDs() []int {
	ids := make([]int, 0, len(q.Categories))
	for _, c := range q.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasCategory reports whether the category with id is assigned.
func (q Question) HasCategory(id int) bool {
	return slices.ContainsFunc(q.Categories, func(c Category) bool { return c.ID == id })
}

// Detail is the full record of one question, fetched on demand.
type Detail struct {
	ID             int            `json:"id"`
	Question       string         `json:"question"`
	Answer         string         `json:"answer"`
	Topic          string         `json:"topic"`
	Categories     []Category     `json:"categories"`
	AdditionalData map[string]any `json:"additional_data"`
}

// UnmarshalJSON accepts both "question"/"answer" and the
// "question_text"/"answer_text" spelling.
func (d *Detail) UnmarshalJSON(data []byte) error {
	type alias Detail
	var wire struct {
		alias
		QuestionText string `json:"question_text"`
		AnswerText   string `json:"answer_text"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*d = Detail(wire.alias)
	if d.Question == "" {
		d.Question = wire.QuestionText
	}
	if d.Answer == "" {
		d.Answer = wire.AnswerText
	}
	return nil
}

// Page is one page of questions plus its pagination metadata.
type Page struct {
	Questions []Question
	State     PageState
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
