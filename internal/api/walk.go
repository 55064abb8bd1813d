package api

import (
	"context"

	"github.com/colonyops/qaeval/internal/core/question"
)

// maxWalkPages bounds Walk against a server that never reports a last page.
const maxWalkPages = 10000

// Walk calls fn for every question matching filter, page by page, starting at
// page 1. It stops at the first error from the service or from fn.
func (c *Client) Walk(ctx context.Context, filter question.Filter, fn func(question.Question) error) error {
	for page := 1; page <= maxWalkPages; page++ {
		p, err := c.ListQuestions(ctx, page, filter)
		if err != nil {
			return err
		}

		for _, q := range p.Questions {
			if err := fn(q); err != nil {
				return err
			}
		}

		if !p.State.HasNext || len(p.Questions) == 0 {
			return nil
		}
	}
	return nil
}

// Stats summarises scores across a filter.
type Stats struct {
	Total    int `json:"total"`
	Agree    int `json:"agree"`
	Disagree int `json:"disagree"`
	Unset    int `json:"unset"`
}

// Add counts one question.
func (s *Stats) Add(q question.Question) {
	s.Total++
	switch q.Score {
	case question.ScoreAgree:
		s.Agree++
	case question.ScoreDisagree:
		s.Disagree++
	default:
		s.Unset++
	}
}

// PercentEvaluated is the share of questions with a set score, 0 when empty.
func (s Stats) PercentEvaluated() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Agree+s.Disagree) / float64(s.Total) * 100
}
