package question

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Score is the three-valued judgment on a question.
// On the wire it is 1 (agree), 0 (disagree) or null (unset).
type Score int8

const (
	ScoreUnset Score = iota
	ScoreDisagree
	ScoreAgree
)

// String returns the lowercase name of the score.
func (s Score) String() string {
	switch s {
	case ScoreAgree:
		return "agree"
	case ScoreDisagree:
		return "disagree"
	default:
		return "unset"
	}
}

// IsSet reports whether the score is agree or disagree.
func (s Score) IsSet() bool {
	return s == ScoreAgree || s == ScoreDisagree
}

// ParseScore parses a score name ("agree", "disagree", "unset") or its wire
// form ("1", "0", "null").
func ParseScore(v string) (Score, error) {
	switch v {
	case "agree", "1":
		return ScoreAgree, nil
	case "disagree", "0":
		return ScoreDisagree, nil
	case "unset", "null", "":
		return ScoreUnset, nil
	default:
		return ScoreUnset, fmt.Errorf("invalid score %q: must be agree, disagree or unset", v)
	}
}

// MarshalJSON encodes the score in wire form.
func (s Score) MarshalJSON() ([]byte, error) {
	switch s {
	case ScoreAgree:
		return []byte("1"), nil
	case ScoreDisagree:
		return []byte("0"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the wire form. Any value other than 1, 0 or null is
// rejected.
func (s *Score) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1":
		*s = ScoreAgree
	case "0":
		*s = ScoreDisagree
	case "null":
		*s = ScoreUnset
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			if f, err := n.Float64(); err == nil && (f == 0 || f == 1) {
				if f == 1 {
					*s = ScoreAgree
				} else {
					*s = ScoreDisagree
				}
				return nil
			}
		}
		return fmt.Errorf("invalid score %s: must be 1, 0 or null", data)
	}
	return nil
}
