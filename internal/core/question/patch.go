package question

import (
	"encoding/json"
	"fmt"
	"slices"
)

// PatchKind selects which field a Patch updates.
type PatchKind int

const (
	PatchScore PatchKind = iota + 1
	PatchCategories
)

// Patch is a single-field update of one question. A patch carries either a
// score or a category id set, never both.
type Patch struct {
	Kind        PatchKind
	Score       Score
	CategoryIDs []int
}

// ScorePatch builds a patch that sets the score.
func ScorePatch(s Score) Patch {
	return Patch{Kind: PatchScore, Score: s}
}

// CategoriesPatch builds a patch that replaces the category set. The ids are
// de-duplicated and sorted.
func CategoriesPatch(ids []int) Patch {
	set := slices.Clone(ids)
	slices.Sort(set)
	set = slices.Compact(set)
	if set == nil {
		set = []int{}
	}
	return Patch{Kind: PatchCategories, CategoryIDs: set}
}

// String describes the patch for logs and messages.
func (p Patch) String() string {
	switch p.Kind {
	case PatchScore:
		return "score=" + p.Score.String()
	case PatchCategories:
		return fmt.Sprintf("categories=%v", p.CategoryIDs)
	default:
		return "empty"
	}
}

// MarshalJSON encodes the request body: {"score": …} or {"category_ids": […]}.
func (p Patch) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PatchScore:
		return json.Marshal(struct {
			Score Score `json:"score"`
		}{p.Score})
	case PatchCategories:
		ids := p.CategoryIDs
		if ids == nil {
			ids = []int{}
		}
		return json.Marshal(struct {
			CategoryIDs []int `json:"category_ids"`
		}{ids})
	default:
		return nil, fmt.Errorf("patch has no field set")
	}
}

// Update is the server acknowledgment of a patch. Fields the server did not
// echo are left nil.
type Update struct {
	ID          int
	Score       *Score
	CategoryIDs []int
}

// UnmarshalJSON decodes {"question": {"id", "score", "categories"}} as well as
// a bare acknowledgment without a question body.
func (u *Update) UnmarshalJSON(data []byte) error {
	var wire struct {
		Question *struct {
			ID         int             `json:"id"`
			Score      json.RawMessage `json:"score"`
			Categories []Category      `json:"categories"`
		} `json:"question"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*u = Update{}
	if wire.Question == nil {
		return nil
	}

	u.ID = wire.Question.ID
	if len(wire.Question.Score) > 0 {
		var s Score
		if err := s.UnmarshalJSON(wire.Question.Score); err != nil {
			return err
		}
		u.Score = &s
	}
	if wire.Question.Categories != nil {
		u.CategoryIDs = make([]int, 0, len(wire.Question.Categories))
		for _, c := range wire.Question.Categories {
			u.CategoryIDs = append(u.CategoryIDs, c.ID)
		}
	}
	return nil
}
