package questions

import (
	"slices"

	"github.com/colonyops/qaeval/internal/core/question"
)

// Directory is the category list fetched once per view. Row category sets
// are always resolved through it so names never come from a mutation echo.
type Directory struct {
	categories []question.Category
	loaded     bool
	err        error
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Set replaces the directory contents.
func (d *Directory) Set(cats []question.Category) {
	d.categories = append([]question.Category{}, cats...)
	d.loaded = true
	d.err = nil
}

// SetError records a failed load. Previously loaded categories are kept.
func (d *Directory) SetError(err error) {
	d.err = err
}

// Loaded reports whether a directory fetch has succeeded.
func (d *Directory) Loaded() bool { return d.loaded }

// Err returns the last load error.
func (d *Directory) Err() error { return d.err }

// All returns the categories in directory order.
func (d *Directory) All() []question.Category { return d.categories }

// Len returns the number of categories.
func (d *Directory) Len() int { return len(d.categories) }

// Nth returns the category at zero-based position i.
func (d *Directory) Nth(i int) (question.Category, bool) {
	if i < 0 || i >= len(d.categories) {
		return question.Category{}, false
	}
	return d.categories[i], true
}

// Name returns the name of category id, or "" if unknown.
func (d *Directory) Name(id int) string {
	for _, c := range d.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// Resolve returns the directory entries whose ids are in ids, in directory
// order. Unknown ids are dropped.
func (d *Directory) Resolve(ids []int) []question.Category {
	out := make([]question.Category, 0, len(ids))
	for _, c := range d.categories {
		if slices.Contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Toggle returns the id set that results from flipping id in current. The
// result is sorted.
func (d *Directory) Toggle(current []question.Category, id int) []int {
	out := make([]int, 0, len(current)+1)
	found := false
	for _, c := range current {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c.ID)
	}
	if !found {
		out = append(out, id)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
