package question

// PageState is the pagination metadata for the loaded page under a filter.
//
// HasNext and HasPrev are always derived from CurrentPage and TotalPages; build
// values with NewPageState rather than by hand.
type PageState struct {
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrev     bool
	Filter      Filter
}

// NewPageState derives a consistent PageState. CurrentPage is clamped into
// [1, total] when total > 0, and is 1 when there are no pages at all.
func NewPageState(current, total int, filter Filter) PageState {
	if total < 0 {
		total = 0
	}
	switch {
	case total == 0:
		current = 1
	case current < 1:
		current = 1
	case current > total:
		current = total
	}

	return PageState{
		CurrentPage: current,
		TotalPages:  total,
		HasNext:     current < total,
		HasPrev:     current > 1,
		Filter:      filter,
	}
}
