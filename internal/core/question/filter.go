package question

import "fmt"

// Filter partitions questions by whether their score is set.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterEvaluated   Filter = "evaluated"
	FilterUnevaluated Filter = "unevaluated"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterEvaluated, FilterUnevaluated}

// ParseFilter validates a filter name. The empty string means FilterAll.
func ParseFilter(v string) (Filter, error) {
	switch Filter(v) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterEvaluated, FilterUnevaluated:
		return Filter(v), nil
	default:
		return "", fmt.Errorf("invalid filter %q: must be all, evaluated or unevaluated", v)
	}
}

// IsValid reports whether f is one of the known filters.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterEvaluated, FilterUnevaluated:
		return true
	default:
		return false
	}
}

// Matches reports whether a question with score s belongs to the filter.
func (f Filter) Matches(s Score) bool {
	switch f {
	case FilterEvaluated:
		return s.IsSet()
	case FilterUnevaluated:
		return !s.IsSet()
	default:
		return true
	}
}

// Next returns the following filter in display order, wrapping around.
func (f Filter) Next() Filter {
	return f.step(1)
}

// Prev returns the preceding filter in display order, wrapping around.
func (f Filter) Prev() Filter {
	return f.step(len(Filters) - 1)
}

func (f Filter) step(n int) Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+n)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the capitalised display name.
func (f Filter) Label() string {
	switch f {
	case FilterEvaluated:
		return "Evaluated"
	case FilterUnevaluated:
		return "Unevaluated"
	default:
		return "All"
	}
}
