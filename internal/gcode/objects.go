package gcode

import (
	"slices"
	"strings"
)

// IDMode selects how object IDs are validated and ordered.
type IDMode int

const (
	// IDModeOpaque treats IDs as strings ordered by byte value.
	IDModeOpaque IDMode = iota
	// IDModeInteger requires non-negative decimal IDs ordered numerically.
	IDModeInteger
)

func (m IDMode) String() string {
	switch m {
	case IDModeOpaque:
		return "opaque"
	case IDModeInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// ObjectSet records each distinct object ID once.
// Iteration order is not part of the set; use Sorted.
type ObjectSet struct {
	ids map[string]struct{}
}

// NewObjectSet returns an empty set.
func NewObjectSet() *ObjectSet {
	return &ObjectSet{ids: make(map[string]struct{})}
}

// Add registers id and reports whether it was new.
func (s *ObjectSet) Add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len returns the number of distinct IDs.
func (s *ObjectSet) Len() int {
	return len(s.ids)
}

// Sorted returns the IDs ordered for mode.
//
// IDModeInteger relies on IDs being canonical decimals (no sign, no leading
// zeros), so a shorter ID is always the smaller number.
func (s *ObjectSet) Sorted(mode IDMode) []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	if mode == IDModeInteger {
		slices.SortFunc(out, func(a, b string) int {
			if len(a) != len(b) {
				return len(a) - len(b)
			}
			return strings.Compare(a, b)
		})
		return out
	}
	slices.Sort(out)
	return out
}
