package task

import (
	"fmt"
	"strings"
)

type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterDone
)

// Predicate selects the tasks a filter shows.
type Predicate func(Task) bool

func AcceptAll(Task) bool       { return true }
func AcceptPending(t Task) bool { return !t.Done }
func AcceptDone(t Task) bool    { return t.Done }

func Filters() []Filter { return []Filter{FilterAll, FilterPending, FilterDone} }

func (f Filter) Predicate() Predicate {
	switch f {
	case FilterPending:
		return AcceptPending
	case FilterDone:
		return AcceptDone
	default:
		return AcceptAll
	}
}

func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterDone:
		return "done"
	default:
		return "all"
	}
}

func ParseFilter(v string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return FilterAll, nil
	case "pending", "todo":
		return FilterPending, nil
	case "done", "concluded":
		return FilterDone, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q", v)
	}
}
