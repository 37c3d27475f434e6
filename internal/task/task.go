// Package task holds the to-do records and the in-memory list that owns them.
package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Priority int

const (
	Low Priority = iota
	Medium
	High
)

var priorityLabels = map[Priority]string{
	Low:    "Low",
	Medium: "Medium",
	High:   "High",
}

var priorityClasses = map[Priority]string{
	Low:    "text-success",
	Medium: "text-warning",
	High:   "text-alert",
}

func Priorities() []Priority { return []Priority{Low, Medium, High} }

func (p Priority) Valid() bool { return p >= Low && p <= High }

func (p Priority) String() string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return priorityLabels[Low]
}

// Class is the style class used to colour the priority label.
func (p Priority) Class() string {
	if c, ok := priorityClasses[p]; ok {
		return c
	}
	return priorityClasses[Low]
}

func (p Priority) Next() Priority {
	if !p.Valid() {
		return Low
	}
	return (p + 1) % 3
}

func (p Priority) Prev() Priority {
	if !p.Valid() {
		return Low
	}
	return (p + 2) % 3
}

// ParsePriority accepts a numeric level or a label; anything else is Low.
func ParsePriority(v string) Priority {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil && Priority(n).Valid() {
		return Priority(n)
	}
	for p, l := range priorityLabels {
		if strings.EqualFold(l, v) {
			return p
		}
	}
	return Low
}

// UnmarshalJSON also accepts the level as a quoted number.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Priority(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	*p = ParsePriority(s)
	return nil
}

type Task struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Description string   `json:"description" yaml:"description"`
	Done        bool     `json:"done" yaml:"done"`
}
