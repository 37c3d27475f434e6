package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/keyed"
	"todo/internal/sequence"
)

// Storage keys.
const (
	TasksKey    = "tasks"
	SequenceKey = "current-id"
)

var ErrOutOfRange = errors.New("task position out of range")

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the ordered in-memory task list. It is written back to storage
// only by Flush, normally once when the program exits.
type Store struct {
	storage  *keyed.Storage
	sequence *sequence.Generator
	tasks    []Task
	logger   *log.Logger
}

func Open(storage *keyed.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sequence = sequence.New(storage, SequenceKey)
	s.tasks = s.load()

	maxID := -1
	for _, t := range s.tasks {
		maxID = max(maxID, t.ID)
	}
	if maxID >= s.sequence.Current() {
		s.logger.Warn("sequence behind stored ids", "current", s.sequence.Current(), "max_id", maxID)
		s.sequence.AtLeast(maxID + 1)
	}
	s.logger.Info("tasks loaded", "count", len(s.tasks), "next_id", s.sequence.Current())
	return s
}

func (s *Store) load() []Task {
	raw := keyed.List[json.RawMessage](s.storage, TasksKey)
	tasks := make([]Task, 0, len(raw))
	seen := map[int]struct{}{}
	for i, r := range raw {
		if err := validateRecord(r); err != nil {
			s.logger.Warn("dropping stored task", "index", i, "err", err)
			continue
		}
		var t Task
		if err := json.Unmarshal(r, &t); err != nil {
			s.logger.Warn("dropping stored task", "index", i, "err", err)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.Warn("dropping duplicate task id", "id", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}
	return tasks
}

// PeekNextID is the id the next Insert will assign. It does not consume it.
func (s *Store) PeekNextID() string {
	return s.sequence.Format()
}

// Sequence exposes the id generator, e.g. to format ids consistently.
func (s *Store) Sequence() *sequence.Generator { return s.sequence }

// Insert appends t under the current sequence id and advances the sequence.
// The returned task is what was stored. The task is kept even when
// persisting the advanced counter fails; the error reports that failure.
func (s *Store) Insert(t Task) (Task, error) {
	t.ID = s.sequence.Current()
	s.tasks = append(s.tasks, t)
	if err := s.sequence.Advance(); err != nil {
		return t, err
	}
	return t, nil
}

// FindByID returns the task with id and its position, or position -1.
func (s *Store) FindByID(id int) (Task, int, bool) {
	for i, t := range s.tasks {
		if t.ID == id {
			return t, i, true
		}
	}
	return Task{}, -1, false
}

// Lookup is FindByID for an id given as text, e.g. "  007".
func (s *Store) Lookup(ref string) (Task, int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return Task{}, -1, false
	}
	return s.FindByID(id)
}

func (s *Store) FilterBy(pred Predicate) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// List returns the tasks matching pred, or all tasks when pred is omitted.
func (s *Store) List(pred ...Predicate) []Task {
	if len(pred) == 0 || pred[0] == nil {
		return s.FilterBy(AcceptAll)
	}
	return s.FilterBy(pred[0])
}

func (s *Store) Len() int { return len(s.tasks) }

// Replace overwrites the record at pos. The stored id is kept.
func (s *Store) Replace(pos int, t Task) error {
	if pos < 0 || pos >= len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, pos)
	}
	t.ID = s.tasks[pos].ID
	s.tasks[pos] = t
	return nil
}

// Remove drops the task with id and reports whether one was removed.
func (s *Store) Remove(id int) bool {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.ID == id })
	return len(s.tasks) != before
}

func (s *Store) SetDone(id int, done bool) bool {
	_, pos, ok := s.FindByID(id)
	if !ok {
		return false
	}
	s.tasks[pos].Done = done
	return true
}

// Flush writes the task list and the sequence counter.
func (s *Store) Flush() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	if err := s.storage.Set(TasksKey, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := s.sequence.Save(); err != nil {
		return err
	}
	s.logger.Debug("tasks flushed", "count", len(tasks))
	return nil
}

func (s *Store) Close() error {
	return s.Flush()
}
