package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/keyed"
	"todo/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return Open(keyed.New(mem, nil)), mem
}

func TestStore_InsertAssignsPeekedID(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, "0", s.PeekNextID())
	a, err := s.Insert(Task{Title: "A"})
	require.NoError(t, err)
	assert.Equal(t, 0, a.ID)
	assert.False(t, a.Done)

	assert.Equal(t, "1", s.PeekNextID())
	b, err := s.Insert(Task{Title: "B", ID: 99})
	require.NoError(t, err)
	assert.Equal(t, 1, b.ID)

	assert.Equal(t, []Task{a, b}, s.List())
}

func TestStore_InsertPeekProperty(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 20; i++ {
		peek := s.PeekNextID()
		got, err := s.Insert(Task{Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, peek, s.Sequence().Format(got.ID))
	}
}

func TestStore_FindByID(t *testing.T) {
	s, _ := newTestStore(t)

	got, pos, ok := s.FindByID(0)
	assert.False(t, ok)
	assert.Equal(t, -1, pos)
	assert.Equal(t, Task{}, got)

	_, _ = s.Insert(Task{Title: "A"})
	_, _ = s.Insert(Task{Title: "B"})

	got, pos, ok = s.FindByID(1)
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "B", got.Title)

	_, pos, ok = s.FindByID(42)
	assert.False(t, ok)
	assert.Equal(t, -1, pos)
}

func TestStore_Lookup(t *testing.T) {
	s, _ := newTestStore(t)
	for _, title := range []string{"a", "b", "c", "d"} {
		_, _ = s.Insert(Task{Title: title})
	}

	tests := []struct {
		ref     string
		wantPos int
	}{
		{ref: "3", wantPos: 3},
		{ref: "  3 ", wantPos: 3},
		{ref: "003", wantPos: 3},
		{ref: "x", wantPos: -1},
		{ref: "", wantPos: -1},
		{ref: "9", wantPos: -1},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, pos, ok := s.Lookup(tt.ref)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantPos >= 0, ok)
		})
	}
}

func TestStore_FiltersPartition(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 7; i++ {
		_, _ = s.Insert(Task{Title: "t", Done: i%3 == 0})
	}

	all := s.FilterBy(AcceptAll)
	assert.Equal(t, s.List(), all)

	done := s.FilterBy(AcceptDone)
	pending := s.FilterBy(AcceptPending)
	assert.Equal(t, len(all), len(done)+len(pending))

	seen := map[int]int{}
	for _, x := range append(done, pending...) {
		seen[x.ID]++
	}
	for _, x := range all {
		assert.Equal(t, 1, seen[x.ID], "task %d", x.ID)
	}
}

func TestStore_DoneScenario(t *testing.T) {
	s, _ := newTestStore(t)
	first, _ := s.Insert(Task{Title: "first"})
	second, _ := s.Insert(Task{Title: "second", Done: true})

	assert.Equal(t, []Task{second}, s.FilterBy(FilterDone.Predicate()))
	assert.Equal(t, []Task{first}, s.FilterBy(FilterPending.Predicate()))
	assert.Equal(t, []Task{first, second}, s.List(FilterAll.Predicate()))
}

func TestStore_ReplaceRemoveSetDone(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.Insert(Task{Title: "a"})
	_, _ = s.Insert(Task{Title: "b"})

	require.NoError(t, s.Replace(1, Task{ID: 77, Title: "B", Priority: High}))
	got, _, ok := s.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "B", got.Title)
	assert.Equal(t, High, got.Priority)
	assert.ErrorIs(t, s.Replace(5, Task{}), ErrOutOfRange)

	assert.True(t, s.SetDone(0, true))
	assert.False(t, s.SetDone(9, true))
	assert.Len(t, s.FilterBy(AcceptDone), 1)

	assert.True(t, s.Remove(0))
	assert.False(t, s.Remove(0))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "2", s.PeekNextID(), "ids are never reused")
}

func TestStore_FlushAndReload(t *testing.T) {
	s, mem := newTestStore(t)
	_, _ = s.Insert(Task{Title: "a", Date: "2025-01-02", Priority: Medium, Description: "desc"})
	_, _ = s.Insert(Task{Title: "b", Done: true})

	raw, ok, _ := mem.Get(TasksKey)
	assert.False(t, ok, "tasks are not written before flush")
	assert.Empty(t, raw)

	require.NoError(t, s.Flush())
	raw, ok, _ = mem.Get(TasksKey)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":0,"title":"a","date":"2025-01-02","priority":1,"description":"desc","done":false},
		{"id":1,"title":"b","date":"","priority":0,"description":"","done":true}
	]`, raw)
	seq, _, _ := mem.Get(SequenceKey)
	assert.Equal(t, "2", seq)

	reloaded := Open(keyed.New(mem, nil))
	assert.Equal(t, s.List(), reloaded.List())
	assert.Equal(t, "2", reloaded.PeekNextID())
}

func TestStore_FlushEmpty(t *testing.T) {
	s, mem := newTestStore(t)
	require.NoError(t, s.Close())
	raw, _, _ := mem.Get(TasksKey)
	assert.Equal(t, "[]", raw)
}

func TestOpen_DropsInvalidRecords(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(TasksKey, `[
		{"id":0,"title":"ok","priority":"2"},
		{"title":"no id"},
		{"id":1,"title":"bad priority","priority":7},
		"not an object",
		{"id":0,"title":"duplicate"},
		{"id":2,"title":"fine","done":true}
	]`))
	require.NoError(t, mem.Set(SequenceKey, "3"))

	s := Open(keyed.New(mem, nil))
	tasks := s.List()
	require.Len(t, tasks, 2)
	assert.Equal(t, "ok", tasks[0].Title)
	assert.Equal(t, High, tasks[0].Priority)
	assert.Equal(t, "fine", tasks[1].Title)
	assert.Equal(t, "3", s.PeekNextID())
}

func TestOpen_RaisesSequencePastStoredIDs(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(TasksKey, `[{"id":4,"title":"a"},{"id":9,"title":"b"}]`))

	s := Open(keyed.New(mem, nil))
	assert.Equal(t, "10", s.PeekNextID())

	added, err := s.Insert(Task{Title: "c"})
	require.NoError(t, err)
	assert.Equal(t, 10, added.ID)
}

func TestOpen_MalformedList(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(TasksKey, `{"id":1}`))
	s := Open(keyed.New(mem, nil))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "0", s.PeekNextID())
}
