package keyed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/storage"
)

type failingBackend struct{}

func (failingBackend) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingBackend) Set(string, string) error         { return errors.New("disk on fire") }

func TestInt(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   int
	}{
		{name: "absent", stored: nil, want: 0},
		{name: "empty", stored: ptr(""), want: 0},
		{name: "integer", stored: ptr("42"), want: 42},
		{name: "padded", stored: ptr(" 7 "), want: 7},
		{name: "json float", stored: ptr("3.0"), want: 3},
		{name: "garbage", stored: ptr("abc"), want: 0},
		{name: "json string", stored: ptr(`"5"`), want: 0},
		{name: "nan", stored: ptr("NaN"), want: 0},
		{name: "inf", stored: ptr("+Inf"), want: 0},
		{name: "too large", stored: ptr("1e300"), want: 0},
		{name: "too small", stored: ptr("-1e300"), want: 0},
		{name: "negative float", stored: ptr("-2.5"), want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemory()
			if tt.stored != nil {
				require.NoError(t, mem.Set("k", *tt.stored))
			}
			assert.Equal(t, tt.want, New(mem, nil).Int("k"))
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   []int
	}{
		{name: "absent", stored: nil, want: []int{}},
		{name: "null", stored: ptr("null"), want: []int{}},
		{name: "object", stored: ptr(`{"a":1}`), want: []int{}},
		{name: "number", stored: ptr("12"), want: []int{}},
		{name: "broken json", stored: ptr("[1,"), want: []int{}},
		{name: "wrong element type", stored: ptr(`["x"]`), want: []int{}},
		{name: "list", stored: ptr("[3,1,2]"), want: []int{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemory()
			if tt.stored != nil {
				require.NoError(t, mem.Set("k", *tt.stored))
			}
			got := List[int](New(mem, nil), "k")
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_OverwritesAsJSON(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem, nil)

	require.NoError(t, s.Set("current-id", 3))
	require.NoError(t, s.Set("current-id", 4))
	raw, ok := s.Raw("current-id")
	assert.True(t, ok)
	assert.Equal(t, "4", raw)
	assert.Equal(t, 4, s.Int("current-id"))

	require.NoError(t, s.Set("names", []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, List[string](s, "names"))
}

func TestBackendFailures(t *testing.T) {
	s := New(failingBackend{}, nil)
	assert.Equal(t, 0, s.Int("k"))
	assert.Empty(t, List[string](s, "k"))
	assert.Error(t, s.Set("k", 1))
}

func TestSet_UnencodableValue(t *testing.T) {
	s := New(storage.NewMemory(), nil)
	err := s.Set("k", make(chan int))
	assert.Error(t, err)
}

func ptr(s string) *string { return &s }
