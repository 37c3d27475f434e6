// Package keyed reads and writes typed values stored as JSON text under string keys.
package keyed

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Backend is a raw string key/value store.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type Storage struct {
	backend Backend
	logger  *log.Logger
}

func New(backend Backend, logger *log.Logger) *Storage {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Storage{backend: backend, logger: logger}
}

// Raw returns the stored text for key. Read failures count as absent.
func (s *Storage) Raw(key string) (string, bool) {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Debug("storage read failed", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

// Int returns the number stored under key, or 0 when it is absent or not numeric.
func (s *Storage) Int(key string) int {
	v, ok := s.Raw(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		s.logger.Debug("stored value is not a number", "key", key)
		return 0
	}
	return int(f)
}

// List decodes the JSON array stored under key. Anything else yields an empty slice.
func List[T any](s *Storage, key string) []T {
	out := []T{}
	v, ok := s.Raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return out
	}
	var items []T
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		s.logger.Debug("stored value is not a list", "key", key, "err", err)
		return out
	}
	if items == nil {
		return out
	}
	return items
}

// Set JSON-encodes value and overwrites whatever is stored under key.
func (s *Storage) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.backend.Set(key, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}
