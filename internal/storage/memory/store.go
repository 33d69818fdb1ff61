package memory

import (
	"errors"
	"math"
	"strconv"

	"github.com/yndnr/roar-go/pkg/cmap"
)

// ErrNotInteger is returned by the counter operations when the current value
// is not a base-10 signed 64-bit integer, or the result would overflow.
var ErrNotInteger = errors.New("value is not an integer or out of range")

// Store is the process-wide key space. It is safe for concurrent use and is
// shared by pointer, never copied.
type Store struct {
	scalars *cmap.Map[string]
	lists   *cmap.Map[[]string]
}

// Option configures the Store.
type Option func(*storeOptions)

type storeOptions struct {
	shards int
}

// WithShards sets the shard count of both maps. It must be a power of two;
// other values fall back to cmap.DefaultShardCount.
func WithShards(n int) Option {
	return func(o *storeOptions) {
		o.shards = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := storeOptions{shards: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		scalars: cmap.NewWithShards[string](o.shards),
		lists:   cmap.NewWithShards[[]string](o.shards),
	}
}

// Get returns the scalar value of key.
func (s *Store) Get(key string) (string, bool) {
	return s.scalars.Get(key)
}

// Set stores a scalar value.
func (s *Store) Set(key, value string) {
	s.scalars.Set(key, value)
}

// Exists reports whether key is present in the scalar map.
func (s *Store) Exists(key string) bool {
	return s.scalars.Has(key)
}

// Delete removes key from the scalar map and reports whether it was present.
func (s *Store) Delete(key string) bool {
	return s.scalars.Delete(key)
}

// Incr adds one to the integer stored at key.
func (s *Store) Incr(key string) (int64, error) {
	return s.IncrBy(key, 1)
}

// Decr subtracts one from the integer stored at key.
func (s *Store) Decr(key string) (int64, error) {
	return s.IncrBy(key, -1)
}

// IncrBy adds delta to the integer stored at key and returns the new value.
// An absent key counts as "0". On ErrNotInteger the stored value is unchanged.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	var result int64
	_, err := s.scalars.Compute(key, func(cur string, exists bool) (string, error) {
		if !exists {
			cur = "0"
		}
		n, err := strconv.ParseInt(cur, 10, 64)
		if err != nil {
			return "", ErrNotInteger
		}
		if (delta > 0 && n > math.MaxInt64-delta) || (delta < 0 && n < math.MinInt64-delta) {
			return "", ErrNotInteger
		}
		result = n + delta
		return strconv.FormatInt(result, 10), nil
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// RPush appends values to the list at key, in order, and returns the new
// length. The list is created if absent.
func (s *Store) RPush(key string, values ...string) int {
	list, _ := s.lists.Compute(key, func(cur []string, _ bool) ([]string, error) {
		next := make([]string, 0, len(cur)+len(values))
		next = append(next, cur...)
		return append(next, values...), nil
	})
	return len(list)
}

// LPush inserts each value at the head of the list at key, in argument
// order, so the last value ends up first. It returns the new length.
func (s *Store) LPush(key string, values ...string) int {
	list, _ := s.lists.Compute(key, func(cur []string, _ bool) ([]string, error) {
		next := make([]string, 0, len(cur)+len(values))
		for i := len(values) - 1; i >= 0; i-- {
			next = append(next, values[i])
		}
		return append(next, cur...), nil
	})
	return len(list)
}

// LLen returns the length of the list at key, 0 if absent.
func (s *Store) LLen(key string) int {
	list, _ := s.lists.Get(key)
	return len(list)
}

// LRange returns a copy of the elements between start and stop, inclusive.
// Negative indexes count from the end of the list, -1 being the last element.
func (s *Store) LRange(key string, start, stop int64) []string {
	list, ok := s.lists.Get(key)
	if !ok {
		return []string{}
	}

	n := int64(len(list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return []string{}
	}

	out := make([]string, stop-start+1)
	copy(out, list[start:stop+1])
	return out
}

// ListExists reports whether key is present in the list map.
func (s *Store) ListExists(key string) bool {
	return s.lists.Has(key)
}

// DeleteList removes key from the list map and reports whether it was present.
func (s *Store) DeleteList(key string) bool {
	return s.lists.Delete(key)
}

// ScalarCount returns the number of scalar keys.
func (s *Store) ScalarCount() int {
	return s.scalars.Count()
}

// ListCount returns the number of list keys.
func (s *Store) ListCount() int {
	return s.lists.Count()
}

// Flush removes every key from both maps.
func (s *Store) Flush() {
	s.scalars.Clear()
	s.lists.Clear()
}
