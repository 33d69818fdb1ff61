// Package cmap provides a concurrent-safe sharded map for roar-go.
//
// Keys are strings, spread over a power-of-two number of shards by their
// murmur3 hash. Every shard has its own RWMutex:
//
//   - Get, Has and Range take the shard read lock.
//   - Set, Delete and Compute take the shard write lock for their whole
//     duration, so a Compute callback observes and replaces a value atomically.
//
// Usage:
//
//	m := cmap.New[string]()
//	m.Set("key", "value")
//	n, err := m.Compute("counter", func(v string, ok bool) (string, error) { ... })
//
// A map built with NewWithShards(1) is guarded by a single lock.
package cmap
