// Package memory provides the in-memory key space of roar-go.
//
// A Store holds two independent maps sharing one consistency domain:
//
//   - the scalar map, key → string, used by GET/SET/INCR/DECR;
//   - the list map, key → ordered []string, used by RPUSH/LPUSH/LRANGE.
//
// Both maps are pkg/cmap sharded maps. Every operation holds the write (or
// read) lock of the shard owning its key for its whole duration, so
// read-modify-write operations such as Incr and RPush are atomic per key. No
// operation holds locks of both maps at once and the Store performs no
// cross-map type checks; callers that need "a scalar key is not a list"
// must check before mutating.
package memory
