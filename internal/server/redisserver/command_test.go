package redisserver

import (
	"fmt"
	"sync"
	"testing"

	"github.com/yndnr/roar-go/internal/storage/memory"
	"github.com/yndnr/roar-go/pkg/resp"
)

func bulks(args ...string) []resp.Value {
	out := make([]resp.Value, len(args))
	for i, a := range args {
		out[i] = resp.BulkString(a)
	}
	return out
}

func TestDispatcher_Execute(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *memory.Store)
		cmd   string
		args  []resp.Value
		want  resp.Value
	}{
		{name: "ping", cmd: "PING", want: resp.SimpleString("PONG")},
		{name: "ping lowercase", cmd: "ping", want: resp.SimpleString("PONG")},
		{name: "ping with message", cmd: "PING", args: bulks("hello"), want: resp.BulkString("hello")},
		{name: "ping too many args", cmd: "PING", args: bulks("a", "b"),
			want: resp.Error("ERR wrong number of arguments for 'ping' command")},
		{name: "echo", cmd: "ECHO", args: bulks("hey"), want: resp.BulkString("hey")},
		{name: "echo no args", cmd: "Echo",
			want: resp.Error("ERR wrong number of arguments for 'echo' command")},
		{name: "set", cmd: "SET", args: bulks("k", "v"), want: resp.SimpleString("OK")},
		{name: "set missing value", cmd: "SET", args: bulks("k"),
			want: resp.Error("ERR wrong number of arguments for 'set' command")},
		{name: "get existing", setup: func(s *memory.Store) { s.Set("k", "v") },
			cmd: "GET", args: bulks("k"), want: resp.BulkString("v")},
		{name: "get missing", cmd: "GET", args: bulks("nope"), want: resp.Null()},
		{name: "get list key", setup: func(s *memory.Store) { s.RPush("l", "a") },
			cmd: "GET", args: bulks("l"), want: resp.Null()},
		{name: "exists scalar", setup: func(s *memory.Store) { s.Set("k", "v") },
			cmd: "EXISTS", args: bulks("k"), want: resp.Integer(1)},
		{name: "exists list", setup: func(s *memory.Store) { s.RPush("l", "a") },
			cmd: "EXISTS", args: bulks("l"), want: resp.Integer(1)},
		{name: "exists missing", cmd: "EXISTS", args: bulks("k"), want: resp.Integer(0)},
		{name: "del counts both maps",
			setup: func(s *memory.Store) { s.Set("a", "1"); s.RPush("b", "x") },
			cmd:   "DEL", args: bulks("a", "b", "c"), want: resp.Integer(2)},
		{name: "del no args", cmd: "DEL",
			want: resp.Error("ERR wrong number of arguments for 'del' command")},
		{name: "incr absent", cmd: "INCR", args: bulks("n"), want: resp.Integer(1)},
		{name: "incr existing", setup: func(s *memory.Store) { s.Set("n", "41") },
			cmd: "INCR", args: bulks("n"), want: resp.Integer(42)},
		{name: "incr non integer", setup: func(s *memory.Store) { s.Set("n", "abc") },
			cmd: "INCR", args: bulks("n"), want: resp.Error("value is not an integer or out of range")},
		{name: "decr absent", cmd: "DECR", args: bulks("n"), want: resp.Integer(-1)},
		{name: "decr non integer", setup: func(s *memory.Store) { s.Set("n", "1.5") },
			cmd: "DECR", args: bulks("n"), want: resp.Error("value is not an integer or out of range")},
		{name: "rpush new", cmd: "RPUSH", args: bulks("l", "a", "b"), want: resp.Integer(2)},
		{name: "rpush existing", setup: func(s *memory.Store) { s.RPush("l", "a") },
			cmd: "RPUSH", args: bulks("l", "b"), want: resp.Integer(2)},
		{name: "rpush onto scalar", setup: func(s *memory.Store) { s.Set("k", "v") },
			cmd: "RPUSH", args: bulks("k", "a"), want: resp.Error("value is not an array")},
		{name: "rpush no values", cmd: "RPUSH", args: bulks("l"),
			want: resp.Error("ERR wrong number of arguments for 'rpush' command")},
		{name: "lpush new", cmd: "LPUSH", args: bulks("l", "x", "y"), want: resp.Integer(2)},
		{name: "lpush onto scalar", setup: func(s *memory.Store) { s.Set("k", "v") },
			cmd: "LPUSH", args: bulks("k", "a"), want: resp.Error("value is not an array")},
		{name: "llen", setup: func(s *memory.Store) { s.RPush("l", "a", "b", "c") },
			cmd: "LLEN", args: bulks("l"), want: resp.Integer(3)},
		{name: "llen missing", cmd: "LLEN", args: bulks("l"), want: resp.Integer(0)},
		{name: "lrange all", setup: func(s *memory.Store) { s.RPush("l", "a", "b", "c") },
			cmd: "LRANGE", args: bulks("l", "0", "-1"),
			want: resp.Array(resp.BulkString("a"), resp.BulkString("b"), resp.BulkString("c"))},
		{name: "lrange missing", cmd: "LRANGE", args: bulks("l", "0", "-1"), want: resp.Array()},
		{name: "lrange bad index", cmd: "LRANGE", args: bulks("l", "x", "1"),
			want: resp.Error("value is not an integer or out of range")},
		{name: "dbsize",
			setup: func(s *memory.Store) { s.Set("a", "1"); s.Set("b", "2"); s.RPush("c", "x") },
			cmd:   "DBSIZE", want: resp.Integer(3)},
		{name: "flushdb", setup: func(s *memory.Store) { s.Set("a", "1") },
			cmd: "FLUSHDB", want: resp.SimpleString("OK")},
		{name: "unknown command", cmd: "HGETALL", args: bulks("h"), want: resp.Error("ERR unknown command")},
		{name: "integer argument", cmd: "ECHO", args: []resp.Value{resp.Integer(7)}, want: resp.BulkString("7")},
		{name: "null argument", cmd: "ECHO", args: []resp.Value{resp.Null()}, want: resp.Error("ERR invalid argument")},
		{name: "array argument", cmd: "SET", args: []resp.Value{resp.BulkString("k"), resp.Array()},
			want: resp.Error("ERR invalid argument")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			if tt.setup != nil {
				tt.setup(store)
			}
			got := NewDispatcher(store).Execute(tt.cmd, tt.args)
			if !got.Equal(tt.want) {
				t.Errorf("Execute(%s) = %v, want %v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestDispatcher_SetThenGet(t *testing.T) {
	d := NewDispatcher(memory.New())

	d.Execute("SET", bulks("k", "v1"))
	d.Execute("SET", bulks("k", "v2"))

	if got := d.Execute("GET", bulks("k")); !got.Equal(resp.BulkString("v2")) {
		t.Errorf("GET = %v, want v2", got)
	}
}

func TestDispatcher_LPushOrder(t *testing.T) {
	store := memory.New()
	d := NewDispatcher(store)

	d.Execute("LPUSH", bulks("l", "x", "y"))

	got := d.Execute("LRANGE", bulks("l", "0", "-1"))
	want := resp.Array(resp.BulkString("y"), resp.BulkString("x"))
	if !got.Equal(want) {
		t.Errorf("LRANGE = %v, want %v", got, want)
	}
}

func TestDispatcher_RPushOntoScalarLeavesListsAlone(t *testing.T) {
	store := memory.New()
	store.Set("k", "v")
	d := NewDispatcher(store)

	d.Execute("RPUSH", bulks("k", "a"))

	if store.ListExists("k") {
		t.Error("rejected RPUSH created a list")
	}
	if v, _ := store.Get("k"); v != "v" {
		t.Errorf("scalar changed to %q", v)
	}
}

func TestDispatcher_FlushDB(t *testing.T) {
	store := memory.New()
	store.Set("a", "1")
	store.RPush("b", "x")
	d := NewDispatcher(store)

	d.Execute("FLUSHDB", nil)

	if got := d.Execute("DBSIZE", nil); !got.Equal(resp.Integer(0)) {
		t.Errorf("DBSIZE after FLUSHDB = %v, want 0", got)
	}
}

func TestDispatcher_ConcurrentIncr(t *testing.T) {
	d := NewDispatcher(memory.New())

	const workers, perWorker = 8, 250
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				d.Execute("INCR", bulks("counter"))
			}
		}()
	}
	wg.Wait()

	want := resp.BulkString(fmt.Sprint(workers * perWorker))
	if got := d.Execute("GET", bulks("counter")); !got.Equal(want) {
		t.Errorf("counter = %v, want %v", got, want)
	}
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"ping", "PING", "Set", "lrange", "FLUSHDB"} {
		if !Known(name) {
			t.Errorf("Known(%q) = false", name)
		}
	}
	if Known("AUTH") {
		t.Error("Known(AUTH) = true")
	}
}
