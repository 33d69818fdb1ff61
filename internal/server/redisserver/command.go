package redisserver

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yndnr/roar-go/internal/storage/memory"
	"github.com/yndnr/roar-go/pkg/resp"
)

// Reply texts shared by several commands.
const (
	errUnknownCommand  = "ERR unknown command"
	errInvalidArgument = "ERR invalid argument"
	errNotInteger      = "value is not an integer or out of range"
	errNotArray        = "value is not an array"
)

// variadic marks a command without an upper argument bound.
const variadic = -1

type handlerFunc func(d *Dispatcher, args []string) resp.Value

// commandSpec describes one command: its argument bounds (excluding the
// command name) and its handler.
type commandSpec struct {
	minArgs int
	maxArgs int
	handler handlerFunc
}

var commands = map[string]commandSpec{
	"PING":    {0, 1, (*Dispatcher).ping},
	"ECHO":    {1, 1, (*Dispatcher).echo},
	"SET":     {2, 2, (*Dispatcher).set},
	"GET":     {1, 1, (*Dispatcher).get},
	"EXISTS":  {1, 1, (*Dispatcher).exists},
	"DEL":     {1, variadic, (*Dispatcher).del},
	"INCR":    {1, 1, (*Dispatcher).incr},
	"DECR":    {1, 1, (*Dispatcher).decr},
	"RPUSH":   {2, variadic, (*Dispatcher).rpush},
	"LPUSH":   {2, variadic, (*Dispatcher).lpush},
	"LLEN":    {1, 1, (*Dispatcher).llen},
	"LRANGE":  {3, 3, (*Dispatcher).lrange},
	"DBSIZE":  {0, 0, (*Dispatcher).dbsize},
	"FLUSHDB": {0, 0, (*Dispatcher).flushdb},
}

// Dispatcher executes commands against a store.
// It holds no state of its own and is safe for concurrent use.
type Dispatcher struct {
	store *memory.Store
}

// NewDispatcher creates a Dispatcher backed by store.
func NewDispatcher(store *memory.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Known reports whether name is a supported command (case-insensitive).
func Known(name string) bool {
	_, ok := commands[strings.ToUpper(name)]
	return ok
}

// Execute runs the named command with args and returns the reply.
//
// Every failure is reported as an Error value; Execute never panics on
// client input.
func (d *Dispatcher) Execute(name string, args []resp.Value) resp.Value {
	cmd := strings.ToUpper(name)
	spec, ok := commands[cmd]
	if !ok {
		return resp.Error(errUnknownCommand)
	}

	if len(args) < spec.minArgs || (spec.maxArgs != variadic && len(args) > spec.maxArgs) {
		return wrongArgs(cmd)
	}

	texts := make([]string, len(args))
	for i, a := range args {
		s, ok := a.Text()
		if !ok {
			return resp.Error(errInvalidArgument)
		}
		texts[i] = s
	}

	return spec.handler(d, texts)
}

func wrongArgs(cmd string) resp.Value {
	return resp.Error("ERR wrong number of arguments for '" + strings.ToLower(cmd) + "' command")
}

func (d *Dispatcher) ping(args []string) resp.Value {
	if len(args) == 1 {
		return resp.BulkString(args[0])
	}
	return resp.SimpleString("PONG")
}

func (d *Dispatcher) echo(args []string) resp.Value {
	return resp.BulkString(args[0])
}

func (d *Dispatcher) set(args []string) resp.Value {
	d.store.Set(args[0], args[1])
	return resp.SimpleString("OK")
}

func (d *Dispatcher) get(args []string) resp.Value {
	v, ok := d.store.Get(args[0])
	if !ok {
		return resp.Null()
	}
	return resp.BulkString(v)
}

func (d *Dispatcher) exists(args []string) resp.Value {
	if d.store.Exists(args[0]) || d.store.ListExists(args[0]) {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func (d *Dispatcher) del(args []string) resp.Value {
	var n int64
	for _, key := range args {
		removed := d.store.Delete(key)
		// A key can transiently live in both maps; count it once.
		if d.store.DeleteList(key) {
			removed = true
		}
		if removed {
			n++
		}
	}
	return resp.Integer(n)
}

func (d *Dispatcher) incr(args []string) resp.Value {
	return integerReply(d.store.Incr(args[0]))
}

func (d *Dispatcher) decr(args []string) resp.Value {
	return integerReply(d.store.Decr(args[0]))
}

func integerReply(n int64, err error) resp.Value {
	if errors.Is(err, memory.ErrNotInteger) {
		return resp.Error(errNotInteger)
	}
	if err != nil {
		return resp.Error("ERR " + err.Error())
	}
	return resp.Integer(n)
}

// rpush and lpush check the scalar map before touching the list map. The
// two steps are not atomic: a concurrent SET of the same key in between can
// leave the key in both maps until one of them is deleted.
func (d *Dispatcher) rpush(args []string) resp.Value {
	if d.store.Exists(args[0]) {
		return resp.Error(errNotArray)
	}
	return resp.Integer(int64(d.store.RPush(args[0], args[1:]...)))
}

func (d *Dispatcher) lpush(args []string) resp.Value {
	if d.store.Exists(args[0]) {
		return resp.Error(errNotArray)
	}
	return resp.Integer(int64(d.store.LPush(args[0], args[1:]...)))
}

func (d *Dispatcher) llen(args []string) resp.Value {
	return resp.Integer(int64(d.store.LLen(args[0])))
}

func (d *Dispatcher) lrange(args []string) resp.Value {
	start, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return resp.Error(errNotInteger)
	}
	stop, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return resp.Error(errNotInteger)
	}

	items := d.store.LRange(args[0], start, stop)
	elems := make([]resp.Value, len(items))
	for i, s := range items {
		elems[i] = resp.BulkString(s)
	}
	return resp.Array(elems...)
}

func (d *Dispatcher) dbsize(_ []string) resp.Value {
	return resp.Integer(int64(d.store.ScalarCount() + d.store.ListCount()))
}

func (d *Dispatcher) flushdb(_ []string) resp.Value {
	d.store.Flush()
	return resp.SimpleString("OK")
}
