package repl

import (
	"sort"
	"strings"
)

// Commands lists the command names the server understands, plus the local
// interactive commands.
var Commands = []string{
	"PING", "ECHO", "SET", "GET", "EXISTS", "DEL", "INCR", "DECR",
	"RPUSH", "LPUSH", "LLEN", "LRANGE", "DBSIZE", "FLUSHDB",
	"help", "exit", "quit",
}

// Completer looks up command names by prefix, ignoring case.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over names (Commands when empty).
func NewCompleter(names ...string) *Completer {
	if len(names) == 0 {
		names = Commands
	}
	cmds := append([]string(nil), names...)
	sort.Strings(cmds)
	return &Completer{commands: cmds}
}

// Complete returns the command names starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToLower(cmd), prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
