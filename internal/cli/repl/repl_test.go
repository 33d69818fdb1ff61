package repl

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yndnr/roar-go/internal/cli/output"
	"github.com/yndnr/roar-go/pkg/resp"
)

type recorder struct {
	calls [][]string
	reply resp.Value
	err   error
}

func (r *recorder) exec(_ context.Context, args ...string) (resp.Value, error) {
	r.calls = append(r.calls, args)
	return r.reply, r.err
}

func newTestREPL(input string, rec *recorder) (*REPL, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := New(strings.NewReader(input), out, "roar> ", rec.exec, output.NewRawFormatter(false), NewHistory(""))
	return r, out
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "QUIT\n"},
		{"EOF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestREPL(tt.input, &recorder{})
			if err := r.Run(context.Background()); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
		})
	}
}

func TestREPL_Run_EmptyLines(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL("\n\n\nexit\n", rec)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if prompts := strings.Count(out.String(), "roar> "); prompts != 4 {
		t.Errorf("expected 4 prompts, got %d", prompts)
	}
	if len(rec.calls) != 0 {
		t.Errorf("empty lines sent commands: %v", rec.calls)
	}
}

func TestREPL_Run_Command(t *testing.T) {
	rec := &recorder{reply: resp.BulkString("bar")}
	r, out := newTestREPL("get foo\nset \"a b\" c\nexit\n", rec)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := [][]string{{"get", "foo"}, {"set", "a b", "c"}}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if !strings.Contains(out.String(), `"bar"`) {
		t.Errorf("output %q missing reply", out.String())
	}
	if r.history.Get(0) != "exit" || r.history.Get(1) != `set "a b" c` {
		t.Errorf("history = %q, %q", r.history.Get(0), r.history.Get(1))
	}
}

func TestREPL_Run_ExecError(t *testing.T) {
	rec := &recorder{err: errors.New("connection refused")}
	r, out := newTestREPL("ping\n", rec)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Error: connection refused") {
		t.Errorf("output %q missing error", out.String())
	}
}

func TestREPL_Run_Help(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL("help l\nhelp zz\n", rec)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(out.String(), "LLEN LPUSH LRANGE") {
		t.Errorf("help output = %q", out.String())
	}
	if !strings.Contains(out.String(), `no command matches "zz"`) {
		t.Errorf("help output = %q", out.String())
	}
	if len(rec.calls) != 0 {
		t.Error("help must not be sent to the server")
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{line: "ping", want: []string{"ping"}},
		{line: "  set  k   v ", want: []string{"set", "k", "v"}},
		{line: `set k "hello world"`, want: []string{"set", "k", "hello world"}},
		{line: `set k 'it''s'`, want: []string{"set", "k", "its"}},
		{line: `echo "a\"b\n"`, want: []string{"echo", "a\"b\n"}},
		{line: `echo 'a\n'`, want: []string{"echo", `a\n`}},
		{line: `echo ""`, want: []string{"echo", ""}},
		{line: `echo "open`, wantErr: true},
		{line: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SplitArgs(%q) = %q, want error", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitArgs(%q) error = %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
