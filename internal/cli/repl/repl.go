package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/roar-go/internal/cli/output"
	"github.com/yndnr/roar-go/pkg/resp"
)

// ExecFunc sends one command and returns its reply.
type ExecFunc func(ctx context.Context, args ...string) (resp.Value, error)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	exec      ExecFunc
	formatter output.Formatter
	completer *Completer
	history   *History
}

// New creates a REPL reading from in and writing to out.
func New(in io.Reader, out io.Writer, prompt string, exec ExecFunc, f output.Formatter, h *History) *REPL {
	if h == nil {
		h = NewHistory("")
	}
	return &REPL{
		input:     in,
		output:    out,
		prompt:    prompt,
		exec:      exec,
		formatter: f,
		completer: NewCompleter(),
		history:   h,
	}
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		args, perr := SplitArgs(line)
		if perr != nil {
			fmt.Fprintf(r.output, "Error: %v\n", perr)
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit":
			return nil
		case "help":
			r.help(args[1:])
			continue
		}

		if err := r.execute(ctx, args); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(ctx context.Context, args []string) error {
	reply, err := r.exec(ctx, args...)
	if err != nil {
		return err
	}
	return r.formatter.Format(r.output, reply)
}

func (r *REPL) help(args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	names := r.completer.Complete(prefix)
	if len(names) == 0 {
		fmt.Fprintf(r.output, "no command matches %q\n", prefix)
		return
	}
	fmt.Fprintln(r.output, strings.Join(names, " "))
}

// SplitArgs splits a line into arguments on whitespace. Double quotes group
// words and accept \" \\ \n \r \t escapes; single quotes are literal.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, ch := range line {
		switch {
		case escaped:
			switch ch {
			case 'n':
				cur.WriteRune('\n')
			case 'r':
				cur.WriteRune('\r')
			case 't':
				cur.WriteRune('\t')
			default:
				cur.WriteRune(ch)
			}
			escaped = false
		case quote == '"' && ch == '\\':
			escaped = true
		case quote != 0 && ch == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(ch)
		case ch == '"' || ch == '\'':
			quote = ch
			inArg = true
		case ch == ' ' || ch == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(ch)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, errors.New("unbalanced quotes")
	}
	if inArg {
		args = append(args, cur.String())
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}
