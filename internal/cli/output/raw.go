package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/yndnr/roar-go/pkg/resp"
)

// RawFormatter prints replies the way redis-cli does:
//
//	OK
//	(integer) 3
//	"value"
//	(nil)
//	(error) ERR unknown command
//	1) "a"
//	2) "b"
type RawFormatter struct {
	errColor *color.Color
	intColor *color.Color
	nilColor *color.Color
	strColor *color.Color
}

// NewRawFormatter returns a raw formatter. Colors are emitted only when
// colorize is true, regardless of the terminal.
func NewRawFormatter(colorize bool) *RawFormatter {
	f := &RawFormatter{
		errColor: color.New(color.FgRed),
		intColor: color.New(color.FgCyan),
		nilColor: color.New(color.Faint),
		strColor: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{f.errColor, f.intColor, f.nilColor, f.strColor} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Format writes v followed by a newline.
func (f *RawFormatter) Format(w io.Writer, v resp.Value) error {
	_, err := io.WriteString(w, f.Render(v)+"\n")
	return err
}

// Render returns the text of v without a trailing newline.
func (f *RawFormatter) Render(v resp.Value) string {
	var b strings.Builder
	f.render(&b, v, 0)
	return b.String()
}

func (f *RawFormatter) render(b *strings.Builder, v resp.Value, indent int) {
	switch v.Kind {
	case resp.KindSimpleString:
		b.WriteString(v.Str)
	case resp.KindError:
		b.WriteString(f.errColor.Sprint("(error) " + v.Str))
	case resp.KindInteger:
		b.WriteString(f.intColor.Sprintf("(integer) %d", v.Int))
	case resp.KindBulkString:
		b.WriteString(f.strColor.Sprint(strconv.Quote(v.Str)))
	case resp.KindNull:
		b.WriteString(f.nilColor.Sprint("(nil)"))
	case resp.KindArray:
		f.renderArray(b, v.Elems, indent)
	default:
		fmt.Fprintf(b, "(unknown %v)", v.Kind)
	}
}

// renderArray numbers elements from 1 and aligns nested arrays under the
// parent's element text.
func (f *RawFormatter) renderArray(b *strings.Builder, elems []resp.Value, indent int) {
	if len(elems) == 0 {
		b.WriteString("(empty array)")
		return
	}

	width := len(strconv.Itoa(len(elems)))
	for i, e := range elems {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", indent))
		}
		prefix := fmt.Sprintf("%*d) ", width, i+1)
		b.WriteString(prefix)
		f.render(b, e, indent+len(prefix))
	}
}
