package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/roar-go/pkg/resp"
)

// Format represents the output format.
type Format string

const (
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. Empty means raw.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatRaw:
		return FormatRaw, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want raw or json)", s)
	}
}

// Formatter writes a reply to w.
type Formatter interface {
	Format(w io.Writer, v resp.Value) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format, colorize bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return NewRawFormatter(colorize)
	}
}
