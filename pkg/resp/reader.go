package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// Protocol limits to keep a single frame from exhausting memory.
const (
	// MaxArrayLen limits the number of elements in one array.
	MaxArrayLen = 64 * 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxLineLen limits the length of a simple string, error or header line.
	MaxLineLen = 64 * 1024

	// MaxDepth limits array nesting.
	MaxDepth = 32
)

var (
	// ErrFraming reports malformed or truncated protocol bytes.
	ErrFraming = errors.New("resp: framing error")

	// ErrLimitExceeded reports a frame over one of the protocol limits.
	// It wraps ErrFraming.
	ErrLimitExceeded = fmt.Errorf("%w: limit exceeded", ErrFraming)
)

// Decode decodes every complete value in b, in order.
//
// Empty input yields no values. A truncated trailing value fails with
// ErrFraming and nothing decoded from b is returned.
func Decode(b []byte) ([]Value, error) {
	r := NewReader(bytes.NewReader(b))

	var out []Value
	for {
		v, err := r.ReadValue()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// Reader decodes values from a byte stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader returns a Reader on r, reusing r if it already is a *bufio.Reader.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{br: br}
	}
	return &Reader{br: bufio.NewReader(r)}
}

// ReadValue reads the next complete value.
//
// It returns io.EOF when the stream ends before a value starts. The stream
// ending inside a value is a framing error.
func (r *Reader) ReadValue() (Value, error) {
	if _, err := r.br.Peek(1); err != nil {
		return Value{}, err
	}
	return r.readValue(0)
}

func (r *Reader) readValue(depth int) (Value, error) {
	line, err := r.readLine()
	if err != nil {
		return Value{}, err
	}
	if len(line) == 0 {
		return Value{}, fmt.Errorf("%w: empty chunk", ErrFraming)
	}

	payload := line[1:]
	switch line[0] {
	case '+':
		return SimpleString(payload), nil
	case '-':
		return Error(payload), nil
	case ':':
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: invalid integer %q", ErrFraming, payload)
		}
		return Integer(n), nil
	case '$':
		return r.readBulk(payload)
	case '*':
		return r.readArray(payload, depth)
	default:
		return Value{}, fmt.Errorf("%w: unknown type marker %q", ErrFraming, line[0])
	}
}

func (r *Reader) readBulk(header string) (Value, error) {
	n, err := strconv.Atoi(header)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid bulk length %q", ErrFraming, header)
	}
	if n == -1 {
		return Null(), nil
	}
	if n < 0 {
		return Value{}, fmt.Errorf("%w: invalid bulk length %d", ErrFraming, n)
	}
	if n > MaxBulkLen {
		return Value{}, fmt.Errorf("%w: bulk length %d exceeds %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Value{}, fmt.Errorf("%w: truncated bulk string, want %d bytes", ErrFraming, n)
		}
		return Value{}, err
	}
	if buf[n] != '\r' || buf[n+1] != '\n' {
		return Value{}, fmt.Errorf("%w: invalid bulk terminator", ErrFraming)
	}
	if !utf8.Valid(buf[:n]) {
		return Value{}, fmt.Errorf("%w: bulk string is not valid UTF-8", ErrFraming)
	}
	return BulkString(string(buf[:n])), nil
}

func (r *Reader) readArray(header string, depth int) (Value, error) {
	n, err := strconv.Atoi(header)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid array length %q", ErrFraming, header)
	}
	if n == -1 {
		return Null(), nil
	}
	if n < 0 {
		return Value{}, fmt.Errorf("%w: invalid array length %d", ErrFraming, n)
	}
	if n > MaxArrayLen {
		return Value{}, fmt.Errorf("%w: array length %d exceeds %d", ErrLimitExceeded, n, MaxArrayLen)
	}
	if depth >= MaxDepth {
		return Value{}, fmt.Errorf("%w: nesting deeper than %d", ErrLimitExceeded, MaxDepth)
	}

	elems := make([]Value, 0, min(n, 64))
	for i := 0; i < n; i++ {
		v, err := r.readValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Array(elems...), nil
}

// readLine reads one chunk and strips its CRLF.
func (r *Reader) readLine() (string, error) {
	var buf []byte
	for {
		frag, err := r.br.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > MaxLineLen {
				return "", fmt.Errorf("%w: line length exceeds %d", ErrLimitExceeded, MaxLineLen)
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: truncated chunk", ErrFraming)
		}
		return "", err
	}

	if len(buf) > MaxLineLen {
		return "", fmt.Errorf("%w: line length exceeds %d", ErrLimitExceeded, MaxLineLen)
	}
	if len(buf) < 2 || buf[len(buf)-2] != '\r' {
		return "", fmt.Errorf("%w: missing CRLF", ErrFraming)
	}
	return string(buf[:len(buf)-2]), nil
}
