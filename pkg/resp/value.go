package resp

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindNull is the zero Kind, so the zero Value is Null.
	KindNull Kind = iota
	KindSimpleString
	KindError
	KindInteger
	KindBulkString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindSimpleString:
		return "simple-string"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulk-string"
	case KindArray:
		return "array"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single RESP protocol value.
//
// Str carries the text of simple strings, errors and bulk strings, Int the
// payload of integers and Elems the elements of arrays. Values are treated as
// immutable once built.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Elems []Value
}

// SimpleString returns a simple string value.
func SimpleString(s string) Value {
	return Value{Kind: KindSimpleString, Str: s}
}

// Error returns an error value.
func Error(msg string) Value {
	return Value{Kind: KindError, Str: msg}
}

// Integer returns an integer value.
func Integer(n int64) Value {
	return Value{Kind: KindInteger, Int: n}
}

// BulkString returns a bulk string value.
func BulkString(s string) Value {
	return Value{Kind: KindBulkString, Str: s}
}

// Array returns an array value holding elems in order.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: KindArray, Elems: elems}
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Command builds a client request: an array of bulk strings.
func Command(args ...string) Value {
	elems := make([]Value, len(args))
	for i, a := range args {
		elems[i] = BulkString(a)
	}
	return Array(elems...)
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// IsError reports whether v is an error value.
func (v Value) IsError() bool {
	return v.Kind == KindError
}

// Text returns the textual payload of v.
//
// Simple strings and bulk strings return their text, integers their decimal
// form. Other kinds return false.
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindSimpleString, KindBulkString:
		return v.Str, true
	case KindInteger:
		return strconv.FormatInt(v.Int, 10), true
	default:
		return "", false
	}
}

// Equal reports whether v and o hold the same variant and payload.
// A nil and an empty element slice compare equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindInteger:
		return v.Int == o.Int
	case KindArray:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return v.Str == o.Str
	}
}

// String returns a debugging representation such as BulkString("v").
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "Null"
	case KindSimpleString:
		return "SimpleString(" + strconv.Quote(v.Str) + ")"
	case KindError:
		return "Error(" + strconv.Quote(v.Str) + ")"
	case KindInteger:
		return "Integer(" + strconv.FormatInt(v.Int, 10) + ")"
	case KindBulkString:
		return "BulkString(" + strconv.Quote(v.Str) + ")"
	case KindArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.String()
		}
		return "Array[" + strings.Join(parts, ", ") + "]"
	default:
		return v.Kind.String()
	}
}
