package output

import (
	"encoding/json"
	"io"

	"github.com/yndnr/roar-go/pkg/resp"
)

// JSONFormatter formats replies as JSON.
//
// Strings become JSON strings, integers numbers, Null is null, arrays are
// lists and an error reply is {"error": "<text>"}.
type JSONFormatter struct{}

// Format writes v as one line of JSON.
func (f *JSONFormatter) Format(w io.Writer, v resp.Value) error {
	return json.NewEncoder(w).Encode(toJSON(v))
}

func toJSON(v resp.Value) any {
	switch v.Kind {
	case resp.KindSimpleString, resp.KindBulkString:
		return v.Str
	case resp.KindInteger:
		return v.Int
	case resp.KindError:
		return map[string]string{"error": v.Str}
	case resp.KindArray:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = toJSON(e)
		}
		return out
	default:
		return nil
	}
}
