package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// traceAttr is a flattened slog attribute ready to be written to a trace line.
type traceAttr struct {
	Key   string
	Value string
}

// toTraceAttr converts a non-group slog.Attr to its string form.
func toTraceAttr(attr slog.Attr) traceAttr {
	out := traceAttr{Key: attr.Key}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		out.Value = attr.Value.String()
	case slog.KindInt64:
		out.Value = strconv.FormatInt(attr.Value.Int64(), 10)
	case slog.KindUint64:
		out.Value = strconv.FormatUint(attr.Value.Uint64(), 10)
	case slog.KindBool:
		out.Value = strconv.FormatBool(attr.Value.Bool())
	case slog.KindFloat64:
		out.Value = strconv.FormatFloat(attr.Value.Float64(), 'f', -1, 64)
	case slog.KindTime:
		out.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		out.Value = attr.Value.Duration().String()
	default:
		v := attr.Value.Any()
		switch {
		case v == nil:
			out.Value = "<nil>"
		case isError(v):
			out.Value = v.(error).Error()
		case isStringer(v):
			out.Value = v.(fmt.Stringer).String()
		default:
			if data, err := json.Marshal(v); err == nil {
				out.Value = string(data)
			} else {
				out.Value = fmt.Sprintf("%v", v)
			}
		}
	}
	return out
}

// flattenAttr expands group attributes into dotted keys.
func flattenAttr(prefix string, attr slog.Attr) []traceAttr {
	key := attr.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if prefix != "" {
		key = prefix
	}

	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() != slog.KindGroup {
		attr.Key = key
		return []traceAttr{toTraceAttr(attr)}
	}

	var out []traceAttr
	for _, child := range attr.Value.Group() {
		out = append(out, flattenAttr(key, child)...)
	}
	return out
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func isError(v any) bool {
	_, ok := v.(error)
	return ok
}

func isStringer(v any) bool {
	_, ok := v.(fmt.Stringer)
	return ok
}
