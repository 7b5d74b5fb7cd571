package decode

import (
	"strconv"
	"strings"
)

// Decoded values. Primitives decode to bool, string and float64.
type (
	// ArrayValue is a decoded Elm Array.
	ArrayValue []any

	// ListValue is a decoded Elm List.
	ListValue []any

	// TupleValue is a decoded 2- or 3-tuple.
	TupleValue []any

	// Maybe is a decoded Elm Maybe. The zero value is Nothing.
	Maybe struct {
		Just  bool
		Value any
	}

	// FieldValue is one decoded record field.
	FieldValue struct {
		Name  string
		Value any
	}
)

// RecordValue is a decoded record, fields in declared order.
type RecordValue struct {
	Name   string
	Fields []FieldValue
}

// Get returns the value of the named field.
func (r *RecordValue) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Format renders a decoded value in Elm syntax, as Debug.toString would.
func Format(v any) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("()")
	case bool:
		if t {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case string:
		b.WriteString(strconv.Quote(t))
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case ArrayValue:
		b.WriteString("Array.fromList ")
		formatSeq(b, "[", "]", t)
	case ListValue:
		formatSeq(b, "[", "]", t)
	case TupleValue:
		formatSeq(b, "(", ")", t)
	case Maybe:
		if !t.Just {
			b.WriteString("Nothing")
			return
		}
		b.WriteString("Just ")
		formatArg(b, t.Value)
	case *RecordValue:
		if len(t.Fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(" = ")
			format(b, f.Value)
		}
		b.WriteString(" }")
	default:
		b.WriteString("<internals>")
	}
}

func formatSeq(b *strings.Builder, open, end string, items []any) {
	b.WriteString(open)
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		format(b, item)
	}
	b.WriteString(end)
}

// formatArg renders a constructor argument, parenthesised when needed.
func formatArg(b *strings.Builder, v any) {
	switch t := v.(type) {
	case ArrayValue:
		b.WriteByte('(')
		format(b, t)
		b.WriteByte(')')
	case Maybe:
		if t.Just {
			b.WriteByte('(')
			format(b, t)
			b.WriteByte(')')
			return
		}
		format(b, t)
	case float64:
		if t < 0 {
			b.WriteByte('(')
			format(b, t)
			b.WriteByte(')')
			return
		}
		format(b, t)
	default:
		format(b, v)
	}
}
