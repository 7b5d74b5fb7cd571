package decode

import (
	"fmt"
	"strings"
	"unicode"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error is a decoding failure. Error() formats it the way Elm's
// Json.Decode.errorToString does.
type Error struct {
	// Path locates the failing value, e.g. json.tags[1]. Empty at the root.
	Path string

	// Value is the JSON value that failed to decode.
	Value any

	// Message is the final line, e.g. "Expecting a STRING".
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Path == "" {
		b.WriteString("Problem with the given value:\n\n")
	} else {
		b.WriteString("Problem with the value at ")
		b.WriteString(e.Path)
		b.WriteString(":\n\n")
	}
	for i, line := range strings.Split(renderJSON(e.Value), "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("    ")
		b.WriteString(line)
	}
	b.WriteString("\n\n")
	b.WriteString(e.Message)
	return b.String()
}

func renderJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(out)
}

// path is the location of a value relative to the decoded root.
type path []string

func (p path) String() string {
	if len(p) == 0 {
		return ""
	}
	return "json" + strings.Join(p, "")
}

func (p path) key(k string) path {
	seg := "['" + k + "']"
	if isPlainKey(k) {
		seg = "." + k
	}
	return append(p[:len(p):len(p)], seg)
}

func (p path) index(i int) path {
	return append(p[:len(p):len(p)], fmt.Sprintf("[%d]", i))
}

func isPlainKey(k string) bool {
	if k == "" {
		return false
	}
	for i, r := range k {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func fail(p path, v any, format string, args ...any) *Error {
	return &Error{Path: p.String(), Value: v, Message: fmt.Sprintf(format, args...)}
}

// runDecoder treats a nil decoder as a placeholder so evaluation never panics.
func runDecoder(d Decoder, v any, p path) (any, *Error) {
	if d == nil {
		return nil, fail(p, v, "%s", PlaceholderValue)
	}
	return d.run(v, p)
}

func (Bool) run(v any, p path) (any, *Error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return nil, fail(p, v, "Expecting a BOOL")
}

func (String) run(v any, p path) (any, *Error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, fail(p, v, "Expecting a STRING")
}

func (Float) run(v any, p path) (any, *Error) {
	if f, ok := v.(float64); ok {
		return f, nil
	}
	return nil, fail(p, v, "Expecting a FLOAT")
}

func (d *Seq) run(v any, p path) (any, *Error) {
	items, ok := v.([]any)
	if !ok {
		if d.List {
			return nil, fail(p, v, "Expecting a LIST")
		}
		return nil, fail(p, v, "Expecting an ARRAY")
	}
	out := make([]any, len(items))
	for i, item := range items {
		val, err := runDecoder(d.Element, item, p.index(i))
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	if d.List {
		return ListValue(out), nil
	}
	return ArrayValue(out), nil
}

func (d *Nullable) run(v any, p path) (any, *Error) {
	if v == nil {
		return Maybe{}, nil
	}
	val, err := runDecoder(d.Element, v, p)
	if err != nil {
		return nil, err
	}
	return Maybe{Just: true, Value: val}, nil
}

func (d *Tuple) run(v any, p path) (any, *Error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fail(p, v, "Expecting an ARRAY")
	}
	out := make(TupleValue, len(d.Elements))
	for i, elem := range d.Elements {
		if i >= len(items) {
			return nil, fail(p, v, "Expecting a LONGER array. Need index %d but only see %d entries", i, len(items))
		}
		val, err := runDecoder(elem, items[i], p.index(i))
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func (d *Fail) run(v any, p path) (any, *Error) {
	return nil, fail(p, v, "%s", d.Placeholder)
}

// decodeField mirrors JDecode.field and JDecodeExtra.optionalNullableField.
func decodeField(f Field, v any, p path) (any, *Error) {
	obj, isObject := v.(map[string]any)
	raw, present := obj[f.Key]

	if f.Optional {
		if !isObject || !present || raw == nil {
			return Maybe{}, nil
		}
		val, err := runDecoder(f.Decoder, raw, p.key(f.Key))
		if err != nil {
			return nil, err
		}
		return Maybe{Just: true, Value: val}, nil
	}

	if !isObject || !present {
		return nil, fail(p, v, "Expecting an OBJECT with a field named `%s`", f.Key)
	}
	return runDecoder(f.Decoder, raw, p.key(f.Key))
}

func (r *Record) run(v any, p path) (*RecordValue, *Error) {
	out := &RecordValue{Name: r.Name, Fields: make([]FieldValue, len(r.Fields))}

	// Each andMap step runs its field decoder before the rest of the
	// pipeline, so the last failing field is the one reported.
	for i := len(r.Fields) - 1; i >= 0; i-- {
		f := r.Fields[i]
		val, err := decodeField(f, v, p)
		if err != nil {
			return nil, err
		}
		out.Fields[i] = FieldValue{Name: f.Name, Value: val}
	}
	return out, nil
}

// Msg is the outcome of a decoder function: either the success variant
// carrying the record, or the error variant carrying a description.
type Msg struct {
	Variant string
	Value   *RecordValue
	Err     string
}

// OK reports whether decoding succeeded.
func (m Msg) OK() bool { return m.Value != nil }

// String formats the message as an Elm value.
func (m Msg) String() string {
	if m.OK() {
		return m.Variant + " " + Format(m.Value)
	}
	return m.Variant + " " + Format(m.Err)
}

// Run parses payload as JSON and decodes it. It never panics.
func (r *Record) Run(payload []byte) Msg {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return Msg{Variant: r.ErrorVariant, Err: "This is not valid JSON! " + err.Error()}
	}
	return r.RunValue(v)
}

// RunValue decodes an already parsed JSON value: nil, bool, float64, string,
// []any or map[string]any.
func (r *Record) RunValue(v any) Msg {
	val, err := r.run(v, nil)
	if err != nil {
		return Msg{Variant: r.ErrorVariant, Err: err.Error()}
	}
	return Msg{Variant: r.Variant, Value: val}
}
