// Package decode builds JSON decoders for declarations.
//
// A decoder is a small tree mirroring Elm's Json.Decode combinators. The elm
// package renders the tree as Elm source; Run evaluates the same tree in Go
// with Json.Decode semantics, so generated modules can be exercised without
// an Elm toolchain.
package decode

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/tselm/elmgen/ir"
)

// Placeholder names used by decoders that always fail at runtime.
const (
	PlaceholderValue = "decodeValue_is_not_implemented"
	PlaceholderTuple = "decodeTuple_is_not_implemented"
)

// Sequence selects the Elm collection used for arrays.
type Sequence int

const (
	SequenceArray Sequence = iota // Array T, JDecode.array
	SequenceList                  // List T, JDecode.list
)

func (s Sequence) String() string {
	switch s {
	case SequenceArray:
		return "array"
	case SequenceList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseSequence parses "array" or "list".
func ParseSequence(s string) (Sequence, error) {
	switch s {
	case "array", "":
		return SequenceArray, nil
	case "list":
		return SequenceList, nil
	}
	return 0, errors.Newf("unknown sequence %q (expected \"array\" or \"list\")", s)
}

// Decoder is a node in a decoder tree.
type Decoder interface {
	run(v any, path path) (any, *Error)
}

// Bool decodes a JSON boolean.
type Bool struct{}

// String decodes a JSON string.
type String struct{}

// Float decodes any JSON number.
type Float struct{}

// Seq decodes a JSON array whose elements all decode with Element.
type Seq struct {
	Element Decoder
	List    bool
}

// Nullable decodes null as Nothing and anything else with Element.
type Nullable struct {
	Element Decoder
}

// Tuple decodes a JSON array positionally. Only 2- and 3-tuples are built.
type Tuple struct {
	Elements []Decoder
}

// Fail always fails with Placeholder as its message.
type Fail struct {
	Placeholder string
}

// Options configures decoder construction.
type Options struct {
	Sequence Sequence
}

// For returns the decoder for t. It never fails: constructs with no decoder
// become a Fail placeholder that only errors when run.
func For(t ir.TypeNode, opts Options) Decoder {
	switch n := t.(type) {
	case *ir.PrimitiveNode:
		switch n.PrimitiveKind {
		case ir.PrimitiveBool:
			return Bool{}
		case ir.PrimitiveString:
			return String{}
		case ir.PrimitiveNumber:
			return Float{}
		}
	case *ir.ArrayNode:
		return &Seq{Element: For(n.Element, opts), List: opts.Sequence == SequenceList}
	case *ir.NullableNode:
		return &Nullable{Element: For(n.Element, opts)}
	case *ir.TupleNode:
		if len(n.Elements) != 2 && len(n.Elements) != 3 {
			return &Fail{Placeholder: PlaceholderTuple}
		}
		elems := make([]Decoder, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = For(e, opts)
		}
		return &Tuple{Elements: elems}
	}
	return &Fail{Placeholder: PlaceholderValue}
}

// Field is one record field decoder.
type Field struct {
	// Name is the Elm record field name.
	Name string

	// Key is the JSON object key.
	Key string

	// Decoder decodes the field value. For Optional fields it decodes the
	// present, non-null value.
	Decoder Decoder

	// Optional fields decode a missing or null key as Nothing.
	Optional bool
}

// Record decodes a JSON object into a declaration's record and wraps the
// outcome in a message variant.
type Record struct {
	// Name is the Elm type alias name.
	Name string

	// Variant is the message constructor used on success.
	Variant string

	// ErrorVariant is the message constructor used on failure.
	ErrorVariant string

	Fields []Field
}

// ForDeclaration returns the record decoder for d. Names are copied from
// the declaration unchanged; callers rename them for the target language.
func ForDeclaration(d *ir.Declaration, opts Options) *Record {
	r := &Record{Name: d.Name}
	for _, f := range d.Fields {
		field := Field{Name: f.Name, Key: f.Name}
		if n, ok := f.Type.(*ir.NullableNode); ok {
			field.Optional = true
			field.Decoder = For(n.Element, opts)
		} else {
			field.Decoder = For(f.Type, opts)
		}
		r.Fields = append(r.Fields, field)
	}
	return r
}

// Unsupported returns the placeholder names reachable from d, in order.
func Unsupported(d Decoder) []string {
	var out []string
	Walk(d, func(d Decoder) bool {
		if f, ok := d.(*Fail); ok {
			out = append(out, f.Placeholder)
		}
		return true
	})
	return out
}

// Walk calls fn for d and every decoder nested inside it, parents first.
// If fn returns false the children of that decoder are skipped.
func Walk(d Decoder, fn func(Decoder) bool) {
	stack := []Decoder{d}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil || !fn(cur) {
			continue
		}
		switch t := cur.(type) {
		case *Seq:
			stack = append(stack, t.Element)
		case *Nullable:
			stack = append(stack, t.Element)
		case *Tuple:
			for i := len(t.Elements) - 1; i >= 0; i-- {
				stack = append(stack, t.Elements[i])
			}
		}
	}
}
