package ir

import "strings"

// ArrayNode represents a homogeneous sequence.
type ArrayNode struct {
	// Element is the element type.
	Element TypeNode
}

// Kind returns KindArray.
func (n *ArrayNode) Kind() NodeKind { return KindArray }

func (n *ArrayNode) String() string {
	return "Array<" + nodeString(n.Element) + ">"
}

// Array returns an ArrayNode with the given element type.
func Array(element TypeNode) *ArrayNode {
	return &ArrayNode{Element: element}
}

// TupleNode represents a fixed-arity sequence with per-position types.
//
// Providers only produce TupleNodes for plain element lists. Optional or rest
// elements ([A, B?], [A, ...B[]]) become OpaqueNodes instead.
type TupleNode struct {
	// Elements holds the element types in positional order.
	Elements []TypeNode
}

// Kind returns KindTuple.
func (n *TupleNode) Kind() NodeKind { return KindTuple }

func (n *TupleNode) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = nodeString(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple returns a TupleNode with the given element types.
func Tuple(elements ...TypeNode) *TupleNode {
	return &TupleNode{Elements: elements}
}

// NullableNode represents a value that may be absent or null.
//
// Optional properties (name?: T) and unions with null or undefined
// (T | null) both collapse into a single NullableNode; providers never
// nest a NullableNode directly inside another.
type NullableNode struct {
	// Element is the type of the present value.
	Element TypeNode
}

// Kind returns KindNullable.
func (n *NullableNode) Kind() NodeKind { return KindNullable }

func (n *NullableNode) String() string {
	return nodeString(n.Element) + " | null"
}

// Nullable returns a NullableNode wrapping element.
// Wrapping an existing NullableNode returns it unchanged.
func Nullable(element TypeNode) TypeNode {
	if n, ok := element.(*NullableNode); ok {
		return n
	}
	return &NullableNode{Element: element}
}

// OpaqueNode is the catch-all for types the generator does not model:
// object literals, references to other declarations, generics, unions,
// function types, any, unknown and so on.
type OpaqueNode struct {
	// Text is the source text of the type, kept for diagnostics.
	// Empty when the provider could not recover it.
	Text string
}

// Kind returns KindOpaque.
func (n *OpaqueNode) Kind() NodeKind { return KindOpaque }

func (n *OpaqueNode) String() string {
	if n.Text == "" {
		return "unknown"
	}
	return n.Text
}

// Opaque returns an OpaqueNode carrying the original source text.
func Opaque(text string) *OpaqueNode {
	return &OpaqueNode{Text: text}
}

func nodeString(n TypeNode) string {
	if n == nil {
		return "unknown"
	}
	return n.String()
}
