package ir

// NodeKind identifies the category of a type node.
type NodeKind int

const (
	KindPrimitive NodeKind = iota // Built-in primitive (boolean, string, number)
	KindArray                     // Homogeneous sequence (T[], Array<T>)
	KindTuple                     // Fixed-arity sequence ([A, B])
	KindNullable                  // T | null, T | undefined, or an optional property
	KindOpaque                    // Anything the generator does not model
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindNullable:
		return "Nullable"
	case KindOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// TypeNode is the closed representation of a field type.
//
// Providers translate their parser's syntax tree into TypeNodes exactly once,
// so nothing downstream of a provider depends on a particular parser.
// Consumers MUST handle node kinds they do not recognise; the Opaque kind is
// the documented fallback, but a consumer may still see a kind added later.
type TypeNode interface {
	// Kind returns the node kind for type switching.
	Kind() NodeKind

	// String returns a TypeScript-like rendering used in diagnostics.
	String() string
}
