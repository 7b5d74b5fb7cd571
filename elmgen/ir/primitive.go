package ir

// PrimitiveKind identifies the category of a primitive type.
type PrimitiveKind int

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveString
	PrimitiveNumber // No integer distinction: every number is a float
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveBool:
		return "Bool"
	case PrimitiveString:
		return "String"
	case PrimitiveNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// PrimitiveNode represents a built-in primitive type.
type PrimitiveNode struct {
	PrimitiveKind PrimitiveKind
}

// Kind returns KindPrimitive.
func (n *PrimitiveNode) Kind() NodeKind { return KindPrimitive }

func (n *PrimitiveNode) String() string {
	switch n.PrimitiveKind {
	case PrimitiveBool:
		return "boolean"
	case PrimitiveString:
		return "string"
	case PrimitiveNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Bool returns a PrimitiveNode for boolean.
func Bool() *PrimitiveNode {
	return &PrimitiveNode{PrimitiveKind: PrimitiveBool}
}

// String returns a PrimitiveNode for string.
func String() *PrimitiveNode {
	return &PrimitiveNode{PrimitiveKind: PrimitiveString}
}

// Number returns a PrimitiveNode for number.
func Number() *PrimitiveNode {
	return &PrimitiveNode{PrimitiveKind: PrimitiveNumber}
}
