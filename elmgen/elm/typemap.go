package elm

import (
	"strings"

	"github.com/broady/tselm/elmgen/decode"
	"github.com/broady/tselm/elmgen/ir"
)

// opaqueType is the Elm type for values the generator cannot describe.
const opaqueType = "JEncode.Value"

// TypeExpr returns the Elm type expression for t. It is total: every node,
// including kinds it does not know, maps to a non-empty expression.
func TypeExpr(t ir.TypeNode, seq decode.Sequence) string {
	switch n := t.(type) {
	case *ir.PrimitiveNode:
		switch n.PrimitiveKind {
		case ir.PrimitiveBool:
			return "Bool"
		case ir.PrimitiveString:
			return "String"
		case ir.PrimitiveNumber:
			return "Float"
		}
	case *ir.ArrayNode:
		if seq == decode.SequenceList {
			return "List " + parens(TypeExpr(n.Element, seq))
		}
		return "Array " + parens(TypeExpr(n.Element, seq))
	case *ir.NullableNode:
		return "Maybe " + parens(TypeExpr(n.Element, seq))
	case *ir.TupleNode:
		if len(n.Elements) == 2 || len(n.Elements) == 3 {
			parts := make([]string, len(n.Elements))
			for i, e := range n.Elements {
				parts[i] = TypeExpr(e, seq)
			}
			return "( " + strings.Join(parts, ", ") + " )"
		}
	}
	return opaqueType
}

// parens wraps an expression that is an application of arguments.
// Single names and already bracketed expressions are returned as is.
func parens(expr string) string {
	if !strings.Contains(expr, " ") || strings.HasPrefix(expr, "(") || strings.HasPrefix(expr, "{") {
		return expr
	}
	return "(" + expr + ")"
}
