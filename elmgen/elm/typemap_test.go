package elm

import (
	"testing"

	"github.com/broady/tselm/elmgen/decode"
	"github.com/broady/tselm/elmgen/ir"
)

// syntheticNode is a node kind no mapper knows about.
type syntheticNode struct{}

func (syntheticNode) Kind() ir.NodeKind { return ir.NodeKind(99) }
func (syntheticNode) String() string    { return "synthetic" }

func TestTypeExpr(t *testing.T) {
	tests := []struct {
		name string
		typ  ir.TypeNode
		seq  decode.Sequence
		want string
	}{
		{"bool", ir.Bool(), decode.SequenceArray, "Bool"},
		{"string", ir.String(), decode.SequenceArray, "String"},
		{"number", ir.Number(), decode.SequenceArray, "Float"},
		{"array", ir.Array(ir.String()), decode.SequenceArray, "Array String"},
		{"list", ir.Array(ir.String()), decode.SequenceList, "List String"},
		{"nested array", ir.Array(ir.Array(ir.Number())), decode.SequenceArray, "Array (Array Float)"},
		{"nullable", ir.Nullable(ir.Bool()), decode.SequenceArray, "Maybe Bool"},
		{"nullable array", ir.Nullable(ir.Array(ir.Bool())), decode.SequenceArray, "Maybe (Array Bool)"},
		{"array of nullable", ir.Array(ir.Nullable(ir.Bool())), decode.SequenceList, "List (Maybe Bool)"},
		{"pair", ir.Tuple(ir.Number(), ir.String()), decode.SequenceArray, "( Float, String )"},
		{"triple", ir.Tuple(ir.Bool(), ir.Array(ir.Number()), ir.Nullable(ir.String())), decode.SequenceArray, "( Bool, Array Float, Maybe String )"},
		{"array of pairs", ir.Array(ir.Tuple(ir.Number(), ir.Number())), decode.SequenceArray, "Array ( Float, Float )"},
		{"single tuple", ir.Tuple(ir.Number()), decode.SequenceArray, "JEncode.Value"},
		{"empty tuple", ir.Tuple(), decode.SequenceArray, "JEncode.Value"},
		{"opaque", ir.Opaque("{ a: string }"), decode.SequenceArray, "JEncode.Value"},
		{"array of opaque", ir.Array(ir.Opaque("X")), decode.SequenceArray, "Array JEncode.Value"},
		{"nil", nil, decode.SequenceArray, "JEncode.Value"},
		{"unknown primitive", &ir.PrimitiveNode{PrimitiveKind: ir.PrimitiveKind(42)}, decode.SequenceArray, "JEncode.Value"},
		{"synthetic kind", syntheticNode{}, decode.SequenceArray, "JEncode.Value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeExpr(tt.typ, tt.seq)
			if got != tt.want {
				t.Errorf("TypeExpr(%v) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestDecoderExpr(t *testing.T) {
	tests := []struct {
		name string
		typ  ir.TypeNode
		want string
	}{
		{"bool", ir.Bool(), "JDecode.bool"},
		{"array", ir.Array(ir.String()), "JDecode.array JDecode.string"},
		{"nested", ir.Array(ir.Nullable(ir.Number())), "JDecode.array (JDecode.nullable JDecode.float)"},
		{"pair", ir.Tuple(ir.Number(), ir.String()), "JDecode.map2 Tuple.pair (JDecode.index 0 JDecode.float) (JDecode.index 1 JDecode.string)"},
		{"opaque", ir.Opaque("X"), `JDecode.fail "decodeValue_is_not_implemented"`},
		{"quad", ir.Tuple(ir.Bool(), ir.Bool(), ir.Bool(), ir.Bool()), `JDecode.fail "decodeTuple_is_not_implemented"`},
		{"synthetic kind", syntheticNode{}, `JDecode.fail "decodeValue_is_not_implemented"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecoderExpr(decode.For(tt.typ, decode.Options{}))
			if got != tt.want {
				t.Errorf("DecoderExpr(%v) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}

	if got := DecoderExpr(nil); got != `JDecode.fail "decodeValue_is_not_implemented"` {
		t.Errorf("DecoderExpr(nil) = %q", got)
	}
}

// The type and decoder for a node must agree on which constructs are
// supported.
func TestTypeExprAndDecoderAgree(t *testing.T) {
	nodes := []ir.TypeNode{
		ir.Bool(), ir.Array(ir.Opaque("X")), ir.Tuple(ir.Number()),
		ir.Tuple(ir.Number(), ir.Number()), ir.Nullable(ir.Opaque("Y")), syntheticNode{},
	}
	for _, n := range nodes {
		opaque := TypeExpr(n, decode.SequenceArray) == opaqueType
		placeholder := len(decode.Unsupported(decode.For(n, decode.Options{}))) > 0
		if opaque && !placeholder {
			t.Errorf("%v maps to %s but has a real decoder", n, opaqueType)
		}
	}
}
