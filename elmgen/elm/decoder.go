package elm

import (
	"strconv"
	"strings"

	"github.com/broady/tselm/elmgen/decode"
)

// DecoderExpr renders a decoder tree as an Elm Json.Decode expression.
func DecoderExpr(d decode.Decoder) string {
	switch t := d.(type) {
	case decode.Bool, *decode.Bool:
		return "JDecode.bool"
	case decode.String, *decode.String:
		return "JDecode.string"
	case decode.Float, *decode.Float:
		return "JDecode.float"
	case *decode.Seq:
		if t.List {
			return "JDecode.list " + parens(DecoderExpr(t.Element))
		}
		return "JDecode.array " + parens(DecoderExpr(t.Element))
	case *decode.Nullable:
		return "JDecode.nullable " + parens(DecoderExpr(t.Element))
	case *decode.Tuple:
		return tupleExpr(t)
	case *decode.Fail:
		return "JDecode.fail " + elmString(t.Placeholder)
	}
	return "JDecode.fail " + elmString(decode.PlaceholderValue)
}

func tupleExpr(t *decode.Tuple) string {
	var b strings.Builder
	switch len(t.Elements) {
	case 2:
		b.WriteString("JDecode.map2 Tuple.pair")
	case 3:
		b.WriteString(`JDecode.map3 (\a b c -> ( a, b, c ))`)
	default:
		return "JDecode.fail " + elmString(decode.PlaceholderTuple)
	}
	for i, e := range t.Elements {
		b.WriteString(" (JDecode.index ")
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(' ')
		b.WriteString(parens(DecoderExpr(e)))
		b.WriteByte(')')
	}
	return b.String()
}

// fieldExpr renders the andMap argument for one record field.
func fieldExpr(f decode.Field) string {
	if f.Optional {
		return "JDecodeExtra.optionalNullableField " + elmString(f.Key) + " " + parens(DecoderExpr(f.Decoder))
	}
	return "JDecode.field " + elmString(f.Key) + " " + parens(DecoderExpr(f.Decoder))
}
