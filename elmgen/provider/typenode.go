package provider

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/broady/tselm/elmgen/ir"
)

// translate converts a tree-sitter type node to an ir.TypeNode.
// Anything outside the modelled subset becomes an OpaqueNode; translation
// never fails.
func (b *schemaBuilder) translate(n *sitter.Node) ir.TypeNode {
	if n == nil {
		return ir.Opaque("")
	}
	text := n.Content(b.src)

	switch n.Type() {
	case nodePredefinedType:
		switch text {
		case "boolean":
			return ir.Bool()
		case "string":
			return ir.String()
		case "number":
			return ir.Number()
		}
		return ir.Opaque(text)

	case nodeArrayType:
		return ir.Array(b.translate(firstNamedChild(n)))

	case nodeReadonlyType, nodeParenthesizedType:
		return b.translate(firstNamedChild(n))

	case nodeGenericType:
		name := n.ChildByFieldName(fieldName)
		args := n.ChildByFieldName(fieldTypeArguments)
		if name != nil && args != nil && args.NamedChildCount() == 1 {
			switch name.Content(b.src) {
			case "Array", "ReadonlyArray":
				return ir.Array(b.translate(args.NamedChild(0)))
			}
		}
		return ir.Opaque(text)

	case nodeTupleType:
		var elems []ir.TypeNode
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == nodeComment {
				continue
			}
			if !isPlainType(c) {
				return ir.Opaque(text)
			}
			elems = append(elems, b.translate(c))
		}
		return ir.Tuple(elems...)

	case nodeUnionType:
		var rest []*sitter.Node
		nullish := 0
		for _, m := range unionMembers(n) {
			if isNullish(m, b.src) {
				nullish++
				continue
			}
			rest = append(rest, m)
		}
		if nullish > 0 && len(rest) == 1 {
			return ir.Nullable(b.translate(rest[0]))
		}
		return ir.Opaque(text)
	}

	return ir.Opaque(text)
}

// unionMembers flattens the left-nested union_type nodes the grammar
// produces for A | B | C.
func unionMembers(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	stack := []*sitter.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type() != nodeUnionType {
			out = append(out, cur)
			continue
		}
		for i := int(cur.NamedChildCount()) - 1; i >= 0; i-- {
			if c := cur.NamedChild(i); c != nil && c.Type() != nodeComment {
				stack = append(stack, c)
			}
		}
	}
	return out
}

// isNullish reports whether a union member is null or undefined.
func isNullish(n *sitter.Node, src []byte) bool {
	switch strings.TrimSpace(n.Content(src)) {
	case "null", "undefined":
		return true
	}
	return false
}

// isPlainType reports whether a tuple element is a bare type, as opposed to
// an optional, rest or labelled element.
func isPlainType(n *sitter.Node) bool {
	switch n.Type() {
	case "optional_type", "rest_type", "required_parameter", "optional_parameter", "named_tuple_member":
		return false
	}
	return true
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() != nodeComment {
			return c
		}
	}
	return nil
}
