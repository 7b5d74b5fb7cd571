// Package provider implements input providers that extract declarations
// from TypeScript source and convert them to the intermediate representation.
package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"go.uber.org/multierr"

	"github.com/broady/tselm/elmgen/ir"
)

// SourceProvider extracts declarations by parsing TypeScript source.
type SourceProvider struct{}

// SourceInputOptions configures source-based extraction.
type SourceInputOptions struct {
	// Filename is used in diagnostics and recorded in the schema.
	Filename string

	// Source is the TypeScript source text.
	Source []byte

	// ObjectTypeAliases also collects `type X = { ... }` declarations.
	// By default only interfaces are collected.
	ObjectTypeAliases bool
}

// BuildSchema parses the source and returns every declaration it contains,
// at any depth, in first-encountered document order.
//
// It fails with a *ParseError when the source does not parse, and with one
// or more *MalformedDeclarationError (combined with multierr) when a member
// has no type annotation.
func (p *SourceProvider) BuildSchema(ctx context.Context, opts SourceInputOptions) (*ir.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, opts.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", opts.Filename)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{File: opts.Filename, Positions: syntaxErrors(root, opts.Filename)}
	}

	b := &schemaBuilder{
		src:               opts.Source,
		file:              opts.Filename,
		objectTypeAliases: opts.ObjectTypeAliases,
		schema:            &ir.Schema{File: opts.Filename},
	}
	if err := b.collect(root); err != nil {
		return nil, err
	}
	return b.schema, nil
}

// schemaBuilder accumulates declarations for a single run.
type schemaBuilder struct {
	src               []byte
	file              string
	objectTypeAliases bool
	schema            *ir.Schema
}

// collect walks the tree with an explicit stack. Children are pushed in
// reverse so nodes pop in document order.
func (b *schemaBuilder) collect(root *sitter.Node) error {
	var errs error

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Type() {
		case nodeInterfaceDeclaration:
			errs = multierr.Append(errs, b.addDeclaration(n, n.ChildByFieldName(fieldBody)))
			continue
		case nodeTypeAliasDeclaration:
			if value := n.ChildByFieldName(fieldValue); b.objectTypeAliases && value != nil && value.Type() == nodeObjectType {
				errs = multierr.Append(errs, b.addDeclaration(n, value))
				continue
			}
		}

		for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
			if child := n.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return errs
}

// addDeclaration converts an interface (or object type alias) to a Declaration.
// Every malformed member is reported, not just the first.
func (b *schemaBuilder) addDeclaration(decl, body *sitter.Node) error {
	nameNode := decl.ChildByFieldName(fieldName)
	if nameNode == nil {
		return errors.Newf("%s: declaration without a name", b.source(decl))
	}

	d := &ir.Declaration{
		Name:          nameNode.Content(b.src),
		Documentation: b.docFor(declarationAnchor(decl)),
		Source:        b.source(nameNode),
	}

	var errs error
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			switch member.Type() {
			case nodeComment:
				continue
			case nodePropertySignature:
				field, err := b.field(d.Name, member)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				if field != nil {
					d.Fields = append(d.Fields, *field)
				}
			default:
				b.schema.AddWarning(ir.Warning{
					Code:        ir.WarnUnsupportedMember,
					Message:     "skipping " + memberKind(member.Type()) + " in " + d.Name + ": only property signatures become fields",
					Source:      b.sourcePtr(member),
					Declaration: d.Name,
				})
			}
		}
	}
	if errs != nil {
		return errs
	}

	if replaced := b.schema.AddDeclaration(d); replaced != nil {
		b.schema.AddWarning(ir.Warning{
			Code:        ir.WarnDuplicateDeclaration,
			Message:     d.Name + " is declared more than once; the declaration at " + d.Source.String() + " replaces the one at " + replaced.Source.String(),
			Source:      b.sourcePtr(nameNode),
			Declaration: d.Name,
		})
	}
	return nil
}

// field converts a property signature. It returns (nil, nil) for members that
// are skipped with a warning.
func (b *schemaBuilder) field(declName string, prop *sitter.Node) (*ir.Field, error) {
	nameNode := prop.ChildByFieldName(fieldName)
	if nameNode == nil {
		return nil, errors.Newf("%s: property without a name in %s", b.source(prop), declName)
	}

	name, ok := b.propertyKey(nameNode)
	if !ok {
		b.schema.AddWarning(ir.Warning{
			Code:        ir.WarnUnsupportedMember,
			Message:     "skipping computed property " + nameNode.Content(b.src) + " in " + declName,
			Source:      b.sourcePtr(nameNode),
			Declaration: declName,
		})
		return nil, nil
	}

	annotation := prop.ChildByFieldName(fieldType)
	if annotation == nil || annotation.NamedChildCount() == 0 {
		return nil, &MalformedDeclarationError{
			Declaration: declName,
			Field:       name,
			Source:      b.source(nameNode),
		}
	}

	typ := b.translate(annotation.NamedChild(0))
	optional := hasOptionalMarker(prop)
	if optional {
		typ = ir.Nullable(typ)
	}

	return &ir.Field{
		Name:          name,
		Type:          typ,
		Optional:      optional,
		Documentation: b.docFor(prop),
		Source:        b.source(nameNode),
	}, nil
}

// propertyKey returns the JSON key for a property name node.
// Computed names ([key]: T) have no static key.
func (b *schemaBuilder) propertyKey(n *sitter.Node) (string, bool) {
	text := n.Content(b.src)
	switch n.Type() {
	case nodeString:
		return unquote(text), true
	case nodeComputedPropertyName:
		return "", false
	default:
		return text, true
	}
}

// hasOptionalMarker reports whether a property signature carries '?'.
func hasOptionalMarker(prop *sitter.Node) bool {
	for i := 0; i < int(prop.ChildCount()); i++ {
		c := prop.Child(i)
		if c != nil && !c.IsNamed() && c.Type() == "?" {
			return true
		}
	}
	return false
}

// declarationAnchor returns the node a doc comment would precede: the
// export statement wrapping the declaration, if any.
func declarationAnchor(decl *sitter.Node) *sitter.Node {
	if parent := decl.Parent(); parent != nil && parent.Type() == nodeExportStatement {
		return parent
	}
	return decl
}

func (b *schemaBuilder) source(n *sitter.Node) ir.Source {
	p := n.StartPoint()
	return ir.Source{File: b.file, Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (b *schemaBuilder) sourcePtr(n *sitter.Node) *ir.Source {
	s := b.source(n)
	return &s
}

// syntaxErrors lists the positions of ERROR and missing nodes.
func syntaxErrors(root *sitter.Node, file string) []ir.Source {
	var out []ir.Source
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type() == nodeError || n.IsMissing() {
			p := n.StartPoint()
			out = append(out, ir.Source{File: file, Line: int(p.Row) + 1, Column: int(p.Column) + 1})
			continue
		}
		if !n.HasError() {
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
	return out
}

func memberKind(nodeType string) string {
	switch nodeType {
	case nodeMethodSignature:
		return "method signature"
	case nodeCallSignature:
		return "call signature"
	case nodeConstructSignature:
		return "construct signature"
	case nodeIndexSignature:
		return "index signature"
	default:
		return strings.ReplaceAll(nodeType, "_", " ")
	}
}

// unquote decodes a string literal key into the JSON key it denotes.
// Literals that do not decode are returned without their quotes.
func unquote(s string) string {
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') || s[len(s)-1] != s[0] {
		return s
	}
	body := s[1 : len(s)-1]
	if key, err := strconv.Unquote(`"` + goEscapes(body) + `"`); err == nil {
		return key
	}
	return body
}

// goEscapes rewrites the body of a TypeScript string literal, in either
// quote style, as the body of a Go double-quoted literal.
func goEscapes(body string) string {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '"' {
			b.WriteString(`\"`)
			continue
		}
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; {
		case e == '\'':
			b.WriteByte('\'')
		case e == '\n':
			// line continuation
		case e == '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case e == '0' && (i+1 == len(body) || body[i+1] < '0' || body[i+1] > '9'):
			b.WriteString(`\x00`)
		case e == 'u' && i+1 < len(body) && body[i+1] == '{':
			end := strings.IndexByte(body[i:], '}')
			if end < 0 {
				b.WriteString(`\u`)
				continue
			}
			cp, err := strconv.ParseUint(body[i+2:i+end], 16, 32)
			if err != nil {
				b.WriteString(`\u`)
				continue
			}
			fmt.Fprintf(&b, `\U%08X`, cp)
			i += end
		case strings.IndexByte(`"\\bfnrtvxu`, e) >= 0:
			b.WriteByte('\\')
			b.WriteByte(e)
		default:
			// Any other escaped character stands for itself.
			b.WriteByte(e)
		}
	}
	return b.String()
}
