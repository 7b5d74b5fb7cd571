package provider

import (
	"fmt"
	"strings"

	"github.com/broady/tselm/elmgen/ir"
)

// ParseError reports source text the TypeScript parser could not accept.
type ParseError struct {
	// File is the input path.
	File string

	// Positions lists every syntax error or missing token, in document order.
	Positions []ir.Source
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("syntax error")
	if e.File != "" {
		b.WriteString(" in ")
		b.WriteString(e.File)
	}
	if len(e.Positions) > 0 {
		p := e.Positions[0]
		fmt.Fprintf(&b, " at %d:%d", p.Line, p.Column)
		if n := len(e.Positions) - 1; n > 0 {
			fmt.Fprintf(&b, " (and %d more)", n)
		}
	}
	return b.String()
}

// MalformedDeclarationError reports a declaration member that has no type
// annotation. The whole run fails rather than skipping the member.
type MalformedDeclarationError struct {
	Declaration string
	Field       string
	Source      ir.Source
}

func (e *MalformedDeclarationError) Error() string {
	msg := fmt.Sprintf("malformed declaration %s: field %q has no type annotation", e.Declaration, e.Field)
	if !e.Source.IsZero() {
		msg = e.Source.String() + ": " + msg
	}
	return msg
}
