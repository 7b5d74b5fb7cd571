package provider

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/broady/tselm/elmgen/ir"
)

// docFor returns the JSDoc block (/** ... */) immediately preceding n.
// Line comments and plain block comments are not documentation.
func (b *schemaBuilder) docFor(n *sitter.Node) ir.Documentation {
	prev := n.PrevNamedSibling()
	if prev == nil || prev.Type() != nodeComment {
		return ir.Documentation{}
	}
	// The comment must end on the line before n starts (or the same line).
	if n.StartPoint().Row-prev.EndPoint().Row > 1 {
		return ir.Documentation{}
	}
	text := prev.Content(b.src)
	if !strings.HasPrefix(text, "/**") || text == "/**/" {
		return ir.Documentation{}
	}
	return parseJSDoc(text)
}

// parseJSDoc strips comment markers and leading asterisks.
func parseJSDoc(text string) ir.Documentation {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines = append(lines, strings.TrimSpace(line))
	}

	// Trim blank leading and trailing lines.
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ir.Documentation{}
	}

	body := strings.Join(lines, "\n")
	summary := lines[0]
	if i := strings.Index(summary, ". "); i >= 0 {
		summary = summary[:i+1]
	}
	return ir.Documentation{Summary: summary, Body: body}
}
