// Package ir defines the intermediate representation shared by tselm's
// providers and generators: named record declarations whose fields carry a
// small, closed set of type nodes. Generators turn a Schema into target
// language source without knowing which parser produced it.
package ir

import "fmt"

// Documentation holds a doc comment extracted from source.
type Documentation struct {
	// Summary is the first sentence or line.
	Summary string

	// Body is the complete comment text with comment markers stripped.
	// May contain multiple lines.
	Body string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == ""
}

// Source represents a location in the input file. Line and Column are 1-based.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

func (s Source) String() string {
	if s.IsZero() {
		return ""
	}
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Warning codes produced by providers and generators.
const (
	WarnUnsupportedDecoder   = "unsupported_decoder"
	WarnUnsupportedMember    = "unsupported_member"
	WarnDuplicateDeclaration = "duplicate_declaration"
	WarnRenamedIdentifier    = "renamed_identifier"
	WarnEmptyModule          = "empty_module"
)

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier (see the Warn* constants).
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// Declaration is the declaration that triggered the warning, if applicable.
	Declaration string

	// Field is the field that triggered the warning, if applicable.
	Field string
}

func (w Warning) String() string {
	if w.Source != nil && !w.Source.IsZero() {
		return w.Source.String() + ": " + w.Code + ": " + w.Message
	}
	return w.Code + ": " + w.Message
}
