package elm

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Elm 0.19 keywords.
var reservedWords = map[string]bool{
	"alias":    true,
	"as":       true,
	"case":     true,
	"effect":   true,
	"else":     true,
	"exposing": true,
	"if":       true,
	"import":   true,
	"in":       true,
	"infix":    true,
	"let":      true,
	"module":   true,
	"of":       true,
	"port":     true,
	"then":     true,
	"type":     true,
	"where":    true,
}

// Names bound inside every generated decoder function.
var decoderLocals = map[string]bool{
	"decoder": true,
	"err":     true,
	"result":  true,
	"value":   true,
}

// ReservedValueName reports whether name is unusable as a top-level value
// of the generated module, either because it is a keyword or because a
// decoder's local binding would shadow it.
func ReservedValueName(name string) bool {
	return reservedWords[name] || decoderLocals[name]
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// replaceInvalid keeps letters, digits and underscores.
func replaceInvalid(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// lowerIdentifier makes name a valid Elm variable or record field:
// a lower-case letter first, then letters, digits or underscores.
func lowerIdentifier(name string) string {
	s := replaceInvalid(name)
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case s == "":
		return "field"
	case unicode.IsUpper(r):
		s = string(unicode.ToLower(r)) + s[size:]
	case !unicode.IsLetter(r):
		rest := strings.TrimLeft(s, "_")
		if rest == "" {
			return "field"
		}
		s = "field_" + rest
	}
	return escapeReservedWord(s)
}

// upperIdentifier makes name a valid Elm type or constructor name.
func upperIdentifier(name string) string {
	s := replaceInvalid(name)
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case s == "":
		return "T"
	case unicode.IsLower(r):
		s = string(unicode.ToUpper(r)) + s[size:]
	case !unicode.IsLetter(r):
		s = "T" + s
	}
	return s
}

// elmString quotes s as an Elm string literal.
func elmString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%04X}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
