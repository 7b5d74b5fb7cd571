package ir

// Declaration represents a named record type (a TypeScript interface).
type Declaration struct {
	// Name is the declaration identifier as written in source.
	Name string

	// Fields contains the members in declaration order.
	// The order is observable in generated output.
	Fields []Field

	// Documentation for this declaration.
	Documentation Documentation

	// Source location of the declaration name.
	Source Source
}

// Field represents a single member of a Declaration.
type Field struct {
	// Name is the property name as written in source. It is also the JSON
	// key the generated decoder reads, so generators must not rewrite it
	// when decoding even if they sanitise it for the target language.
	Name string

	// Type is the field's type node.
	Type TypeNode

	// Optional indicates the property was marked with '?'. Providers have
	// already wrapped Type in a NullableNode; this flag only preserves the
	// spelling for diagnostics.
	Optional bool

	// Documentation for this field.
	Documentation Documentation

	// Source location of the property name.
	Source Source
}
