package ir

// Schema is the result of one collection run: every declaration found in a
// single input file, in first-encountered order.
type Schema struct {
	// File is the input path the declarations were read from.
	File string

	// Declarations in first-encountered document order.
	Declarations []*Declaration

	// Warnings contains non-fatal issues encountered while building the schema.
	Warnings []Warning
}

// AddDeclaration appends a declaration to the schema.
//
// If a declaration with the same name already exists it is replaced in place
// (the last declaration wins, the first keeps its position) and the replaced
// declaration is returned. The caller decides whether that deserves a warning.
func (s *Schema) AddDeclaration(d *Declaration) (replaced *Declaration) {
	for i, existing := range s.Declarations {
		if existing.Name == d.Name {
			s.Declarations[i] = d
			return existing
		}
	}
	s.Declarations = append(s.Declarations, d)
	return nil
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errs []error

	names := make(map[string]bool)
	for _, d := range s.Declarations {
		if d.Name == "" {
			errs = append(errs, &ValidationError{
				Code:    "empty_name",
				Message: "declaration with empty name at " + d.Source.String(),
			})
			continue
		}
		if names[d.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_declaration",
				Message: "duplicate declaration name: " + d.Name,
			})
		}
		names[d.Name] = true

		fields := make(map[string]bool)
		for _, f := range d.Fields {
			if f.Name == "" {
				errs = append(errs, &ValidationError{
					Code:    "empty_name",
					Message: "field with empty name in " + d.Name,
				})
				continue
			}
			if fields[f.Name] {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_field",
					Message: "duplicate field " + d.Name + "." + f.Name,
				})
			}
			fields[f.Name] = true
			if f.Type == nil {
				errs = append(errs, &ValidationError{
					Code:    "missing_type",
					Message: "field " + d.Name + "." + f.Name + " has no type",
				})
			}
		}
	}

	return errs
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
