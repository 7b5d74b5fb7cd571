package elm

import (
	"fmt"
	"strings"

	"github.com/broady/tselm/elmgen/decode"
	"github.com/broady/tselm/elmgen/ir"
)

// Binding ties a declaration to the Elm names generated for it.
type Binding struct {
	Declaration *ir.Declaration

	TypeName string // type alias and record constructor
	Variant  string // message union variant
	Decoder  string // decoder function
	Port     string // inbound port

	Fields []BoundField

	// Record is the decoder for the declaration, named for Elm.
	Record *decode.Record
}

// BoundField is a declaration field with its Elm name and type.
type BoundField struct {
	Field *ir.Field
	Name  string
	Type  string
}

// Names every generated module imports or defines itself, and the
// constructors its decoders pattern match on. Declarations are renamed away
// from them.
var builtinUpper = []string{
	"Array", "Bool", "Char", "Cmd", "Float", "Int", "List", "Maybe",
	"Never", "Order", "String", "Sub",
	"Err", "False", "Just", "Nothing", "Ok", "Result", "True",
}

// Bind assigns Elm names to every declaration in schema order. Names are a
// pure function of the declaration names and the naming configuration.
func Bind(schema *ir.Schema, cfg GeneratorConfig) ([]*Binding, []ir.Warning) {
	naming := cfg.Naming.withDefaults()
	opts := decode.Options{Sequence: cfg.Sequence}

	taken := map[string]bool{naming.MsgType: true, naming.ErrorVariant: true}
	for _, name := range builtinUpper {
		taken[name] = true
	}

	var (
		bindings []*Binding
		warnings []ir.Warning
	)
	for _, d := range schema.Declarations {
		typeName := upperIdentifier(d.Name)
		for n := 2; taken[typeName] || taken[naming.VariantPrefix+typeName]; n++ {
			typeName = fmt.Sprintf("%s_%d", upperIdentifier(d.Name), n)
		}
		taken[typeName] = true
		taken[naming.VariantPrefix+typeName] = true

		if typeName != d.Name {
			warnings = append(warnings, ir.Warning{
				Code:        ir.WarnRenamedIdentifier,
				Message:     fmt.Sprintf("declaration %s is generated as %s", d.Name, typeName),
				Source:      sourcePtr(d.Source),
				Declaration: d.Name,
			})
		}

		b := &Binding{
			Declaration: d,
			TypeName:    typeName,
			Variant:     naming.VariantPrefix + typeName,
			Decoder:     naming.DecoderPrefix + typeName,
			Port:        naming.PortPrefix + typeName,
			Record:      decode.ForDeclaration(d, opts),
		}
		b.Record.Name = typeName
		b.Record.Variant = b.Variant
		b.Record.ErrorVariant = naming.ErrorVariant

		fieldNames := make(map[string]bool, len(d.Fields))
		for i := range d.Fields {
			f := &d.Fields[i]
			name := lowerIdentifier(f.Name)
			for n := 2; fieldNames[name]; n++ {
				name = fmt.Sprintf("%s_%d", lowerIdentifier(f.Name), n)
			}
			fieldNames[name] = true

			if name != f.Name {
				warnings = append(warnings, ir.Warning{
					Code:        ir.WarnRenamedIdentifier,
					Message:     fmt.Sprintf("field %s.%s is generated as %s; the JSON key is unchanged", d.Name, f.Name, name),
					Source:      sourcePtr(f.Source),
					Declaration: d.Name,
					Field:       f.Name,
				})
			}

			b.Record.Fields[i].Name = name
			b.Fields = append(b.Fields, BoundField{
				Field: f,
				Name:  name,
				Type:  TypeExpr(f.Type, cfg.Sequence),
			})

			if missing := decode.Unsupported(b.Record.Fields[i].Decoder); len(missing) > 0 {
				warnings = append(warnings, ir.Warning{
					Code: ir.WarnUnsupportedDecoder,
					Message: fmt.Sprintf("%s.%s has type %s, which has no decoder; decoding %s always fails with %s",
						d.Name, f.Name, f.Type, typeName, strings.Join(missing, ", ")),
					Source:      sourcePtr(f.Source),
					Declaration: d.Name,
					Field:       f.Name,
				})
			}
		}

		bindings = append(bindings, b)
	}
	return bindings, warnings
}

// Lookup returns the binding generated for the named declaration.
func Lookup(bindings []*Binding, declaration string) *Binding {
	for _, b := range bindings {
		if b.Declaration.Name == declaration || b.TypeName == declaration {
			return b
		}
	}
	return nil
}

func sourcePtr(s ir.Source) *ir.Source {
	if s.IsZero() {
		return nil
	}
	return &s
}
