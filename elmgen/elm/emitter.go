package elm

import (
	"bytes"
	"strings"

	"github.com/broady/tselm/elmgen/ir"
)

// sectionBreak separates top-level declarations, as elm-format does.
const sectionBreak = "\n\n\n"

// Emitter writes the sections of a port module.
type Emitter struct {
	config GeneratorConfig
	naming Naming
}

// NewEmitter returns an Emitter for cfg.
func NewEmitter(cfg GeneratorConfig) *Emitter {
	return &Emitter{config: cfg, naming: cfg.Naming.withDefaults()}
}

// EmitModule writes the complete module for bindings. Section order is
// fixed: header, imports, type aliases, message union, decoders,
// subscription aggregator, ports.
func (e *Emitter) EmitModule(buf *bytes.Buffer, bindings []*Binding) {
	e.emitHeader(buf)

	for _, b := range bindings {
		e.emitTypeAlias(buf, b)
		buf.WriteString(sectionBreak)
	}

	e.emitUnion(buf, bindings)
	buf.WriteString(sectionBreak)

	for _, b := range bindings {
		e.emitDecoder(buf, b)
		buf.WriteString(sectionBreak)
	}

	e.emitSubscriptions(buf, bindings)

	for _, b := range bindings {
		buf.WriteString(sectionBreak)
		e.emitPort(buf, b)
	}
	buf.WriteString("\n")
}

func (e *Emitter) emitHeader(buf *bytes.Buffer) {
	if e.config.Banner != "" {
		for _, line := range strings.Split(strings.TrimRight(e.config.Banner, "\n"), "\n") {
			buf.WriteString(strings.TrimRight("-- "+line, " "))
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("port module ")
	buf.WriteString(e.naming.Module)
	buf.WriteString(" exposing (..)\n\n")

	buf.WriteString("import Array exposing (Array)\n")
	buf.WriteString("import Json.Decode as JDecode\n")
	buf.WriteString("import Json.Decode.Extra as JDecodeExtra\n")
	buf.WriteString("import Json.Encode as JEncode")
	buf.WriteString(sectionBreak)
}

func (e *Emitter) emitTypeAlias(buf *bytes.Buffer, b *Binding) {
	if e.config.EmitComments && !b.Declaration.Documentation.IsZero() {
		e.emitDocComment(buf, b.Declaration.Documentation)
	}

	buf.WriteString("type alias ")
	buf.WriteString(b.TypeName)
	buf.WriteString(" =\n")

	if len(b.Fields) == 0 {
		buf.WriteString("    {}")
		return
	}
	for i, f := range b.Fields {
		if i == 0 {
			buf.WriteString("    { ")
		} else {
			buf.WriteString("    , ")
		}
		buf.WriteString(f.Name)
		buf.WriteString(" : ")
		buf.WriteString(f.Type)
		buf.WriteString("\n")
	}
	buf.WriteString("    }")
}

// emitDocComment writes an Elm {-| -} doc comment.
func (e *Emitter) emitDocComment(buf *bytes.Buffer, doc ir.Documentation) {
	body := doc.Body
	if body == "" {
		body = doc.Summary
	}
	// A literal -} would close the comment early.
	body = strings.ReplaceAll(body, "-}", "- }")

	buf.WriteString("{-| ")
	buf.WriteString(body)
	buf.WriteString("\n-}\n")
}

func (e *Emitter) emitUnion(buf *bytes.Buffer, bindings []*Binding) {
	buf.WriteString("type ")
	buf.WriteString(e.naming.MsgType)
	buf.WriteString("\n    = ")
	buf.WriteString(e.naming.ErrorVariant)
	buf.WriteString(" String")
	for _, b := range bindings {
		buf.WriteString("\n    | ")
		buf.WriteString(b.Variant)
		buf.WriteString(" ")
		buf.WriteString(b.TypeName)
	}
}

func (e *Emitter) emitDecoder(buf *bytes.Buffer, b *Binding) {
	buf.WriteString(b.Decoder)
	buf.WriteString(" : JEncode.Value -> ")
	buf.WriteString(e.naming.MsgType)
	buf.WriteString("\n")
	buf.WriteString(b.Decoder)
	buf.WriteString(" value =\n")
	buf.WriteString("    let\n")
	buf.WriteString("        decoder =\n")

	if len(b.Record.Fields) == 0 {
		buf.WriteString("            JDecode.succeed {}\n")
	} else {
		buf.WriteString("            JDecode.succeed ")
		buf.WriteString(b.TypeName)
		buf.WriteString("\n")
		for _, f := range b.Record.Fields {
			buf.WriteString("                |> JDecodeExtra.andMap (")
			buf.WriteString(fieldExpr(f))
			buf.WriteString(")\n")
		}
	}

	buf.WriteString("    in\n")
	buf.WriteString("    case JDecode.decodeValue decoder value of\n")
	buf.WriteString("        Ok result ->\n")
	buf.WriteString("            ")
	buf.WriteString(b.Variant)
	buf.WriteString(" result\n\n")
	buf.WriteString("        Err err ->\n")
	buf.WriteString("            ")
	buf.WriteString(e.naming.ErrorVariant)
	buf.WriteString(" (JDecode.errorToString err)")
}

func (e *Emitter) emitSubscriptions(buf *bytes.Buffer, bindings []*Binding) {
	buf.WriteString(e.naming.Subscriptions)
	buf.WriteString(" : Sub ")
	buf.WriteString(e.naming.MsgType)
	buf.WriteString("\n")
	buf.WriteString(e.naming.Subscriptions)
	buf.WriteString(" =\n")

	if len(bindings) == 0 {
		buf.WriteString("    Sub.batch []")
		return
	}
	buf.WriteString("    Sub.batch\n")
	for i, b := range bindings {
		if i == 0 {
			buf.WriteString("        [ ")
		} else {
			buf.WriteString("        , ")
		}
		buf.WriteString(b.Port)
		buf.WriteString(" ")
		buf.WriteString(b.Decoder)
		buf.WriteString("\n")
	}
	buf.WriteString("        ]")
}

func (e *Emitter) emitPort(buf *bytes.Buffer, b *Binding) {
	buf.WriteString("port ")
	buf.WriteString(b.Port)
	buf.WriteString(" : (JEncode.Value -> msg) -> Sub msg")
}
