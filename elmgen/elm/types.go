// Package elm renders a schema as an Elm 0.19 port module: one type alias
// per declaration, a message union, JSON decoder functions, one inbound
// port per declaration and a subscription aggregator.
package elm

import (
	"strings"

	"github.com/broady/tselm/elmgen/decode"
	"github.com/broady/tselm/elmgen/ir"
	"github.com/broady/tselm/elmgen/sink"
)

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// DeclarationsGenerated is the count of declarations rendered.
	DeclarationsGenerated int

	// Warnings holds the schema's warnings followed by those raised
	// during generation.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// Naming holds the names the generated module is built from.
// Empty fields take the DefaultNaming values.
type Naming struct {
	Module        string // port module name, e.g. TsElmInterfaces
	MsgType       string // message union, e.g. TypescriptMsg
	VariantPrefix string // prepended to declaration names for union variants
	ErrorVariant  string // variant carrying decode failures
	Subscriptions string // aggregator subscription
	DecoderPrefix string // prepended to declaration names for decoder functions
	PortPrefix    string // prepended to declaration names for ports
}

// DefaultNaming returns the naming used when nothing is configured.
func DefaultNaming() Naming {
	return Naming{
		Module:        "TsElmInterfaces",
		MsgType:       "TypescriptMsg",
		VariantPrefix: "Sub",
		ErrorVariant:  "MessagingError",
		Subscriptions: "tsSubscriptions",
		DecoderPrefix: "decode",
		PortPrefix:    "receive",
	}
}

func (n Naming) withDefaults() Naming {
	d := DefaultNaming()
	if n.Module == "" {
		n.Module = d.Module
	}
	if n.MsgType == "" {
		n.MsgType = d.MsgType
	}
	if n.VariantPrefix == "" {
		n.VariantPrefix = d.VariantPrefix
	}
	if n.ErrorVariant == "" {
		n.ErrorVariant = d.ErrorVariant
	}
	if n.Subscriptions == "" {
		n.Subscriptions = d.Subscriptions
	}
	if n.DecoderPrefix == "" {
		n.DecoderPrefix = d.DecoderPrefix
	}
	if n.PortPrefix == "" {
		n.PortPrefix = d.PortPrefix
	}
	return n
}

// GeneratorConfig provides generation options.
type GeneratorConfig struct {
	Naming Naming

	// Sequence selects Array (default) or List for TypeScript arrays.
	Sequence decode.Sequence

	// EmitComments renders declaration JSDoc as Elm doc comments.
	EmitComments bool

	// Banner, when set, is emitted as a line comment above the module header.
	Banner string
}

// ModulePath returns the relative file path for an Elm module name:
// Ports.Generated is written to Ports/Generated.elm.
func ModulePath(module string) string {
	return strings.ReplaceAll(module, ".", "/") + ".elm"
}
