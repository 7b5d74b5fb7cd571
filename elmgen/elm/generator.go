package elm

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/multierr"

	"github.com/broady/tselm/elmgen/ir"
)

// ElmGenerator generates an Elm port module from a schema.
type ElmGenerator struct{}

// Generate renders schema as a single module file written to opts.Sink.
// Identical schemas and configuration produce byte-identical output.
func (g *ElmGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if schema == nil {
		return nil, errors.New("schema is nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("sink is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bindings, warnings, err := Prepare(schema, opts.Config)
	if err != nil {
		return nil, err
	}
	naming := opts.Config.Naming.withDefaults()

	var buf bytes.Buffer
	NewEmitter(opts.Config).EmitModule(&buf, bindings)

	path := ModulePath(naming.Module)
	if err := opts.Sink.WriteFile(ctx, path, buf.Bytes()); err != nil {
		return nil, errors.Wrapf(err, "write %s", path)
	}

	return &GenerateResult{
		Files:                 []OutputFile{{Path: path, Size: int64(buf.Len())}},
		DeclarationsGenerated: len(bindings),
		Warnings:              warnings,
	}, nil
}

// Prepare validates schema and binds Elm names to its declarations. The
// warnings are the schema's own followed by those raised while binding.
func Prepare(schema *ir.Schema, cfg GeneratorConfig) ([]*Binding, []ir.Warning, error) {
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, nil, errors.Wrap(multierr.Combine(errs...), "invalid schema")
	}

	bindings, bindWarnings := Bind(schema, cfg)
	warnings := append(append([]ir.Warning(nil), schema.Warnings...), bindWarnings...)
	if len(bindings) == 0 {
		warnings = append(warnings, ir.Warning{
			Code:    ir.WarnEmptyModule,
			Message: "no declarations found; module " + cfg.Naming.withDefaults().Module + " has no ports",
		})
	}
	return bindings, warnings, nil
}
