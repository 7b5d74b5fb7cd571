// Package elmgen generates Elm port modules from TypeScript interfaces.
//
// The pipeline has three stages: a provider parses TypeScript into the ir
// schema, the elm generator renders the schema, and a sink stores the
// module. Generator wires them together:
//
//	res, err := elmgen.FromFile("src/ipc.ts").
//	    WithConfig(cfg).
//	    ToDir(ctx, "elm/src")
package elmgen

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/broady/tselm/elmgen/elm"
	"github.com/broady/tselm/elmgen/ir"
	"github.com/broady/tselm/elmgen/provider"
	"github.com/broady/tselm/elmgen/sink"
)

// ErrUsage reports an invocation that is refused before any file is read
// or written.
var ErrUsage = errors.New("usage error")

// StrictError reports warnings that strict mode treats as fatal.
type StrictError struct {
	Warnings []ir.Warning
}

func (e *StrictError) Error() string {
	msgs := make([]string, len(e.Warnings))
	for i, w := range e.Warnings {
		msgs[i] = w.String()
	}
	return "strict mode: " + strings.Join(msgs, "; ")
}

// fatalInStrictMode lists the warning codes strict mode rejects.
var fatalInStrictMode = map[string]bool{
	ir.WarnUnsupportedDecoder:   true,
	ir.WarnDuplicateDeclaration: true,
}

// Result describes one generation run.
type Result struct {
	// Input is the TypeScript file name.
	Input string

	// Files maps each generated relative path to its content.
	Files map[string][]byte

	// Written lists the files written to disk, if any.
	Written []string

	// Declarations is the number of declarations rendered.
	Declarations int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// Paths returns the generated relative paths, sorted.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for p := range r.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Generator provides a fluent API for code generation.
// Create with FromFile() or FromSource() and configure with method chaining.
type Generator struct {
	fs     afero.Fs
	input  string
	source []byte
	cfg    Config
	strict bool
}

// FromFile creates a Generator reading the TypeScript file at path.
func FromFile(path string) *Generator {
	return &Generator{fs: afero.NewOsFs(), input: path, cfg: DefaultConfig()}
}

// FromSource creates a Generator for in-memory TypeScript source. The name
// is used in diagnostics and must still carry the source suffix.
func FromSource(name string, src []byte) *Generator {
	return &Generator{fs: afero.NewOsFs(), input: name, source: src, cfg: DefaultConfig()}
}

// WithFs sets the filesystem inputs are read from and outputs written to.
func (g *Generator) WithFs(fs afero.Fs) *Generator {
	g.fs = fs
	return g
}

// WithConfig replaces the configuration.
func (g *Generator) WithConfig(cfg Config) *Generator {
	g.cfg = cfg
	return g
}

// Strict makes unsupported_decoder and duplicate_declaration warnings fatal.
func (g *Generator) Strict() *Generator {
	g.strict = true
	return g
}

// ToDir generates the module and writes it below dir, creating dir when
// missing. Nothing is written when generation fails.
func (g *Generator) ToDir(ctx context.Context, dir string) (*Result, error) {
	res, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}

	out := sink.NewFsSink(g.fs, dir)
	for _, path := range res.Paths() {
		if err := out.WriteFile(ctx, path, res.Files[path]); err != nil {
			return nil, errors.Wrapf(err, "write %s", filepath.Join(dir, path))
		}
		res.Written = append(res.Written, filepath.Join(dir, path))
	}
	return res, nil
}

// Generate returns generated files in memory without writing to disk.
// Use ToDir() to write files to disk instead.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	schema, err := g.schema(ctx)
	if err != nil {
		return nil, err
	}
	gc, err := g.cfg.generatorConfig(filepath.Base(g.input))
	if err != nil {
		return nil, err
	}

	mem := sink.NewMemorySink()
	gen := &elm.ElmGenerator{}
	out, err := gen.Generate(ctx, schema, elm.GenerateOptions{Sink: mem, Config: gc})
	if err != nil {
		return nil, errors.Wrap(err, "generate Elm module")
	}

	if err := g.checkStrict(out.Warnings); err != nil {
		return nil, err
	}

	return &Result{
		Input:        g.input,
		Files:        mem.Files(),
		Declarations: out.DeclarationsGenerated,
		Warnings:     out.Warnings,
	}, nil
}

// Bindings parses the input and returns the Elm bindings for every
// declaration, including their decoders, without rendering the module.
// The schema is validated as Generate validates it; strict mode applies.
func (g *Generator) Bindings(ctx context.Context) ([]*elm.Binding, []ir.Warning, error) {
	schema, err := g.schema(ctx)
	if err != nil {
		return nil, nil, err
	}
	gc, err := g.cfg.generatorConfig(filepath.Base(g.input))
	if err != nil {
		return nil, nil, err
	}
	bindings, warnings, err := elm.Prepare(schema, gc)
	if err != nil {
		return nil, nil, err
	}
	if err := g.checkStrict(warnings); err != nil {
		return nil, nil, err
	}
	return bindings, warnings, nil
}

// CheckResult reports whether a generated file on disk is current.
type CheckResult struct {
	// Path is the file that was compared.
	Path string

	// UpToDate is true when the file matches freshly generated output.
	UpToDate bool

	// Missing is true when the file does not exist.
	Missing bool

	// Diff shows the changes generation would make (-disk +generated).
	Diff string
}

// Check generates in memory and compares the result with the files
// below dir.
func (g *Generator) Check(ctx context.Context, dir string) ([]CheckResult, error) {
	res, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}

	var results []CheckResult
	for _, path := range res.Paths() {
		full := filepath.Join(dir, filepath.FromSlash(path))
		cr := CheckResult{Path: full}

		onDisk, err := afero.ReadFile(g.fs, full)
		switch {
		case err == nil:
			cr.Diff = cmp.Diff(string(onDisk), string(res.Files[path]))
			cr.UpToDate = cr.Diff == ""
		case isNotExist(g.fs, full):
			cr.Missing = true
		default:
			return nil, errors.Wrapf(err, "read %s", full)
		}
		results = append(results, cr)
	}
	return results, nil
}

// checkStrict fails with a *StrictError when strict mode is on and any
// warning is fatal under it.
func (g *Generator) checkStrict(warnings []ir.Warning) error {
	if !g.strict && !g.cfg.Strict {
		return nil
	}
	var fatal []ir.Warning
	for _, w := range warnings {
		if fatalInStrictMode[w.Code] {
			fatal = append(fatal, w)
		}
	}
	if len(fatal) > 0 {
		return &StrictError{Warnings: fatal}
	}
	return nil
}

func isNotExist(fs afero.Fs, path string) bool {
	exists, err := afero.Exists(fs, path)
	return err == nil && !exists
}

// schema validates the configuration and input name, reads the input and
// collects its declarations.
func (g *Generator) schema(ctx context.Context) (*ir.Schema, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(g.input, g.cfg.SourceSuffix) {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUsage, "input file %q must end in %s", g.input, g.cfg.SourceSuffix),
			"usage: tselm <input%s> <outdir>", g.cfg.SourceSuffix)
	}

	src, err := g.read(ctx)
	if err != nil {
		return nil, err
	}

	p := &provider.SourceProvider{}
	schema, err := p.BuildSchema(ctx, provider.SourceInputOptions{
		Filename:          g.input,
		Source:            src,
		ObjectTypeAliases: g.cfg.ObjectTypeAliases,
	})
	if err != nil {
		return nil, errors.Wrap(err, "collect declarations")
	}
	return schema, nil
}

func (g *Generator) read(ctx context.Context) ([]byte, error) {
	if g.source != nil {
		return g.source, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := afero.ReadFile(g.fs, g.input)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", g.input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return src, nil
}
