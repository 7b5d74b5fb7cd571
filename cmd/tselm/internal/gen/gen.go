package gen

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tselm/cmd/tselm/internal/options"
	"github.com/broady/tselm/elmgen"
	"github.com/broady/tselm/elmgen/elm"
	"github.com/broady/tselm/internal/logging"
	"github.com/broady/tselm/internal/watch"
)

type Cmd struct {
	Input  string `arg:"" help:"TypeScript file containing the interfaces."`
	Out    string `arg:"" help:"Output directory for the Elm module."`
	Watch  bool   `help:"Watch the input file and regenerate on change." short:"w"`
	Strict bool   `help:"Fail on unsupported decoders and duplicate declarations."`
}

func (c *Cmd) Run(ctx context.Context, log *zap.Logger, opts *options.Options) error {
	cfg, err := opts.Load()
	if err != nil {
		return err
	}

	err = c.generate(ctx, log, cfg)
	if !c.Watch || errors.Is(err, elmgen.ErrUsage) {
		return err
	}
	if err != nil {
		log.Error("Error while generating Elm types", zap.Error(err))
	}

	w, err := watch.New(c.Input, watch.DefaultDebounce, log)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info("Watching for changes", zap.String("input", c.Input))
	return w.Run(ctx, func(ctx context.Context) error {
		return c.generate(ctx, log, cfg)
	})
}

func (c *Cmd) generate(ctx context.Context, log *zap.Logger, cfg elmgen.Config) error {
	log.Info("Generate Elm type from typescript interfaces...")
	log.Info("> Input file", zap.String("path", c.Input))
	log.Info("> Output file", zap.String("path", filepath.Join(c.Out, filepath.FromSlash(elm.ModulePath(cfg.Module)))))

	g := elmgen.FromFile(c.Input).WithConfig(cfg)
	if c.Strict {
		g = g.Strict()
	}
	res, err := g.ToDir(ctx, c.Out)
	if err != nil {
		return err
	}

	logging.Warnings(log, res.Warnings)
	log.Info("Generation successful!", zap.Int("declarations", res.Declarations))
	return nil
}
