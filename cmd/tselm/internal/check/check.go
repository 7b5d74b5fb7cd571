package check

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tselm/cmd/tselm/internal/options"
	"github.com/broady/tselm/elmgen"
)

// ErrStale is returned when a generated file is missing or out of date.
var ErrStale = errors.New("generated files are out of date")

type Cmd struct {
	Input  string `arg:"" help:"TypeScript file containing the interfaces."`
	Out    string `arg:"" help:"Directory holding the generated Elm module."`
	Strict bool   `help:"Fail on unsupported decoders and duplicate declarations."`
}

func (c *Cmd) Run(ctx context.Context, log *zap.Logger, opts *options.Options) error {
	cfg, err := opts.Load()
	if err != nil {
		return err
	}

	g := elmgen.FromFile(c.Input).WithConfig(cfg)
	if c.Strict {
		g = g.Strict()
	}
	results, err := g.Check(ctx, c.Out)
	if err != nil {
		return err
	}

	stale := 0
	for _, r := range results {
		switch {
		case r.UpToDate:
			log.Info("Up to date", zap.String("path", r.Path))
		case r.Missing:
			log.Error("Missing", zap.String("path", r.Path))
			stale++
		default:
			log.Error("Out of date", zap.String("path", r.Path))
			fmt.Fprintf(os.Stdout, "--- %s (-disk +generated)\n%s", r.Path, r.Diff)
			stale++
		}
	}
	if stale > 0 {
		return errors.WithHintf(
			errors.Wrapf(ErrStale, "%d of %d", stale, len(results)),
			"run: tselm gen %s %s", c.Input, c.Out)
	}
	return nil
}
