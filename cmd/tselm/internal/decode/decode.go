package decode

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tselm/cmd/tselm/internal/options"
	"github.com/broady/tselm/elmgen"
	"github.com/broady/tselm/elmgen/elm"
	"github.com/broady/tselm/internal/logging"
)

// ErrDecodeFailed is returned when the payload produced the error variant.
var ErrDecodeFailed = errors.New("payload did not decode")

type Cmd struct {
	Input       string `arg:"" help:"TypeScript file containing the interfaces."`
	Declaration string `arg:"" help:"Declaration to decode, by TypeScript or Elm name."`
	Payload     string `arg:"" optional:"" help:"JSON payload file (default: stdin)."`

	Stdin  io.Reader `kong:"-"`
	Stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(ctx context.Context, log *zap.Logger, opts *options.Options) error {
	cfg, err := opts.Load()
	if err != nil {
		return err
	}

	bindings, warnings, err := elmgen.FromFile(c.Input).WithConfig(cfg).Bindings(ctx)
	if err != nil {
		return err
	}
	logging.Warnings(log, warnings)
	b := elm.Lookup(bindings, c.Declaration)
	if b == nil {
		names := make([]string, len(bindings))
		for i, b := range bindings {
			names[i] = b.Declaration.Name
		}
		return errors.WithHintf(
			errors.Newf("no declaration named %q in %s", c.Declaration, c.Input),
			"declarations: %s", strings.Join(names, ", "))
	}

	payload, err := c.readPayload()
	if err != nil {
		return err
	}
	log.Debug("Decoding payload", zap.String("decoder", b.Decoder), zap.Int("bytes", len(payload)))

	out := c.Stdout
	if out == nil {
		out = os.Stdout
	}
	msg := b.Record.Run(payload)
	fmt.Fprintln(out, msg.String())
	if !msg.OK() {
		return ErrDecodeFailed
	}
	return nil
}

func (c *Cmd) readPayload() ([]byte, error) {
	if c.Payload != "" && c.Payload != "-" {
		data, err := os.ReadFile(c.Payload)
		return data, errors.Wrapf(err, "read payload %s", c.Payload)
	}
	in := c.Stdin
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	return data, errors.Wrap(err, "read payload from stdin")
}
