package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tselm/cmd/tselm/internal/check"
	"github.com/broady/tselm/cmd/tselm/internal/decode"
	"github.com/broady/tselm/cmd/tselm/internal/gen"
	"github.com/broady/tselm/cmd/tselm/internal/options"
	"github.com/broady/tselm/elmgen"
	"github.com/broady/tselm/internal/logging"
)

type CLI struct {
	Options options.Options `embed:""`

	LogJSON  bool   `help:"Log as JSON." name:"log-json"`
	LogLevel string `help:"Minimum log level (debug, info, warn, error)." name:"log-level" default:"info"`

	Gen     gen.Cmd    `cmd:"" default:"withargs" help:"Generate an Elm port module from TypeScript interfaces."`
	Check   check.Cmd  `cmd:"" help:"Fail when the generated Elm module is missing or out of date."`
	Decode  decode.Cmd `cmd:"" help:"Run a generated decoder against a JSON payload."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("tselm"),
		kong.Description("Generate Elm port modules from TypeScript interfaces."),
		kong.UsageOnError(),
	)

	log, err := logging.New(logging.Options{JSON: cli.LogJSON, Level: cli.LogLevel})
	kctx.FatalIfErrorf(err)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(log, &cli.Options)
	if err == nil {
		return
	}

	fields := []zap.Field{zap.Error(err)}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		fields = append(fields, zap.String("hint", strings.Join(hints, "\n")))
	}

	// A usage error leaves everything untouched, so the run is not a failure.
	if errors.Is(err, elmgen.ErrUsage) {
		log.Error("Invalid invocation", fields...)
		return
	}
	log.Error(failureMessage(kctx.Command()), fields...)
	log.Sync()
	os.Exit(1)
}

func failureMessage(command string) string {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "check":
		return "Check failed"
	case "decode":
		return "Error while decoding payload"
	default:
		return "Error while generating Elm types"
	}
}
