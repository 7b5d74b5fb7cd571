// Package logging builds the zap logger used by the tselm command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/broady/tselm/elmgen/ir"
)

// Options configures New.
type Options struct {
	// JSON selects structured JSON output instead of the console encoder.
	JSON bool

	// Level is the minimum level: debug, info, warn or error (default: info).
	Level string

	// Output receives log lines (default: os.Stderr).
	Output io.Writer
}

// New returns a logger for opts.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		// Console output is read by people running a one-shot command;
		// timestamps and callers are noise there.
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.NameKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), level)), nil
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return level, errors.WithHint(
			errors.Wrapf(err, "invalid log level %q", s),
			"use one of: debug, info, warn, error")
	}
	return level, nil
}

// Warnings logs each generation warning at warn level.
func Warnings(log *zap.Logger, warnings []ir.Warning) {
	for _, w := range warnings {
		fields := []zap.Field{zap.String("code", w.Code)}
		if w.Declaration != "" {
			fields = append(fields, zap.String("declaration", w.Declaration))
		}
		if w.Field != "" {
			fields = append(fields, zap.String("field", w.Field))
		}
		if w.Source != nil && !w.Source.IsZero() {
			fields = append(fields, zap.Stringer("source", w.Source))
		}
		log.Warn(w.Message, fields...)
	}
}
