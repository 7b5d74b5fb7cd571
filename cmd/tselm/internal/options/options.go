// Package options holds the configuration flags shared by tselm commands.
package options

import (
	"github.com/spf13/afero"

	"github.com/broady/tselm/elmgen"
)

// Options are the global configuration flags.
type Options struct {
	Config string            `help:"YAML configuration file." short:"c" placeholder:"FILE"`
	Define map[string]string `help:"Override a configuration key (repeatable)." short:"D" placeholder:"KEY=VALUE"`

	// Fs is the filesystem the config file is read from (default: the OS filesystem).
	Fs afero.Fs `kong:"-"`
}

// Load resolves the configuration: defaults, then the config file, then
// -D overrides. The result is validated.
func (o *Options) Load() (elmgen.Config, error) {
	cfg := elmgen.DefaultConfig()
	if o.Config != "" {
		fs := o.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		var err error
		if cfg, err = elmgen.LoadConfig(fs, o.Config); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyOverrides(o.Define); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
