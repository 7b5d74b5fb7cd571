package elmgen

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/broady/tselm/elmgen/decode"
	"github.com/broady/tselm/elmgen/elm"
)

var (
	validate      = validator.New(validator.WithRequiredStructEnabled())
	schemaDecoder = schema.NewDecoder()

	elmUpperPattern  = regexp.MustCompile(`^\p{Lu}[\p{L}\p{N}_]*$`)
	elmLowerPattern  = regexp.MustCompile(`^\p{Ll}[\p{L}\p{N}_]*$`)
	elmModulePattern = regexp.MustCompile(`^\p{Lu}[\p{L}\p{N}_]*(\.\p{Lu}[\p{L}\p{N}_]*)*$`)
)

func init() {
	schemaDecoder.SetAliasTag("yaml")
	schemaDecoder.IgnoreUnknownKeys(false)

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister("elmupper", elmUpperPattern)
	mustRegister("elmlower", elmLowerPattern)
	mustRegister("elmmodule", elmModulePattern)
	if err := validate.RegisterValidation("elmbinding", func(fl validator.FieldLevel) bool {
		return !elm.ReservedValueName(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

func mustRegister(tag string, pattern *regexp.Regexp) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Config holds the configuration for code generation. It is fixed at
// process start: defaults, then a YAML file, then key=value overrides.
type Config struct {
	// Module is the generated port module name; it also names the output
	// file (Ports.Generated is written to Ports/Generated.elm).
	Module string `yaml:"module" validate:"required,elmmodule"`

	// MsgType is the message union every decoder produces.
	MsgType string `yaml:"msg_type" validate:"required,elmupper"`

	// VariantPrefix is prepended to declaration names to form union variants.
	VariantPrefix string `yaml:"variant_prefix" validate:"required,elmupper"`

	// ErrorVariant carries decoding failures.
	ErrorVariant string `yaml:"error_variant" validate:"required,elmupper"`

	// Subscriptions names the aggregator batching every port.
	// It must not be a keyword or a decoder's local name.
	Subscriptions string `yaml:"subscriptions" validate:"required,elmlower,elmbinding"`

	// DecoderPrefix is prepended to declaration names to form decoder functions.
	DecoderPrefix string `yaml:"decoder_prefix" validate:"required,elmlower"`

	// PortPrefix is prepended to declaration names to form port names.
	// It must differ from DecoderPrefix.
	PortPrefix string `yaml:"port_prefix" validate:"required,elmlower,nefield=DecoderPrefix"`

	// Sequence selects the Elm collection for TypeScript arrays.
	// Supported values: "array" (Array T), "list" (List T).
	Sequence string `yaml:"sequence" validate:"oneof=array list"`

	// SourceSuffix is the suffix input files must carry.
	SourceSuffix string `yaml:"source_suffix" validate:"required,startswith=."`

	// Banner emits a generated-code comment above the module header.
	Banner bool `yaml:"banner"`

	// Comments emits declaration JSDoc as Elm doc comments.
	Comments bool `yaml:"comments"`

	// ObjectTypeAliases also collects `type X = { ... }` declarations.
	ObjectTypeAliases bool `yaml:"object_type_aliases"`

	// Strict turns unsupported_decoder and duplicate_declaration warnings
	// into errors.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	n := elm.DefaultNaming()
	return Config{
		Module:        n.Module,
		MsgType:       n.MsgType,
		VariantPrefix: n.VariantPrefix,
		ErrorVariant:  n.ErrorVariant,
		Subscriptions: n.Subscriptions,
		DecoderPrefix: n.DecoderPrefix,
		PortPrefix:    n.PortPrefix,
		Sequence:      decode.SequenceArray.String(),
		SourceSuffix:  ".ts",
		Banner:        true,
		Comments:      true,
	}
}

// LoadConfig reads a YAML configuration file from fs. Keys it does not set
// keep their default values; unknown keys are an error.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.WithHint(
			errors.Wrapf(err, "parse config %s", path),
			"valid keys: "+strings.Join(configKeys(), ", "))
	}
	return cfg, nil
}

// ApplyOverrides sets configuration keys from key=value pairs, as given by
// repeated -D flags. Keys are the YAML key names.
func (c *Config) ApplyOverrides(overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}
	values := make(url.Values, len(overrides))
	for k, v := range overrides {
		values.Set(k, v)
	}
	if err := schemaDecoder.Decode(c, values); err != nil {
		return errors.WithHint(
			errors.Wrap(err, "apply overrides"),
			"valid keys: "+strings.Join(configKeys(), ", "))
	}
	return nil
}

// Validate checks every key. Each failure names the key and carries a hint.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return errors.Wrap(err, "validate config")
	}
	messages := make([]string, 0, len(valErrs))
	hints := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
		hints = append(hints, fmt.Sprintf("set %s in the config file or with -D %s=...", ve.Field(), ve.Field()))
	}
	return errors.WithHint(
		errors.Newf("invalid config: %s", strings.Join(messages, "; ")),
		strings.Join(hints, "\n"))
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", ve.Param())
	case "elmupper":
		return fmt.Sprintf("%q is not an Elm type name (upper-case letter first)", ve.Value())
	case "elmlower":
		return fmt.Sprintf("%q is not an Elm value name (lower-case letter first)", ve.Value())
	case "elmmodule":
		return fmt.Sprintf("%q is not an Elm module name", ve.Value())
	case "elmbinding":
		return fmt.Sprintf("%q is reserved in the generated module", ve.Value())
	case "nefield":
		return "must differ from " + configKey(ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// configKey returns the YAML key of the named Config field.
func configKey(field string) string {
	f, ok := reflect.TypeOf(Config{}).FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	return name
}

// configKeys lists the YAML keys of Config, sorted.
func configKeys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// generatorConfig converts the configuration for the Elm generator.
func (c Config) generatorConfig(source string) (elm.GeneratorConfig, error) {
	seq, err := decode.ParseSequence(c.Sequence)
	if err != nil {
		return elm.GeneratorConfig{}, err
	}
	gc := elm.GeneratorConfig{
		Naming: elm.Naming{
			Module:        c.Module,
			MsgType:       c.MsgType,
			VariantPrefix: c.VariantPrefix,
			ErrorVariant:  c.ErrorVariant,
			Subscriptions: c.Subscriptions,
			DecoderPrefix: c.DecoderPrefix,
			PortPrefix:    c.PortPrefix,
		},
		Sequence:     seq,
		EmitComments: c.Comments,
	}
	if c.Banner {
		gc.Banner = "Generated by tselm from " + source + ". DO NOT EDIT."
	}
	return gc, nil
}
