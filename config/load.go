package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Load builds the configuration and validates it.
//
// Environment variables map to keys by dropping the prefix, lowering the case and
// turning "_" into the key delimiter; "__" stands for a literal underscore:
// HOBBIT_ROUTER_HASHBANG__PREFIX sets router.hashbang_prefix.
func Load(options ...Option) (Config, error) {
	o := opts{envPrefix: DefaultEnvPrefix}

	for _, opt := range options {
		opt(&o)
	}

	parser := koanf.New(".")

	if err := parser.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, errors.Wrap(err, "failed to load the default configuration")
	}

	data, source, err := o.document()
	if err != nil {
		return Config{}, err
	}

	if len(data) != 0 {
		if err := parser.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "failed to parse yaml config from %s", source)
		}
	}

	if err := parser.Load(env.Provider(".", env.Opt{
		Prefix:        o.envPrefix,
		TransformFunc: envKey(o.envPrefix),
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse environment variables to config")
	}

	var conf Config

	if err := parser.UnmarshalWithConf("", &conf, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &conf,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode the configuration")
	}

	if err := Validate(conf); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func (o opts) document() ([]byte, string, error) {
	if len(o.data) != 0 {
		return o.data, "inline document", nil
	}

	if len(o.file) == 0 {
		return nil, "", nil
	}

	data, err := os.ReadFile(o.file)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to read config file %s", o.file)
	}

	return data, o.file, nil
}

func envKey(prefix string) func(key, val string) (string, any) {
	return func(key, val string) (string, any) {
		tmp := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", `\:\`)
		tmp = strings.ReplaceAll(tmp, "_", ".")

		return strings.ReplaceAll(tmp, `\:\`, "_"), val
	}
}
