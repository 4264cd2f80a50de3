// Package config loads the hobbit configuration from struct defaults, an optional YAML
// document and HOBBIT_ prefixed environment variables, in that order of precedence.
package config

import (
	"github.com/rs/zerolog"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
	"github.com/vcrobe/hobbit/pathmatch"
)

// Route is a named route pattern. Params are the explicit params of the route.
type Route struct {
	Name    string            `koanf:"name"    validate:"required"`
	Pattern string            `koanf:"pattern" validate:"route_pattern"`
	Params  map[string]string `koanf:"params"`
}

type Config struct {
	Router history.Config    `koanf:"router"`
	Log    console.Config    `koanf:"log"`
	Match  pathmatch.Options `koanf:"match"`
	Routes []Route           `koanf:"routes" validate:"dive"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Router: history.Config{HashbangPrefix: history.DefaultHashbangPrefix},
		Log:    console.Config{Level: zerolog.InfoLevel, Format: console.TextFormat},
	}
}

// Route returns the route named name.
func (c Config) Route(name string) (Route, bool) {
	for _, r := range c.Routes {
		if r.Name == name {
			return r, true
		}
	}

	return Route{}, false
}
