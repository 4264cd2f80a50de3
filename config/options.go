package config

import "strings"

const DefaultEnvPrefix = "HOBBIT_"

type opts struct {
	file      string
	data      []byte
	envPrefix string
}

type Option func(*opts)

// WithFile loads the YAML document at path.
func WithFile(path string) Option {
	return func(o *opts) {
		if file := strings.TrimSpace(path); len(file) != 0 {
			o.file = file
		}
	}
}

// WithYAML loads data as the YAML document. It wins over WithFile.
func WithYAML(data []byte) Option {
	return func(o *opts) {
		if len(data) != 0 {
			o.data = data
		}
	}
}

// WithEnvPrefix changes the prefix of the environment variables read.
func WithEnvPrefix(prefix string) Option {
	return func(o *opts) {
		if len(prefix) != 0 {
			o.envPrefix = prefix
		}
	}
}
