package history

import (
	"github.com/vcrobe/hobbit/pathmatch"
)

// DefaultHashbangPrefix is prepended to the fragment in hashbanged mode.
const DefaultHashbangPrefix = "#!"

// Config is read once by New and never changes afterwards.
type Config struct {
	// Hashbanged selects fragment routing instead of native path routing.
	Hashbanged bool `koanf:"hashbanged"`
	// HashbangPrefix defaults to DefaultHashbangPrefix.
	HashbangPrefix string `koanf:"hashbang_prefix" validate:"omitempty,startswith=#"`
	// Location seeds the initial location from a path without touching the browser.
	Location string `koanf:"location" validate:"omitempty,startswith=/"`
	// InitialLocation seeds the initial location as-is and wins over Location.
	InitialLocation *Location `koanf:"-"`
}

func (c Config) withDefaults() Config {
	if c.HashbangPrefix == "" {
		c.HashbangPrefix = DefaultHashbangPrefix
	}

	return c
}

// Mode is the routing mode selected at construction.
type Mode int

const (
	ModePathBased Mode = iota
	ModeHashbanged
)

func (m Mode) String() string {
	if m == ModeHashbanged {
		return "hashbanged"
	}

	return "pathbased"
}

// Browser events the manager resynchronises on.
const (
	EventPopState   = "popstate"
	EventHashChange = "hashchange"
)

// event returns the browser event that signals an external URL change in this mode.
func (m Mode) event() string {
	if m == ModeHashbanged {
		return EventHashChange
	}

	return EventPopState
}

// MatchOptions control Compare and ExtractParams. The zero value is a full, case
// sensitive match with an optional trailing slash.
type MatchOptions = pathmatch.Options

// NavigateOptions configure Navigate.
type NavigateOptions struct {
	// Params resolve the named parameters of the pattern and become the history state.
	Params map[string]string
	// Sender tags the navigation in the resulting location.
	Sender string
	// Force navigates even when the resolved path equals the current one.
	Force bool
	// Replace replaces the current history entry instead of pushing a new one.
	Replace bool
}

// PureOptions configure NavigatePure.
type PureOptions struct {
	Sender  string
	Replace bool
	// Pattern recorded in the location, defaults to the path.
	Pattern string
}

type Option func(*History)

// WithWindow sets the browser collaborator. Without it, or with a nil window, the
// manager behaves as if it ran outside a browser.
func WithWindow(w Window) Option {
	return func(h *History) {
		h.window = w
	}
}

// WithMatcherCache shares a compiled pattern cache between managers.
func WithMatcherCache(cache *pathmatch.Cache) Option {
	return func(h *History) {
		if cache != nil {
			h.matchers = cache
		}
	}
}
