package router

import (
	"github.com/vcrobe/hobbit/runtime"
	"github.com/vcrobe/hobbit/vdom"
)

// Fallback is the catch-all pattern. It always matches, like the empty pattern.
const Fallback = "*"

// Renderable is the payload of a route: a runtime.Component, a runtime.ComponentFactory
// (or a plain func with the same signature) or a *vdom.VNode. Anything else is inert
// data and is never rendered.
type Renderable any

// IsRenderable reports whether payload can be rendered by a RenderDescriptor.
func IsRenderable(payload Renderable) bool {
	switch p := payload.(type) {
	case *vdom.VNode:
		return p != nil
	case runtime.ComponentFactory:
		return p != nil
	case func(map[string]string) runtime.Component:
		return p != nil
	case runtime.Component:
		return p != nil
	default:
		return false
	}
}

// Entry maps a pattern to its payload. Params are handed to the payload on top of the
// parameters extracted from the location.
type Entry struct {
	Pattern string
	Payload Renderable
	Params  map[string]string
}

func (e Entry) fallback() bool {
	return e.Pattern == "" || e.Pattern == Fallback
}

// Routes is the input of Match: a single Route or an ordered Table.
type Routes interface {
	entries() []Entry
}

// Table is an ordered route table. The first matching entry wins.
type Table []Entry

func (t Table) entries() []Entry { return t }

type single Entry

func (s single) entries() []Entry { return []Entry{Entry(s)} }

// Route builds a single route. Several params maps are merged, later ones winning.
func Route(pattern string, payload Renderable, params ...map[string]string) Routes {
	var merged map[string]string

	for _, p := range params {
		if merged == nil {
			merged = make(map[string]string, len(p))
		}

		for k, v := range p {
			merged[k] = v
		}
	}

	return single{Pattern: pattern, Payload: payload, Params: merged}
}
