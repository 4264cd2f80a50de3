// Package router maps the current location to renderable payloads and exposes the
// navigation helpers views call. A Router wraps exactly one history manager; it is
// created by the application entry point and passed to the views that route.
package router

import (
	"maps"
	"sync"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
)

// Router holds the history manager of the application. The zero value is a valid,
// uninitialized router: every call fails with ErrRouterNotInitialized until
// CreateRouter.
type Router struct {
	mu        sync.RWMutex
	manager   *history.History
	requester RedrawRequester
}

type Option func(*Router)

// WithRedrawRequester sets the collaborator descriptors ask for redraws. Without it a
// descriptor asks the renderer it is mounted on.
func WithRedrawRequester(rr RedrawRequester) Option {
	return func(r *Router) {
		r.requester = rr
	}
}

// New returns an uninitialized router.
func New(opts ...Option) *Router {
	r := &Router{}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// CreateRouter builds a new history manager and replaces the previous one, which is
// closed.
func (r *Router) CreateRouter(conf history.Config, opts ...history.Option) *history.History {
	manager := history.New(conf, opts...)

	r.mu.Lock()
	previous := r.manager
	r.manager = manager
	r.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	return manager
}

// ResetRouter discards the history manager. The router is uninitialized afterwards.
func (r *Router) ResetRouter() {
	r.mu.Lock()
	previous := r.manager
	r.manager = nil
	r.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
}

func (r *Router) get(op string) (*history.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.manager == nil {
		return nil, &NotInitializedError{Op: op}
	}

	return r.manager, nil
}

// History returns the history manager.
func (r *Router) History() (*history.History, error) {
	return r.get("History")
}

// Match walks routes in order and describes the first entry whose pattern matches the
// current location. It returns nil when nothing matches or when the matching payload
// is not renderable.
func (r *Router) Match(routes Routes, opts history.MatchOptions) (*RenderDescriptor, error) {
	manager, err := r.get("Match")
	if err != nil {
		return nil, err
	}

	if routes == nil {
		return nil, nil
	}

	for _, entry := range routes.entries() {
		matched := entry.fallback()

		if !matched {
			if matched, err = manager.Compare(entry.Pattern, opts); err != nil {
				return nil, err
			}
		}

		if !matched {
			continue
		}

		if !IsRenderable(entry.Payload) {
			console.Warn("[Router.Match] route", entry.Pattern, "matched, but its payload cannot be rendered")

			return nil, nil
		}

		var extracted map[string]string

		if !entry.fallback() {
			if extracted, _, err = manager.ExtractParams(entry.Pattern, opts); err != nil {
				return nil, err
			}
		}

		console.Log("[Router.Match] matched", entry.Pattern)

		return r.describe(manager, entry, manager.Location(), merge(manager.State(), extracted, entry.Params)), nil
	}

	return nil, nil
}

// WithLocation describes component whatever the match outcome. The location and the
// params carry the parameters extracted with pattern, or none when it does not match.
func (r *Router) WithLocation(pattern string, component Renderable, opts history.MatchOptions) (*RenderDescriptor, error) {
	manager, err := r.get("WithLocation")
	if err != nil {
		return nil, err
	}

	extracted := map[string]string{}

	if pattern != "" && pattern != Fallback {
		params, ok, err := manager.ExtractParams(pattern, opts)
		if err != nil {
			return nil, err
		}

		if ok {
			extracted = params
		}
	}

	loc := manager.Location()
	loc.Params = extracted

	return r.describe(manager, Entry{Pattern: pattern, Payload: component}, loc, maps.Clone(extracted)), nil
}

func (r *Router) describe(manager *history.History, entry Entry, loc history.Location, params map[string]string) *RenderDescriptor {
	return &RenderDescriptor{
		Pattern:   entry.Pattern,
		Payload:   entry.Payload,
		Location:  loc,
		Params:    params,
		Attrs:     maps.Clone(entry.Params),
		id:        descriptorIDs.Add(1),
		manager:   manager,
		requester: r.requester,
	}
}

// Navigate resolves route with params and navigates to it. opts.Params is ignored.
func (r *Router) Navigate(route string, params map[string]string, opts history.NavigateOptions) error {
	manager, err := r.get("Navigate")
	if err != nil {
		return err
	}

	opts.Params = params

	return manager.Navigate(route, opts)
}

// Location returns the current location.
func (r *Router) Location() (history.Location, error) {
	manager, err := r.get("Location")
	if err != nil {
		return history.Location{}, err
	}

	return manager.Location(), nil
}

func merge(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)

	for _, layer := range layers {
		maps.Copy(merged, layer)
	}

	return merged
}
