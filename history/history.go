// Package history keeps the application's current location in sync with the browser,
// either through the native history API or through a hash-bang fragment.
package history

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/pathmatch"
)

// ErrReplaceUnsupported is logged when a replace navigation is requested without a
// native history API. The location is still updated in memory.
var ErrReplaceUnsupported = errors.New("the replace option is not available for browsers not supporting the HTML5 history API")

// base resolves relative hrefs, the way an anchor element resolves its href.
var base = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

var sharedMatchers = pathmatch.NewCache(0)

// History owns the current location and writes navigations through to the browser.
type History struct {
	mu           sync.RWMutex
	conf         Config
	mode         Mode
	window       Window
	supported    bool
	location     Location
	matchers     *pathmatch.Cache
	removeResync func()
}

// New builds the manager. The initial location comes from the configuration when one is
// given and from the browser URL otherwise; the browser is never navigated here.
// Missing browser support is logged and downgrades navigation to full page loads.
func New(conf Config, opts ...Option) *History {
	h := &History{
		conf:     conf.withDefaults(),
		matchers: sharedMatchers,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.conf.Hashbanged {
		h.mode = ModeHashbanged
	}

	h.supported = checkSupport(h.window)

	switch {
	case h.conf.InitialLocation != nil:
		h.location = h.conf.InitialLocation.Clone()
	case h.conf.Location != "":
		h.location = locationFromString(h.conf.Location, h.conf)
	default:
		h.SetLocationFromHref()
	}

	if h.window != nil {
		h.removeResync = h.window.AddEventListener(h.mode.event(), h.SetLocationFromHref)
	}

	return h
}

// checkSupport probes the environment once. A nil window stands for a non-browser
// context such as a server-side render.
func checkSupport(w Window) bool {
	if w == nil {
		console.Warn("The history API was executed outside a browser. If this is expected, " +
			"for example when rendering on the server, set the location manually to display the intended content.")

		return false
	}

	if !w.SupportsHistory() {
		console.Warn("The browser does not support the HTML5 history API. " +
			"Navigation will reload the page instead of navigating smoothly.")

		return false
	}

	return true
}

// SetLocationFromHref rebuilds the location from the URL in the address bar. It is the
// listener bound to popstate (path mode) or hashchange (hashbanged mode).
func (h *History) SetLocationFromHref() {
	if h.window == nil {
		h.setLocation(locationFromString("/", h.conf))

		return
	}

	loc := h.parseHref(h.window.Href())

	if h.supported {
		if state := h.window.State(); state != nil {
			loc.Params = cloneParams(state)
		}
	}

	h.setLocation(loc)
}

func (h *History) parseHref(href string) Location {
	ref, err := url.Parse(href)
	if err != nil {
		console.Warn("Could not parse the browser URL", href, "falling back to /:", err.Error())

		return locationFromString("/", h.conf)
	}

	resolved := base.ResolveReference(ref)

	var path, query string

	if h.mode == ModeHashbanged {
		hash := ""
		if fragment := resolved.EscapedFragment(); fragment != "" {
			hash = "#" + fragment
		}

		if strings.HasPrefix(hash, h.conf.HashbangPrefix) {
			path = strings.TrimPrefix(hash, h.conf.HashbangPrefix)
		} else {
			path = strings.TrimPrefix(hash, "#")
		}

		// the query of the fragment stays in the URL only
		path, query, _ = strings.Cut(path, "?")
	} else {
		path = resolved.EscapedPath()
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	loc := locationFromString(path, h.conf)
	if query != "" {
		loc.URL += "?" + query
	}

	return loc
}

func (h *History) setLocation(loc Location) {
	h.mu.Lock()
	h.location = loc
	h.mu.Unlock()
}

// Location returns a copy of the current location.
func (h *History) Location() Location {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.location.Clone()
}

// State returns the state of the current browser history entry, or an empty map when
// there is none or the history API is unavailable.
func (h *History) State() map[string]string {
	if !h.supported {
		return map[string]string{}
	}

	return cloneParams(h.window.State())
}

// ExtractParams matches pattern against the current path and returns the captured
// parameters. The boolean is false when the pattern does not match.
func (h *History) ExtractParams(pattern string, opts MatchOptions) (map[string]string, bool, error) {
	m, err := h.matchers.Compile(pattern, opts)
	if err != nil {
		return nil, false, err
	}

	params, ok := m.Params(h.currentPath())

	return params, ok, nil
}

// Compare reports whether pattern matches the current path. Outside loose mode the
// consumed segment must reproduce the whole path.
func (h *History) Compare(pattern string, opts MatchOptions) (bool, error) {
	m, err := h.matchers.Compile(pattern, opts)
	if err != nil {
		return false, err
	}

	path := h.currentPath()

	match, ok := m.Exec(path)
	if !ok {
		return false, nil
	}

	if opts.Loose {
		return true, nil
	}

	if opts.IgnoreCase {
		return strings.EqualFold(match.Segment, path), nil
	}

	return match.Segment == path, nil
}

func (h *History) currentPath() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.location.Path
}

// Navigate resolves pattern with opts.Params and navigates to the resulting path.
// Navigating to the current path is a no-op unless opts.Force is set.
func (h *History) Navigate(pattern string, opts NavigateOptions) error {
	m, err := h.matchers.Compile(pattern, MatchOptions{})
	if err != nil {
		return err
	}

	path, err := m.Reverse(opts.Params)
	if err != nil {
		return err
	}

	if !opts.Force && path == h.currentPath() {
		console.Log("[History.Navigate] already at", path)

		return nil
	}

	h.NavigatePure(path, cloneParams(opts.Params), PureOptions{
		Sender:  opts.Sender,
		Replace: opts.Replace,
		Pattern: pattern,
	})

	return nil
}

// NavigatePure navigates to a concrete path, storing state in the history entry.
// The location always changes; the browser write depends on the available support.
func (h *History) NavigatePure(path string, state map[string]string, opts PureOptions) {
	href := path
	if h.mode == ModeHashbanged {
		href = h.conf.HashbangPrefix + path
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = path
	}

	h.setLocation(Location{
		Path:    path,
		URL:     href,
		Pattern: pattern,
		Params:  cloneParams(state),
		Sender:  opts.Sender,
	})

	console.Log("[History.NavigatePure] navigating to", href)

	switch {
	case h.supported && opts.Replace:
		h.window.ReplaceState(cloneParams(state), href)
	case h.supported:
		h.window.PushState(cloneParams(state), href)
	case opts.Replace:
		console.Warn(ErrReplaceUnsupported.Error())
	case h.window != nil:
		h.window.SetHref(href)
	default:
		console.Log("[History.NavigatePure] no browser to navigate, location updated in memory only")
	}
}

// Listen registers fn for the event that signals an external URL change in the
// manager's mode: hashchange when hashbanged, popstate otherwise.
func (h *History) Listen(fn func()) (remove func()) {
	if h.window == nil {
		return func() {}
	}

	return h.window.AddEventListener(h.mode.event(), fn)
}

// Close removes the listener registered by New.
func (h *History) Close() {
	h.mu.Lock()
	remove := h.removeResync
	h.removeResync = nil
	h.mu.Unlock()

	if remove != nil {
		remove()
	}
}

// Config returns the effective configuration.
func (h *History) Config() Config { return h.conf }

// Mode returns the routing mode.
func (h *History) Mode() Mode { return h.mode }

// Supported reports whether the native history API is used.
func (h *History) Supported() bool { return h.supported }
