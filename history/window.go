package history

// Window is the slice of the browser the manager depends on: the address bar, the
// native history API and the window event target.
type Window interface {
	// Href returns the absolute URL currently shown in the address bar.
	Href() string
	// SetHref performs a full page navigation to url.
	SetHref(url string)
	// SupportsHistory reports whether pushState and replaceState are available.
	SupportsHistory() bool
	// PushState adds a history entry. The title argument of the browser API is
	// always empty and therefore not part of the interface.
	PushState(state map[string]string, url string)
	// ReplaceState replaces the current history entry.
	ReplaceState(state map[string]string, url string)
	// State returns the state of the current history entry, nil when there is none.
	State() map[string]string
	// AddEventListener registers fn for event and returns the function removing it.
	AddEventListener(event string, fn func()) (remove func())
}
