//go:build js && wasm

package browser

import (
	"sync"
	"syscall/js"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
)

var _ history.Window = (*Window)(nil)

// Window wraps the global window object.
type Window struct {
	window js.Value
}

// Current returns the global window, or nil when the wasm module does not run in a
// browser document. A nil result is the "no window" case of history.New.
func Current() history.Window {
	global := js.Global().Get("window")
	if global.IsUndefined() || global.IsNull() || global.Get("document").IsUndefined() {
		return nil
	}

	return &Window{window: global}
}

func (w *Window) Href() string {
	return w.window.Get("location").Get("href").String()
}

func (w *Window) SetHref(url string) {
	w.window.Get("location").Set("href", url)
}

func (w *Window) SupportsHistory() bool {
	h := w.window.Get("history")
	if h.IsUndefined() || h.IsNull() {
		return false
	}

	return h.Get("pushState").Type() == js.TypeFunction
}

func (w *Window) PushState(state map[string]string, url string) {
	w.window.Get("history").Call("pushState", toObject(state), js.Null(), url)
}

func (w *Window) ReplaceState(state map[string]string, url string) {
	w.window.Get("history").Call("replaceState", toObject(state), js.Null(), url)
}

// State reads history.state. Non-string values are stringified.
func (w *Window) State() map[string]string {
	state := w.window.Get("history").Get("state")
	if state.Type() != js.TypeObject {
		return nil
	}

	keys := js.Global().Get("Object").Call("keys", state)
	result := make(map[string]string, keys.Length())

	for i := 0; i < keys.Length(); i++ {
		key := keys.Index(i).String()
		value := state.Get(key)

		if value.Type() == js.TypeString {
			result[key] = value.String()
		} else {
			result[key] = js.Global().Get("String").Invoke(value).String()
		}
	}

	return result
}

func (w *Window) AddEventListener(event string, fn func()) func() {
	callback := js.FuncOf(func(this js.Value, args []js.Value) any {
		console.Log("[Window]", event, "event fired")
		fn()

		return nil
	})
	w.window.Call("addEventListener", event, callback)

	var once sync.Once

	return func() {
		once.Do(func() {
			w.window.Call("removeEventListener", event, callback)
			callback.Release()
		})
	}
}

func toObject(state map[string]string) js.Value {
	object := make(map[string]any, len(state))
	for k, v := range state {
		object[k] = v
	}

	return js.ValueOf(object)
}
