//go:build js && wasm

package vdom

import (
	"fmt"
	"syscall/js"

	"github.com/vcrobe/hobbit/console"
)

// callbacks holds the click handlers of the tree currently in the document.
var callbacks []js.Func

// RenderToSelector replaces the content of the first element matching the CSS selector
// with the rendered node.
func RenderToSelector(selector string, n *VNode) {
	if selector == "" {
		return
	}
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return
	}
	mount := doc.Call("querySelector", selector)
	if !mount.Truthy() {
		console.Error("Mount element not found for selector:", selector)
		return
	}
	RenderTo(mount, n)
}

// RenderTo replaces the children of mount with the rendered node.
func RenderTo(mount js.Value, n *VNode) {
	mount.Set("textContent", "")
	releaseCallbacks()

	if n == nil {
		return
	}
	el := createElement(js.Global().Get("document"), n)
	if el.Truthy() {
		mount.Call("appendChild", el)
	}
}

func releaseCallbacks() {
	for _, cb := range callbacks {
		cb.Release()
	}
	callbacks = nil
}

func createElement(doc js.Value, n *VNode) js.Value {
	if n.Tag == "" {
		return doc.Call("createTextNode", n.Content)
	}

	el := doc.Call("createElement", n.Tag)
	for k, v := range n.Attributes {
		switch v := v.(type) {
		case string:
			el.Call("setAttribute", k, v)
		case bool:
			if v {
				el.Call("setAttribute", k, "")
			}
		case int, int64, float64:
			el.Call("setAttribute", k, fmt.Sprint(v))
		default:
			// structured props such as the route location stay on the Go side
		}
	}

	if n.Content != "" {
		if n.Tag == "input" {
			el.Set("value", n.Content)
		} else {
			el.Set("textContent", n.Content)
		}
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		el.Call("appendChild", createElement(doc, child))
	}

	if n.OnClick != nil {
		onClick := n.OnClick
		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			onClick()
			return nil
		})
		callbacks = append(callbacks, cb)
		el.Call("addEventListener", "click", cb)
	}
	return el
}
