// Package testcomponents provides an in-memory renderer and small components for
// testing views without a browser.
package testcomponents

import (
	"github.com/vcrobe/hobbit/runtime"
	"github.com/vcrobe/hobbit/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without browser or WASM dependencies.
//
// It captures VDOM output from component renders and allows tests to:
// - Mount components and run their lifecycle hooks
// - Trigger re-renders via StateHasChanged() or navigation events
// - Inspect the resulting VDOM tree and count redraws
type TestRenderer struct {
	tree    *runtime.Tree
	renders []*vdom.VNode
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{}
	r.tree = runtime.NewTree(comp, func(n *vdom.VNode) {
		r.renders = append(r.renders, n)
	})

	return r
}

// RenderRoot performs the initial render of the component.
// This should be called at the start of a test to get the initial VDOM.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	return r.tree.RenderRoot()
}

// RequestRedraw re-renders the component tree.
func (r *TestRenderer) RequestRedraw() {
	r.tree.RequestRedraw()
}

// RenderChild renders child through the underlying tree.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	return r.tree.RenderChild(key, child)
}

// Unmount destroys the component tree, running OnDestroy hooks.
func (r *TestRenderer) Unmount() {
	r.tree.Unmount()
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.tree.Current()
}

// Renders returns the number of render passes, the initial one included.
func (r *TestRenderer) Renders() int {
	return len(r.renders)
}

// Redraws returns the number of render passes after the initial one.
func (r *TestRenderer) Redraws() int {
	return max(len(r.renders)-1, 0)
}

// Mounted reports whether a component instance is alive at key.
func (r *TestRenderer) Mounted(key string) bool {
	return r.tree.Mounted(key)
}
