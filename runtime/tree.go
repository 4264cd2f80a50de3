package runtime

import (
	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/vdom"
)

const (
	rootKey = "__root__"

	// maxRenderPasses bounds the redraws requested while a render is in progress.
	maxRenderPasses = 8
)

// Compile-time assertion to ensure Tree implements the Renderer interface.
var _ Renderer = (*Tree)(nil)

// Tree is a Renderer that manages the component instance tree and its lifecycle.
// Each render pass hands the resulting VDOM to the mount function, which decides
// how it reaches the screen (DOM, string, test capture).
// A Tree is driven from a single goroutine, the UI event loop in wasm builds.
type Tree struct {
	root       Component
	mount      func(*vdom.VNode)
	instances  map[string]Component
	activeKeys map[string]bool
	current    *vdom.VNode
	rendering  bool
	pending    bool
	unmounted  bool
	passes     int
}

// NewTree creates a renderer for root. mount may be nil.
func NewTree(root Component, mount func(*vdom.VNode)) *Tree {
	return &Tree{
		root:       root,
		mount:      mount,
		instances:  make(map[string]Component),
		activeKeys: make(map[string]bool),
	}
}

// RenderRoot runs a render pass of the whole tree and returns the resulting VDOM.
// Redraws requested during the pass are coalesced into one more pass.
func (t *Tree) RenderRoot() *vdom.VNode {
	if t.unmounted || t.root == nil {
		return nil
	}

	if t.rendering {
		t.pending = true

		return t.current
	}

	t.rendering = true
	defer func() { t.rendering = false }()

	for pass := 0; ; pass++ {
		t.pending = false
		t.renderOnce()

		if !t.pending || t.unmounted {
			break
		}

		if pass+1 == maxRenderPasses {
			console.Warn("[Tree.RenderRoot] redraw requested on every pass, giving up after", maxRenderPasses, "passes")

			break
		}
	}

	return t.current
}

func (t *Tree) renderOnce() {
	t.activeKeys = make(map[string]bool)
	t.passes++

	newVDOM := t.RenderChild(rootKey, t.root)

	t.current = newVDOM
	if t.mount != nil {
		t.mount(newVDOM)
	}

	// Clean up components that were not rendered in this cycle
	t.cleanupUnmountedComponents()
}

// RenderChild renders a child component. The first instance seen at key is kept across
// passes; later instances only hand their props over when the kept one implements
// PropUpdater.
func (t *Tree) RenderChild(key string, childWithProps Component) *vdom.VNode {
	if childWithProps == nil {
		return nil
	}

	t.activeKeys[key] = true

	instance, exists := t.instances[key]
	if !exists {
		instance = childWithProps
		t.instances[key] = instance
	} else if updater, ok := instance.(PropUpdater); ok {
		updater.ApplyProps(childWithProps)
	}

	instance.SetRenderer(t)

	if !exists {
		if initializer, ok := instance.(Initializer); ok {
			call("OnInit", key, initializer.OnInit)
		}
	}

	return instance.Render(t)
}

// cleanupUnmountedComponents removes components that are no longer in the tree
// and calls their OnDestroy lifecycle method if they implement the Cleaner interface.
func (t *Tree) cleanupUnmountedComponents() {
	for key, instance := range t.instances {
		if t.activeKeys[key] {
			continue
		}

		if cleaner, ok := instance.(Cleaner); ok {
			call("OnDestroy", key, cleaner.OnDestroy)
		}

		delete(t.instances, key)
	}
}

// RequestRedraw re-runs the render cycle.
func (t *Tree) RequestRedraw() {
	t.RenderRoot()
}

// Unmount destroys every instance. Later redraw requests are ignored.
func (t *Tree) Unmount() {
	if t.unmounted {
		return
	}

	t.unmounted = true
	t.activeKeys = make(map[string]bool)
	t.cleanupUnmountedComponents()
	t.current = nil
}

// Current returns the VDOM of the last render pass.
func (t *Tree) Current() *vdom.VNode {
	return t.current
}

// Passes returns the number of render passes run so far.
func (t *Tree) Passes() int {
	return t.passes
}

// Mounted reports whether an instance is alive at key.
func (t *Tree) Mounted(key string) bool {
	_, ok := t.instances[key]

	return ok
}

// call invokes a lifecycle hook. Panics are recovered and logged so that one faulty
// component does not take the application down.
func call(hook, key string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("[Tree]", hook, "panic in component", key+":", rec)
		}
	}()

	fn()
}
