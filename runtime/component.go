package runtime

import "github.com/vcrobe/hobbit/vdom"

// Component interface defines the structure for all components in the framework.
// This interface has NO build tags, making it available to both WASM and native test builds.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	// The renderer parameter provides access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the framework to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// ComponentFactory builds a component from route parameters. The router calls it when
// a factory is the payload of a matched route.
type ComponentFactory func(params map[string]string) Component

// Initializer is implemented by components that need to run code once, before their
// first render.
type Initializer interface {
	OnInit()
}

// Cleaner is implemented by components that release resources when they leave the tree.
type Cleaner interface {
	OnDestroy()
}

// PropUpdater lets a preserved instance take the props of the freshly built instance
// rendered at the same key.
type PropUpdater interface {
	ApplyProps(source Component)
}
