package router

import (
	"maps"
	"strconv"
	"sync/atomic"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
	"github.com/vcrobe/hobbit/runtime"
	"github.com/vcrobe/hobbit/vdom"
)

// Attribute names set on a routed VNode.
const (
	AttrLocation = "location"
	AttrParams   = "params"
)

// RedrawRequester is the single call the router makes into the rendering engine.
type RedrawRequester interface {
	RequestRedraw()
}

// LocationReceiver is implemented by routed components that want the location and the
// merged route parameters before each render.
type LocationReceiver interface {
	SetLocation(loc history.Location, params map[string]string)
}

// descriptorIDs scopes the tree keys of routed children to the descriptor that owns
// them, so equal patterns in different parts of the view do not share an instance.
var descriptorIDs atomic.Uint64

var (
	_ runtime.Component   = (*RenderDescriptor)(nil)
	_ runtime.Initializer = (*RenderDescriptor)(nil)
	_ runtime.Cleaner     = (*RenderDescriptor)(nil)
	_ runtime.PropUpdater = (*RenderDescriptor)(nil)
)

// RenderDescriptor is the result of a route match and the wrapper node that keeps the
// view in sync with the URL: while mounted it requests a redraw on every browser
// navigation event of the history mode.
type RenderDescriptor struct {
	Pattern  string
	Payload  Renderable
	Location history.Location
	// Params are the history state, the extracted parameters and the route's explicit
	// params, merged in that order.
	Params map[string]string
	// Attrs are the route's explicit params.
	Attrs map[string]string

	id         uint64
	generation uint64
	manager    *history.History
	requester  RedrawRequester
	renderer   runtime.Renderer
	remove     func()
	instance   runtime.Component
}

// SetRenderer implements runtime.Component.
func (d *RenderDescriptor) SetRenderer(r runtime.Renderer) {
	d.renderer = r
}

// OnInit registers the redraw listener.
func (d *RenderDescriptor) OnInit() {
	if d.manager == nil || d.remove != nil {
		return
	}

	d.remove = d.manager.Listen(d.redraw)
}

// OnDestroy removes the redraw listener.
func (d *RenderDescriptor) OnDestroy() {
	if d.remove != nil {
		d.remove()
		d.remove = nil
	}
}

// ApplyProps takes the match result of a later render pass. The listener moves to the
// history manager of the result when the router was recreated in between. A component
// built by a factory is rebuilt when the params change, unless it receives them through
// LocationReceiver.
func (d *RenderDescriptor) ApplyProps(source runtime.Component) {
	next, ok := source.(*RenderDescriptor)
	if !ok || next == d {
		return
	}

	if next.manager != nil && next.manager != d.manager {
		listening := d.remove != nil

		d.OnDestroy()
		d.manager = next.manager

		if listening {
			d.OnInit()
		}
	}

	if next.Pattern != d.Pattern || (!maps.Equal(next.Params, d.Params) && !d.receivesLocation()) {
		d.instance = nil
	}

	d.Pattern = next.Pattern
	d.Payload = next.Payload
	d.Location = next.Location
	d.Params = next.Params
	d.Attrs = next.Attrs

	if next.requester != nil {
		d.requester = next.requester
	}
}

func (d *RenderDescriptor) receivesLocation() bool {
	_, ok := d.instance.(LocationReceiver)

	return ok
}

func (d *RenderDescriptor) redraw() {
	switch {
	case d.requester != nil:
		d.requester.RequestRedraw()
	case d.renderer != nil:
		d.renderer.RequestRedraw()
	default:
		console.Warn("[RenderDescriptor] navigation event received, but no renderer is attached")
	}
}

// Render renders the payload. Components get the location through LocationReceiver,
// factories are called once with the merged params and VNodes are cloned with the
// location, params and explicit route params as attributes.
func (d *RenderDescriptor) Render(r runtime.Renderer) *vdom.VNode {
	switch p := d.Payload.(type) {
	case *vdom.VNode:
		if p == nil {
			return nil
		}

		node := p.Clone()
		node.Attributes[AttrLocation] = d.Location.Clone()
		node.Attributes[AttrParams] = maps.Clone(d.Params)

		for k, v := range d.Attrs {
			node.Attributes[k] = v
		}

		return node
	case runtime.ComponentFactory:
		return d.renderComponent(r, func() runtime.Component { return p(maps.Clone(d.Params)) })
	case func(map[string]string) runtime.Component:
		return d.renderComponent(r, func() runtime.Component { return p(maps.Clone(d.Params)) })
	case runtime.Component:
		d.instance = p

		return d.renderComponent(r, nil)
	default:
		return nil
	}
}

func (d *RenderDescriptor) renderComponent(r runtime.Renderer, build func() runtime.Component) *vdom.VNode {
	if d.instance == nil {
		d.instance = build()

		// a new key remounts the instance, a PropUpdater takes the new one over instead
		if _, ok := d.instance.(runtime.PropUpdater); !ok {
			d.generation++
		}
	}

	if d.instance == nil {
		return nil
	}

	if receiver, ok := d.instance.(LocationReceiver); ok {
		receiver.SetLocation(d.Location.Clone(), maps.Clone(d.Params))
	}

	key := "route:" + strconv.FormatUint(d.id, 10) + ":" + strconv.FormatUint(d.generation, 10) + ":" + d.Pattern

	return r.RenderChild(key, d.instance)
}
