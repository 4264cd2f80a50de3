package testcomponents

import (
	"maps"
	"slices"
	"strings"

	"github.com/vcrobe/hobbit/history"
	"github.com/vcrobe/hobbit/runtime"
	"github.com/vcrobe/hobbit/vdom"
)

// Page is a routed component that renders its name and route parameters and records
// its lifecycle.
type Page struct {
	runtime.ComponentBase

	Name      string
	Location  history.Location
	Params    map[string]string
	Inits     int
	Destroys  int
	Locations int
}

// NewPage returns a factory building pages named name, as a router payload.
func NewPage(name string) runtime.ComponentFactory {
	return func(params map[string]string) runtime.Component {
		return &Page{Name: name, Params: params}
	}
}

func (p *Page) SetLocation(loc history.Location, params map[string]string) {
	p.Location = loc
	p.Params = params
	p.Locations++
}

func (p *Page) OnInit()    { p.Inits++ }
func (p *Page) OnDestroy() { p.Destroys++ }

// Render renders "name k=v k=v" with the params sorted by key.
func (p *Page) Render(r runtime.Renderer) *vdom.VNode {
	parts := []string{p.Name}

	for _, k := range slices.Sorted(maps.Keys(p.Params)) {
		parts = append(parts, k+"="+p.Params[k])
	}

	return vdom.Paragraph(strings.Join(parts, " "), map[string]any{"data-page": p.Name})
}

// Shell is a root component that renders whatever its View function returns under key.
type Shell struct {
	runtime.ComponentBase

	Key  string
	View func() runtime.Component
}

func (s *Shell) Render(r runtime.Renderer) *vdom.VNode {
	child := s.View()
	if child == nil {
		return vdom.Div(nil)
	}

	return vdom.Div(nil, r.RenderChild(s.Key, child))
}
