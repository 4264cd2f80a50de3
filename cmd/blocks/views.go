//go:build js && wasm

package main

import (
	"github.com/vcrobe/hobbit/config"
	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
	"github.com/vcrobe/hobbit/router"
	"github.com/vcrobe/hobbit/runtime"
	"github.com/vcrobe/hobbit/signals"
	"github.com/vcrobe/hobbit/store"
	"github.com/vcrobe/hobbit/vdom"
)

// sidebarPattern extracts the color and the subcolor of any block location.
const sidebarPattern = "/block/:color/:subcolor?"

var colors = []string{"red", "blue", "green"}

// pattern returns the pattern of the named route of the configuration.
func pattern(conf config.Config, name string) string {
	route, ok := conf.Route(name)
	if !ok {
		console.Warn("No route named", name, "in the configuration")

		return "/" + name
	}

	return route.Pattern
}

func heading(tag, text string) *vdom.VNode {
	return vdom.NewVNode(tag, nil, nil, text)
}

func link(text string, onClick func()) *vdom.VNode {
	return vdom.NewVNode("a", map[string]any{"href": "#", "onClick": onClick}, nil, text)
}

// routed mounts a match result under key. Nothing is mounted when the route does not
// match, which unmounts whatever was there before.
func routed(r runtime.Renderer, key string, d *router.RenderDescriptor, err error) *vdom.VNode {
	if err != nil {
		console.Error("Error routing", key+":", err.Error())

		return nil
	}

	if d == nil {
		return nil
	}

	return r.RenderChild(key, d)
}

// index is the root of the page: the sidebar next to the routed content.
type index struct {
	runtime.ComponentBase

	router  *router.Router
	sidebar *sidebar
	main    *mainView
}

func newIndex(appRouter *router.Router, state *store.Store, conf config.Config) *index {
	return &index{
		router:  appRouter,
		sidebar: &sidebar{router: appRouter, routes: conf},
		main:    &mainView{router: appRouter, clock: &clock{state: state}},
	}
}

func (c *index) Render(r runtime.Renderer) *vdom.VNode {
	nav, err := c.router.WithLocation(sidebarPattern, c.sidebar, history.MatchOptions{})

	return vdom.Div(map[string]any{"class": "index"},
		routed(r, "sidebar", nav, err),
		vdom.Div(map[string]any{"class": "page"},
			heading("h1", "Example"),
			r.RenderChild("main", c.main),
		),
	)
}

// sidebar navigates between the blocks. It gets the color and the subcolor of the
// current location even when the location has no subcolor.
type sidebar struct {
	runtime.ComponentBase

	router *router.Router
	routes config.Config
	params map[string]string
}

func (s *sidebar) SetLocation(_ history.Location, params map[string]string) {
	s.params = params
}

func (s *sidebar) navigate(name string, params map[string]string) {
	route, ok := s.routes.Route(name)
	if !ok {
		console.Warn("[sidebar] no route named", name)

		return
	}

	if err := s.router.Navigate(route.Pattern, params, history.NavigateOptions{Sender: "sidebar"}); err != nil {
		console.Error("[sidebar] navigation failed:", err.Error())

		return
	}

	s.StateHasChanged()
}

func (s *sidebar) pickColor(color string) {
	if subcolor := s.params["subcolor"]; subcolor != "" {
		s.navigate("subcolor", map[string]string{"color": color, "subcolor": subcolor})

		return
	}

	s.navigate("color", map[string]string{"color": color})
}

func (s *sidebar) pickSubcolor(subcolor string) {
	color := s.params["color"]
	if color == "" {
		return
	}

	s.navigate("subcolor", map[string]string{"color": color, "subcolor": subcolor})
}

func (s *sidebar) menu(title string, pick func(string)) *vdom.VNode {
	items := []*vdom.VNode{heading("h3", title)}

	for _, color := range colors {
		items = append(items, link(color, func() { pick(color) }))
	}

	return vdom.NewVNode("div", map[string]any{"class": "block"}, items, "")
}

func (s *sidebar) Render(r runtime.Renderer) *vdom.VNode {
	colorMenu := s.menu("Main color", s.pickColor)
	bothMenus := vdom.Div(nil, colorMenu, s.menu("Sub color", s.pickSubcolor))

	menus, err := s.router.Match(router.Table{
		{Pattern: pattern(s.routes, "blocks"), Payload: colorMenu},
		{Pattern: pattern(s.routes, "color"), Payload: bothMenus},
		{Pattern: pattern(s.routes, "subcolor"), Payload: bothMenus},
	}, history.MatchOptions{})

	return vdom.Div(map[string]any{"class": "sidebar"},
		heading("h2", "Navigation"),
		vdom.Div(map[string]any{"class": "block"},
			link("Index", func() { s.navigate("index", nil) }),
			link("Colored blocks", func() { s.navigate("blocks", nil) }),
		),
		routed(r, "menus", menus, err),
	)
}

// mainView shows the blocks under /block and the index or a not found page elsewhere.
type mainView struct {
	runtime.ComponentBase

	router *router.Router
	clock  *clock
}

func (m *mainView) Render(r runtime.Renderer) *vdom.VNode {
	page, err := m.router.Match(router.Route("/block", runtime.ComponentFactory(m.newBlocks)), history.MatchOptions{Loose: true})
	content := routed(r, "blocks", page, err)

	if page == nil {
		pages, err := m.router.Match(router.Table{
			{Pattern: "/", Payload: heading("h2", "Index")},
			{Pattern: router.Fallback, Payload: heading("h2", "Error 404")},
		}, history.MatchOptions{})
		content = routed(r, "pages", pages, err)
	}

	return vdom.Div(map[string]any{"class": "main"}, content, r.RenderChild("clock", m.clock))
}

func (m *mainView) newBlocks(map[string]string) runtime.Component {
	return &blocks{router: m.router}
}

type blocks struct {
	runtime.ComponentBase

	router *router.Router
}

func (b *blocks) Render(r runtime.Renderer) *vdom.VNode {
	block, err := b.router.WithLocation("/block/:color", runtime.ComponentFactory(b.newColoredBlock), history.MatchOptions{Loose: true})

	return vdom.Div(nil, heading("h2", "Colored blocks"), routed(r, "colored", block, err))
}

func (b *blocks) newColoredBlock(map[string]string) runtime.Component {
	return &coloredBlock{router: b.router}
}

// coloredBlock renders the main color with the subcolor block nested inside.
type coloredBlock struct {
	runtime.ComponentBase

	router *router.Router
	params map[string]string
}

func (c *coloredBlock) SetLocation(_ history.Location, params map[string]string) {
	c.params = params
}

func (c *coloredBlock) Render(r runtime.Renderer) *vdom.VNode {
	color := c.params["color"]
	if color == "" {
		return nil
	}

	sub, err := c.router.Match(router.Route("/block/:color/:subcolor", runtime.ComponentFactory(newSubBlock)), history.MatchOptions{})

	return vdom.Div(map[string]any{"class": color}, heading("h2", color), routed(r, "subcolor", sub, err))
}

type subBlock struct {
	runtime.ComponentBase

	subcolor string
}

func newSubBlock(params map[string]string) runtime.Component {
	return &subBlock{subcolor: params["subcolor"]}
}

func (s *subBlock) SetLocation(_ history.Location, params map[string]string) {
	s.subcolor = params["subcolor"]
}

func (s *subBlock) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": s.subcolor}, heading("h2", s.subcolor))
}

// clock shows the time kept in the store.
type clock struct {
	runtime.ComponentBase

	state   *store.Store
	time    *signals.Signal[any]
	unwatch func()
	unsub   func()
}

func (c *clock) OnInit() {
	c.time, c.unwatch = c.state.Watch(clockPath)
	c.unsub = c.time.Subscribe(c.StateHasChanged)
}

func (c *clock) OnDestroy() {
	if c.unsub != nil {
		c.unsub()
	}

	if c.unwatch != nil {
		c.unwatch()
	}
}

func (c *clock) Render(runtime.Renderer) *vdom.VNode {
	shown := "--:--:--"
	if c.time != nil {
		if t, ok := c.time.Get().(string); ok {
			shown = t
		}
	}

	return vdom.Div(map[string]any{"class": "time"}, vdom.Paragraph("Time: "+shown, nil))
}
