//go:build js && wasm

// Command blocks is a browser demo of hobbit: colored blocks selected from a sidebar,
// routed in hashbanged mode, next to a clock fed by the state store.
package main

import (
	_ "embed"
	"time"

	"github.com/vcrobe/hobbit/browser"
	"github.com/vcrobe/hobbit/config"
	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
	"github.com/vcrobe/hobbit/router"
	"github.com/vcrobe/hobbit/runtime"
	"github.com/vcrobe/hobbit/store"
	"github.com/vcrobe/hobbit/vdom"
)

//go:embed blocks.yaml
var defaults []byte

const (
	mountSelector = "#root"
	clockPath     = "time"
	clockPeriod   = 500 * time.Millisecond
)

func main() {
	conf, err := config.Load(config.WithYAML(defaults))
	if err != nil {
		console.Error("Error loading the configuration:", err.Error())

		return
	}

	console.Configure(conf.Log)

	appRouter := router.New()
	appRouter.CreateRouter(conf.Router, history.WithWindow(browser.Current()))

	state, err := store.New(map[string]any{clockPath: now()})
	if err != nil {
		console.Error("Error creating the state store:", err.Error())

		return
	}

	tree := runtime.NewTree(newIndex(appRouter, state, conf), func(n *vdom.VNode) {
		vdom.RenderToSelector(mountSelector, n)
	})
	tree.RenderRoot()

	go tick(state)

	// Keep the Go program running
	select {}
}

func tick(state *store.Store) {
	ticker := time.NewTicker(clockPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := state.Set(clockPath, now()); err != nil {
			console.Warn("Error updating the clock:", err.Error())
		}
	}
}

func now() string {
	return time.Now().Format("15:04:05")
}
