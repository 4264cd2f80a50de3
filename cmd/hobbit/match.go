package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcrobe/hobbit/browser"
	"github.com/vcrobe/hobbit/config"
	"github.com/vcrobe/hobbit/history"
	"github.com/vcrobe/hobbit/router"
	"github.com/vcrobe/hobbit/vdom"
)

type matchResult struct {
	Matched bool              `json:"matched"`
	Route   string            `json:"route,omitempty"`
	Pattern string            `json:"pattern,omitempty"`
	Path    string            `json:"path"`
	URL     string            `json:"url"`
	Params  map[string]string `json:"params"`
}

func newMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "match <url>",
		Short:   "Shows the route the application renders for a URL",
		Example: "hobbit match -c hobbit.yaml 'https://example.com/#!/block/red'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result, err := match(conf, args[0])
			if err != nil {
				return err
			}

			return writeResult(cmd, result, func() string {
				if !result.Matched {
					return fmt.Sprintf("no route matches %s", result.Path)
				}

				parts := []string{result.Route, result.Pattern}
				for _, k := range slices.Sorted(maps.Keys(result.Params)) {
					parts = append(parts, k+"="+result.Params[k])
				}

				return strings.Join(parts, " ")
			})
		},
	}
}

// match opens href in an in-memory window and runs the configured route table against
// it, the way the application does on its first render.
func match(conf config.Config, href string) (matchResult, error) {
	routerConf := conf.Router
	routerConf.Location = ""
	routerConf.InitialLocation = nil

	rt := router.New()
	rt.CreateRouter(routerConf, history.WithWindow(browser.NewMemory(href)))
	defer rt.ResetRouter()

	table := make(router.Table, 0, len(conf.Routes))
	for _, r := range conf.Routes {
		table = append(table, router.Entry{
			Pattern: r.Pattern,
			Payload: vdom.Paragraph(r.Name, nil),
			Params:  r.Params,
		})
	}

	d, err := rt.Match(table, conf.Match)
	if err != nil {
		return matchResult{}, err
	}

	loc, err := rt.Location()
	if err != nil {
		return matchResult{}, err
	}

	result := matchResult{Path: loc.Path, URL: loc.URL, Params: map[string]string{}}

	if d != nil {
		result.Matched = true
		result.Route = d.Payload.(*vdom.VNode).Content
		result.Pattern = d.Pattern
		result.Params = d.Params
	}

	return result, nil
}
