package main

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/vcrobe/hobbit/pathmatch"
)

type routeInfo struct {
	Name    string            `json:"name"`
	Pattern string            `json:"pattern"`
	Keys    []string          `json:"keys"`
	Params  map[string]string `json:"params,omitempty"`
}

func newRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routes",
		Short:   "Lists the configured routes",
		Example: "hobbit routes -c hobbit.yaml --filter 'block*'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			filter, _ := cmd.Flags().GetString(flagFilter)

			g, err := glob.Compile(filter)
			if err != nil {
				return fmt.Errorf("invalid filter %q: %w", filter, err)
			}

			routes := make([]routeInfo, 0, len(conf.Routes))

			for _, r := range conf.Routes {
				if !g.Match(r.Name) {
					continue
				}

				m, err := pathmatch.Compile(r.Pattern, conf.Match)
				if err != nil {
					return err
				}

				keys := make([]string, 0, len(m.Keys()))
				for _, k := range m.Keys() {
					keys = append(keys, k.Name)
				}

				routes = append(routes, routeInfo{Name: r.Name, Pattern: r.Pattern, Keys: keys, Params: r.Params})
			}

			return writeResult(cmd, routes, func() string {
				var b strings.Builder

				for i, r := range routes {
					if i > 0 {
						b.WriteString("\n")
					}

					fmt.Fprintf(&b, "%s %s", r.Name, r.Pattern)
				}

				return b.String()
			})
		},
	}

	cmd.Flags().String(flagFilter, "*", "Glob the route names must match")

	return cmd
}
