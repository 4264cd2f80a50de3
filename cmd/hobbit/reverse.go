package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcrobe/hobbit/pathmatch"
)

type reverseResult struct {
	Route   string `json:"route,omitempty"`
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
	URL     string `json:"url"`
}

func newReverseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <pattern|route> [name=value...]",
		Short: "Builds the path of a pattern or of a configured route",
		Example: `hobbit reverse /block/:color color=red
hobbit reverse -c hobbit.yaml block color=red`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			result := reverseResult{Pattern: args[0]}
			if r, ok := conf.Route(args[0]); ok {
				result.Route = r.Name
				result.Pattern = r.Pattern
			}

			m, err := pathmatch.Compile(result.Pattern, conf.Match)
			if err != nil {
				return err
			}

			if result.Path, err = m.Reverse(params); err != nil {
				return err
			}

			result.URL = result.Path
			if conf.Router.Hashbanged {
				result.URL = conf.Router.HashbangPrefix + result.Path
			}

			return writeResult(cmd, result, func() string { return result.URL })
		},
	}
}

func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return nil, fmt.Errorf("parameter %q is not of the form name=value", arg)
		}

		params[name] = value
	}

	return params, nil
}
