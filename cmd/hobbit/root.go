package main

import (
	"github.com/spf13/cobra"

	"github.com/vcrobe/hobbit/config"
	"github.com/vcrobe/hobbit/console"
)

const (
	flagConfig    = "config"
	flagEnvPrefix = "env-config-prefix"
	flagOutput    = "output"
	flagFilter    = "filter"

	outputText = "text"
	outputJSON = "json"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hobbit",
		Short:        "Inspects the route table of a hobbit application",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP(flagConfig, "c", "", "Config file")
	root.PersistentFlags().String(flagEnvPrefix, config.DefaultEnvPrefix,
		"Prefix of the environment variables overriding the config file")
	root.PersistentFlags().StringP(flagOutput, "o", outputText, `The format for the result output.
Can be "text" or "json".`)

	root.AddCommand(
		newMatchCommand(),
		newReverseCommand(),
		newRoutesCommand(),
		newValidateCommand(),
	)

	return root
}

// loadConfig loads the configuration named by the flags and routes the console to the
// command's error stream.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	envPrefix, _ := cmd.Flags().GetString(flagEnvPrefix)

	conf, err := config.Load(config.WithFile(configPath), config.WithEnvPrefix(envPrefix))
	if err != nil {
		return config.Config{}, err
	}

	console.Configure(conf.Log)
	console.SetOutput(cmd.ErrOrStderr())

	return conf, nil
}
