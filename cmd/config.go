package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/loanlens/loanlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(redacted(cfg))
		if err != nil {
			return eris.Wrap(err, "marshal config")
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

// redacted masks credentials so the output is safe to share.
func redacted(c *config.Config) *config.Config {
	out := *c
	if out.CloudParse.Key != "" {
		out.CloudParse.Key = "[redacted]"
	}
	if out.Anthropic.Key != "" {
		out.Anthropic.Key = "[redacted]"
	}
	return &out
}

func init() {
	rootCmd.AddCommand(configCmd)
}
