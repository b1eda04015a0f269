package cmd

import (
	"fmt"
	"io"

	"github.com/gnames/mtreps/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	var validate bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Print configuration after config.yaml, environment variables and
defaults are combined. The output is valid config.yaml content.

Examples:
  mtreps config
  MTREPS_PATHS_ROOT_DIR=/data mtreps config
  mtreps config --validate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := showConfig(cmd.OutOrStdout(), cfg, validate)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	configCmd.Flags().BoolVar(&validate, "validate", false,
		"check that all required paths are set")

	return configCmd
}

func showConfig(w io.Writer, cfg *config.Config, validate bool) error {
	if validate {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}
