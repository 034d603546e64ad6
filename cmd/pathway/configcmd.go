package main

import (
	"fmt"

	"github.com/mrsinham/pathway/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(d deps, root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as YAML.

Values are resolved in this order, later ones winning:
  1. Built-in defaults
  2. The --config file (pathway.yaml by default), if present
  3. PATHWAY_* environment variables, e.g. PATHWAY_DELAY_UPLOAD=500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(d.fs, root.configPath)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = d.out.Write(data)
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to the --config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if exists, _ := afero.Exists(d.fs, root.configPath); exists {
				return fmt.Errorf("%s already exists", root.configPath)
			}
			if err := config.Save(d.fs, root.configPath, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(d.out, "✓ Configuration written to %s\n", root.configPath)
			return nil
		},
	})
	return cmd
}
