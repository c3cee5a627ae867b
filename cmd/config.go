package cmd

import (
	"fmt"

	"github.com/hallgrim/blackbars/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config created at %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := config.ResolveConfigSource(config.ResolveOptions{})
		if err != nil {
			return err
		}

		path := source.Path
		if path == "" {
			path, err = config.ConfigPath()
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		printConfigSourceDetails(cmd, source)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadResult, err := loadConfigForCommand()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(loadResult.Config)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		cmd.Print(string(data))
		printConfigSourceDetails(cmd, loadResult.Source)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
