package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AliArsal1512/clarifai-app/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), configFile())
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}
