package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/acolita/hdfs-connect/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(e))
	return cmd
}

func newConfigInitCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Long: `Write the default configuration to the config file path.

Examples:
  # Create $XDG_CONFIG_HOME/hdfs-connect/config.yaml
  hdfs-connect config init

  # Overwrite an existing file
  hdfs-connect config init --config ./hdfs-connect.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfgPath == "" {
				return errors.New("no config path: set --config or $HOME")
			}
			if !force {
				if _, err := e.fsys.Stat(e.cfgPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", e.cfgPath)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat config file: %w", err)
				}
			}

			if err := config.Save(config.DefaultConfig(), e.cfgPath, e.fsys); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", e.cfgPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
