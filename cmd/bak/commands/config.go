package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bak/internal/config"
	"github.com/thoreinstein/bak/internal/paths"
	"github.com/thoreinstein/bak/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bak configuration",
	Long: `Manage the bak configuration file.

Configuration is read from ./config.toml or <config home>/bak/config.toml
(yaml works too), with BAK_* environment variables taking precedence.
Available settings: difftool, preserve_symlinks.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Example: `  # Show the configuration bak is actually using
  bak config show`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configLoadErr != nil {
			return errors.Wrap(configLoadErr, "loading configuration")
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "marshaling configuration")
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a config.toml with default values to the bak configuration
directory. Refuses to overwrite an existing configuration file.`,
	Example: `  # Create the default configuration
  bak config init`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir := paths.ConfigDir()
		if err := paths.EnsureDir(dir, 0); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}

		path := filepath.Join(dir, "config.toml")
		if _, err := os.Lstat(path); err == nil {
			return errors.Newf("config file already exists at %s", path)
		}

		if err := fileutil.AtomicWriteTOML(path, config.Default()); err != nil {
			return errors.Wrap(err, "writing config file")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}
