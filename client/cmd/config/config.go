package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	"github.com/OFFER-HUB/protocol-offer-hub/config"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Performs a configuration operation",
}

var printConfigCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(utils.Config)
		if err != nil {
			return errors.Wrap(err, "print config")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var force bool

var createDefaultConfigCmd = &cobra.Command{
	Use:   "create-default",
	Short: "Write the effective configuration to the config directory",
	Long: `Writes config.yml with every default filled in, including any --network
and --contract overrides, so it can be edited by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(utils.ConfigDirectory, "config.yml")
		if _, err := os.Stat(path); err == nil && !force {
			return errors.Errorf("%s already exists, pass --force to replace it", path)
		}

		if err := config.SaveConfig(utils.ConfigDirectory, utils.Config); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	createDefaultConfigCmd.Flags().BoolVar(&force, "force", false, "replace an existing config.yml")
	ConfigCmd.AddCommand(printConfigCmd)
	ConfigCmd.AddCommand(createDefaultConfigCmd)
}
