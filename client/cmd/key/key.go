package key

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	"github.com/OFFER-HUB/protocol-offer-hub/signer"
)

var KeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manages the signing key",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Creates a new signing key",
	Long: `Creates a new ed448 signing key at the configured key file. An existing
key file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := utils.Config.Key.KeyFile
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("key file %s already exists", path)
		}

		key, err := signer.GenerateKey()
		if err != nil {
			return err
		}
		if err := signer.SaveKey(path, key); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if utils.JSONOutput {
			return utils.PrintJSON(out, map[string]string{
				"address":  key.Address(),
				"key_file": path,
			})
		}
		fmt.Fprintf(out, "Account:  %s\n", key.Address())
		fmt.Fprintf(out, "Key file: %s\n", path)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows the account of the signing key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := signer.LoadKey(utils.Config.Key.KeyFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if utils.JSONOutput {
			return utils.PrintJSON(out, map[string]string{
				"address": key.Address(),
			})
		}
		fmt.Fprintln(out, key.Address())
		return nil
	},
}

func init() {
	KeyCmd.AddCommand(generateCmd)
	KeyCmd.AddCommand(showCmd)
}
