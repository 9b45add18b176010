package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
)

var reputationCmd = &cobra.Command{
	Use:   "reputation [account]",
	Short: "Shows the reputation score of an account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		account, err := utils.ResolveAccount(session, arg)
		if err != nil {
			return err
		}

		score, err := session.Client.GetReputationScore(ctx, account)
		if err != nil {
			return err
		}
		if utils.JSONOutput {
			return utils.PrintJSON(cmd.OutOrStdout(), score)
		}
		fmt.Fprintln(cmd.OutOrStdout(), score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reputationCmd)
}
