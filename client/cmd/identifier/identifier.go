package identifier

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
)

var IdentifierCmd = &cobra.Command{
	Use:     "identifier",
	Aliases: []string{"did"},
	Short:   "Links and reads decentralized identifiers",
}

var owner string

var linkCmd = &cobra.Command{
	Use:     "link <identifier>",
	Short:   "Links an identifier to the owner's profile",
	Example: `  offerhub identifier link did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		account, err := utils.ResolveAccount(session, owner)
		if err != nil {
			return err
		}

		receipt, err := session.Client.LinkIdentifier(ctx, account, args[0])
		if err != nil {
			return err
		}
		return utils.PrintReceipt(cmd.OutOrStdout(), receipt)
	},
}

var getCmd = &cobra.Command{
	Use:   "get [account]",
	Short: "Shows the identifier linked to an account",
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

		id, ok, err := session.Client.GetIdentifier(ctx, account)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case utils.JSONOutput && ok:
			return utils.PrintJSON(out, id)
		case utils.JSONOutput:
			return utils.PrintJSON(out, nil)
		case ok:
			fmt.Fprintln(out, id)
		default:
			fmt.Fprintln(out, "No identifier linked")
		}
		return nil
	},
}

func init() {
	linkCmd.Flags().StringVar(&owner, "owner", "", "profile owner, address or alias (default the configured key)")
	IdentifierCmd.AddCommand(linkCmd)
	IdentifierCmd.AddCommand(getCmd)
}
