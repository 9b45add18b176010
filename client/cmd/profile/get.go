package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
)

var getCmd = &cobra.Command{
	Use:   "get [account]",
	Short: "Shows a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		account, err := utils.ResolveAccount(session, firstArg(args))
		if err != nil {
			return err
		}

		p, err := session.Client.GetProfile(ctx, account)
		if err != nil {
			return err
		}
		return utils.PrintProfile(cmd.OutOrStdout(), session.Book, p)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [account]",
	Short: "Shows a profile with its reputation, claims and identifier",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		account, err := utils.ResolveAccount(session, firstArg(args))
		if err != nil {
			return err
		}

		summary, err := session.Client.GetProfileSummary(ctx, account)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if utils.JSONOutput {
			return utils.PrintJSON(out, summary)
		}
		if err := utils.PrintProfile(out, session.Book, summary.Profile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Reputation:   %d\n", summary.Reputation)
		fmt.Fprintln(out)
		return utils.PrintClaims(out, session.Book, summary.Claims)
	},
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
