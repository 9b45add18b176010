package claim

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Shows one claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errors.Wrap(err, "claim id")
		}

		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := session.Client.GetClaim(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			if utils.JSONOutput {
				return utils.PrintJSON(cmd.OutOrStdout(), nil)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "No claim %d\n", id)
			return nil
		}
		return utils.PrintClaims(cmd.OutOrStdout(), session.Book, []offerhub.Claim{*c})
	},
}

var issued bool

var listCmd = &cobra.Command{
	Use:   "list [account]",
	Short: "Lists the claims an account received, or issued with --issued",
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

		var claims []offerhub.Claim
		if issued {
			claims, err = session.Client.GetClaimsByIssuer(ctx, account)
		} else {
			claims, err = session.Client.GetClaimsByReceiver(ctx, account)
		}
		if err != nil {
			return err
		}
		return utils.PrintClaims(cmd.OutOrStdout(), session.Book, claims)
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Shows the number of claims ever issued",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		total, err := session.Client.GetTotalClaims(ctx)
		if err != nil {
			return err
		}
		if utils.JSONOutput {
			return utils.PrintJSON(cmd.OutOrStdout(), total)
		}
		fmt.Fprintln(cmd.OutOrStdout(), total)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&issued, "issued", false, "list claims issued by the account instead")
}
