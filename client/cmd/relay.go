package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/app"
	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
)

var listenAddr string

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Serves the configured ledger RPC endpoint on a local address",
	Long: `Runs a ledger RPC relay that forwards every call to the configured
network's endpoint. Point other clients at the relay with rpcMultiaddr, and
combine with --metrics-addr to watch their traffic.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		relay, cleanup, err := app.NewRelay(utils.Logger, utils.Config)
		if err != nil {
			return err
		}
		defer cleanup()

		return relay.Serve(ctx, listenAddr)
	},
}

func init() {
	relayCmd.Flags().StringVar(
		&listenAddr,
		"listen",
		"/ip4/127.0.0.1/tcp/8337",
		"multiaddr to serve the relay on",
	)
	rootCmd.AddCommand(relayCmd)
}
