package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/client/cmd/alias"
	"github.com/OFFER-HUB/protocol-offer-hub/client/cmd/claim"
	clientConfig "github.com/OFFER-HUB/protocol-offer-hub/client/cmd/config"
	"github.com/OFFER-HUB/protocol-offer-hub/client/cmd/identifier"
	"github.com/OFFER-HUB/protocol-offer-hub/client/cmd/key"
	"github.com/OFFER-HUB/protocol-offer-hub/client/cmd/profile"
	"github.com/OFFER-HUB/protocol-offer-hub/client/cmd/tx"
	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
)

var metricsServer *http.Server

var rootCmd = &cobra.Command{
	Use:   "offerhub",
	Short: "Offer Hub contract client",
	Long: `offerhub manages profiles, claims and identifiers on the Offer Hub
contract. Writes are simulated, signed with the configured key, submitted and
followed to finality; reads are simulated only.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if err := utils.LoadClientConfig(); err != nil {
			return err
		}

		if utils.MetricsAddr != "" {
			startMetrics(utils.MetricsAddr)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(ctx)
		}
		utils.CloseLogger()
	},
}

func startMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := metricsServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			utils.Logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&utils.ConfigDirectory,
		"config",
		utils.ClientConfigDir,
		"config directory",
	)
	rootCmd.PersistentFlags().StringVar(
		&utils.NetworkName,
		"network",
		"",
		"network preset to use instead of the configured one",
	)
	rootCmd.PersistentFlags().StringVar(
		&utils.ContractID,
		"contract",
		"",
		"contract id to use instead of the configured one",
	)
	rootCmd.PersistentFlags().BoolVar(
		&utils.Debug,
		"debug",
		false,
		"development logging",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&utils.AutoApprove,
		"yes",
		"y",
		false,
		"sign without asking for confirmation",
	)
	rootCmd.PersistentFlags().BoolVar(
		&utils.JSONOutput,
		"json",
		false,
		"print results as JSON",
	)
	rootCmd.PersistentFlags().StringVar(
		&utils.MetricsAddr,
		"metrics-addr",
		"",
		"serve prometheus metrics on this address while the command runs",
	)

	rootCmd.AddCommand(profile.ProfileCmd)
	rootCmd.AddCommand(claim.ClaimCmd)
	rootCmd.AddCommand(identifier.IdentifierCmd)
	rootCmd.AddCommand(tx.TxCmd)
	rootCmd.AddCommand(key.KeyCmd)
	rootCmd.AddCommand(alias.AliasCmd)
	rootCmd.AddCommand(clientConfig.ConfigCmd)
}
