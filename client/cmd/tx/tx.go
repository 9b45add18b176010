package tx

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/app"
	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	tstore "github.com/OFFER-HUB/protocol-offer-hub/types/store"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

var errJournalDisabled = errors.New("the transaction journal is disabled in the configuration")

var TxCmd = &cobra.Command{
	Use:   "tx",
	Short: "Inspects and resumes journaled transactions",
}

var all bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists transactions still awaiting finality, or every one with --all",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := openJournal()
		if err != nil {
			return err
		}
		defer cleanup()

		var entries []*tstore.JournalEntry
		if all {
			entries, err = session.Journal.RangeEntries()
		} else {
			entries, err = session.Journal.RangeInFlight()
		}
		if err != nil {
			return err
		}
		return utils.PrintEntries(cmd.OutOrStdout(), entries)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <hash>",
	Short: "Shows one journaled transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := openJournal()
		if err != nil {
			return err
		}
		defer cleanup()

		entry, err := session.Journal.GetEntry(args[0])
		if err != nil {
			return err
		}
		return utils.PrintEntry(cmd.OutOrStdout(), entry)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume [hash]",
	Short: "Polls a submitted transaction to finality and shows its result",
	Long: `Polls a transaction that was submitted by an earlier, interrupted
invocation. Without a hash every transaction still awaiting finality is
resumed in turn.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := openJournal()
		if err != nil {
			return err
		}
		defer cleanup()

		hashes := args
		if len(hashes) == 0 {
			entries, err := session.Journal.RangeInFlight()
			if err != nil {
				return err
			}
			for _, e := range entries {
				hashes = append(hashes, e.Hash)
			}
		}

		out := cmd.OutOrStdout()
		if len(hashes) == 0 {
			fmt.Fprintln(out, "No transactions awaiting finality")
			return nil
		}

		var failed int
		for _, hash := range hashes {
			v, receipt, err := session.Client.Resume(ctx, hash)
			if err != nil {
				if len(args) == 1 {
					return err
				}
				failed++
				utils.Logger.Warn(
					"resume failed",
					zap.String("hash", hash),
					zap.Error(err),
				)
				fmt.Fprintf(out, "%s: %v\n", hash, err)
				continue
			}

			var result any
			if v != nil {
				if result, err = wire.Decode(v); err != nil {
					return err
				}
			}
			if utils.JSONOutput {
				if err := utils.PrintJSON(out, map[string]any{
					"receipt": receipt,
					"result":  result,
				}); err != nil {
					return err
				}
				continue
			}
			if err := utils.PrintReceipt(out, receipt); err != nil {
				return err
			}
			fmt.Fprintf(out, "Result:      %v\n", result)
		}

		if failed > 0 {
			return errors.Errorf("%d of %d transactions failed", failed, len(hashes))
		}
		return nil
	},
}

var (
	olderThan time.Duration
	pruneAll  bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Deletes finalized transactions from the journal",
	Long: `Deletes journaled transactions that reached a final state longer ago
than --older-than. With --all every entry is dropped, including transactions
still awaiting finality, which can then no longer be resumed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := openJournal()
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		if pruneAll {
			if err := session.Journal.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Journal cleared")
			return nil
		}

		before := time.Now().Add(-olderThan).UnixMilli()
		pruned, err := session.Journal.Prune(before)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d transactions\n", pruned)
		return nil
	},
}

func openJournal() (*app.Session, func(), error) {
	session, cleanup, err := utils.OpenSession()
	if err != nil {
		return nil, nil, err
	}
	if session.Journal == nil {
		cleanup()
		return nil, nil, errJournalDisabled
	}
	return session, cleanup, nil
}

func init() {
	listCmd.Flags().BoolVar(&all, "all", false, "include finalized transactions")
	pruneCmd.Flags().DurationVar(
		&olderThan,
		"older-than",
		0,
		"only prune transactions finalized at least this long ago",
	)
	pruneCmd.Flags().BoolVar(
		&pruneAll,
		"all",
		false,
		"drop every entry, including transactions awaiting finality",
	)
	TxCmd.AddCommand(listCmd)
	TxCmd.AddCommand(showCmd)
	TxCmd.AddCommand(resumeCmd)
	TxCmd.AddCommand(pruneCmd)
}
