package alias

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/aliases"
	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
)

var AliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manages short names for addresses",
}

var note string

var addCmd = &cobra.Command{
	Use:     "add <name> <address>",
	Short:   "Adds or replaces an alias",
	Example: `  offerhub alias add bob GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX --note "designer"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := openBook()
		if err != nil {
			return err
		}
		return book.Put(args[0], args[1], note)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Removes an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := openBook()
		if err != nil {
			return err
		}
		removed, err := book.Delete(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return errors.Wrapf(aliases.ErrUnknownAlias, "%q", args[0])
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := openBook()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if utils.JSONOutput {
			entries := make(map[string]aliases.Entry)
			for _, name := range book.List() {
				entries[name], _ = book.Get(name)
			}
			return utils.PrintJSON(out, entries)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tADDRESS\tNOTE")
		for _, name := range book.List() {
			e, _ := book.Get(name)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, e.Address, e.Note)
		}
		return tw.Flush()
	},
}

func openBook() (*aliases.Book, error) {
	return aliases.Open(utils.Config.Alias.AddressBook)
}

func init() {
	addCmd.Flags().StringVar(&note, "note", "", "free text note kept with the alias")
	AliasCmd.AddCommand(addCmd)
	AliasCmd.AddCommand(removeCmd)
	AliasCmd.AddCommand(listCmd)
}
