package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/OFFER-HUB/protocol-offer-hub/aliases"
	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
	"github.com/OFFER-HUB/protocol-offer-hub/signer"
	tstore "github.com/OFFER-HUB/protocol-offer-hub/types/store"
)

// JSONOutput switches every command to machine readable output.
var JSONOutput bool

func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Display shows an address followed by its alias when it has one.
func Display(book *aliases.Book, address string) string {
	if book == nil {
		return address
	}
	if name, ok := book.NameOf(address); ok {
		return fmt.Sprintf("%s (%s)", address, name)
	}
	return address
}

func PrintReceipt(w io.Writer, r *offerhub.Receipt) error {
	if JSONOutput {
		return PrintJSON(w, r)
	}
	fmt.Fprintf(w, "Transaction: %s\n", r.Hash)
	fmt.Fprintf(w, "Ledger:      %d\n", r.Ledger)
	fmt.Fprintf(w, "Fee:         %s\n", signer.FormatFee(r.Fee))
	fmt.Fprintf(w, "Polls:       %d\n", r.Attempts)
	return nil
}

func PrintProfile(w io.Writer, book *aliases.Book, p *offerhub.Profile) error {
	if JSONOutput {
		return PrintJSON(w, p)
	}
	if p == nil {
		fmt.Fprintln(w, "No profile")
		return nil
	}

	fmt.Fprintf(w, "Owner:        %s\n", Display(book, p.Owner))
	fmt.Fprintf(w, "Display name: %s\n", p.DisplayName)
	fmt.Fprintf(w, "Metadata:     %s\n", p.MetadataURI)
	if p.CountryCode != "" {
		fmt.Fprintf(w, "Country:      %s\n", p.CountryCode)
	}
	if p.Identifier != "" {
		fmt.Fprintf(w, "Identifier:   %s\n", p.Identifier)
	}
	if p.EmailHash != nil {
		fmt.Fprintf(w, "Email hash:   %s\n", p.EmailHash.Hex())
	}
	for _, a := range p.LinkedAccounts {
		fmt.Fprintf(w, "Linked:       %s %s\n", a.Platform, a.Handle)
	}
	fmt.Fprintf(
		w,
		"Joined:       %s\n",
		time.Unix(int64(p.JoinedAt), 0).UTC().Format(time.RFC3339),
	)
	return nil
}

func PrintClaims(w io.Writer, book *aliases.Book, claims []offerhub.Claim) error {
	if JSONOutput {
		if claims == nil {
			claims = []offerhub.Claim{}
		}
		return PrintJSON(w, claims)
	}
	if len(claims) == 0 {
		fmt.Fprintln(w, "No claims")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tISSUER\tRECEIVER\tPROOF")
	for _, c := range claims {
		fmt.Fprintf(
			tw,
			"%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.ClaimType,
			c.Status,
			Display(book, c.Issuer),
			Display(book, c.Receiver),
			c.ProofHash.Hex(),
		)
	}
	return tw.Flush()
}

func PrintEntries(w io.Writer, entries []*tstore.JournalEntry) error {
	if JSONOutput {
		if entries == nil {
			entries = []*tstore.JournalEntry{}
		}
		return PrintJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No transactions")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HASH\tMETHOD\tSTATE\tPOLLS\tUPDATED")
	for _, e := range entries {
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%d\t%s\n",
			e.Hash,
			e.Method,
			e.State,
			e.Attempts,
			time.Unix(e.UpdatedAt, 0).UTC().Format(time.RFC3339),
		)
	}
	return tw.Flush()
}

func PrintEntry(w io.Writer, e *tstore.JournalEntry) error {
	if JSONOutput {
		return PrintJSON(w, e)
	}
	fmt.Fprintf(w, "Hash:       %s\n", e.Hash)
	fmt.Fprintf(w, "Call:       %s\n", e.CallID)
	fmt.Fprintf(w, "Method:     %s\n", e.Method)
	fmt.Fprintf(w, "Source:     %s\n", e.Source)
	fmt.Fprintf(w, "State:      %s\n", e.State)
	fmt.Fprintf(w, "Polls:      %d\n", e.Attempts)
	if e.Ledger != 0 {
		fmt.Fprintf(w, "Ledger:     %d\n", e.Ledger)
	}
	if e.Diagnostic != "" {
		fmt.Fprintf(w, "Diagnostic: %s\n", strings.TrimSpace(e.Diagnostic))
	}
	return nil
}
