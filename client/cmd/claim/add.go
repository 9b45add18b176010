package claim

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
)

var (
	issuer      string
	receiver    string
	claimType   string
	proof       string
	title       string
	description string
	urls        []string
	date        string
	attachment  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Issues a claim to a receiver",
	Long: `Issues a claim from the issuer to the receiver. The proof hash is either
given directly with --proof or derived from the work delivery flags, in which
case the claim type defaults to one derived from the title and date.`,
	Example: `  offerhub claim add --receiver bob --title "Offer Hub website" \
    --date 2025-01-20 --url https://github.com/OFFER-HUB/offer-hub`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.CommandContext(cmd)
		defer cancel()

		session, cleanup, err := utils.OpenSession()
		if err != nil {
			return err
		}
		defer cleanup()

		from, err := utils.ResolveAccount(session, issuer)
		if err != nil {
			return err
		}
		if receiver == "" {
			return errors.New("--receiver is required")
		}
		to, err := session.Book.Resolve(receiver)
		if err != nil {
			return err
		}

		typ, hash, err := claimContent()
		if err != nil {
			return err
		}

		id, receipt, err := session.Client.AddClaim(ctx, from, to, typ, hash[:])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if utils.JSONOutput {
			return utils.PrintJSON(out, struct {
				ID      uint64             `json:"id"`
				Type    string             `json:"claim_type"`
				Proof   offerhub.ProofHash `json:"proof_hash"`
				Receipt *offerhub.Receipt  `json:"receipt"`
			}{id, typ, hash, receipt})
		}
		fmt.Fprintf(out, "Claim:       %d\n", id)
		fmt.Fprintf(out, "Type:        %s\n", typ)
		fmt.Fprintf(out, "Proof:       %s\n", hash.Hex())
		return utils.PrintReceipt(out, receipt)
	},
}

func claimContent() (string, offerhub.ProofHash, error) {
	if proof != "" {
		if claimType == "" {
			return "", offerhub.ProofHash{}, errors.New(
				"--type is required together with --proof",
			)
		}
		h, err := offerhub.ParseProofHash(proof)
		return claimType, h, err
	}

	if title == "" {
		return "", offerhub.ProofHash{}, errors.New(
			"either --proof or the work delivery flags are required",
		)
	}

	w := offerhub.WorkDelivery{
		Title:        title,
		Description:  description,
		DeliveryURLs: urls,
		DeliveryDate: date,
	}
	if w.DeliveryDate == "" {
		w.DeliveryDate = time.Now().UTC().Format(time.DateOnly)
	}
	if attachment != "" {
		f, err := os.Open(attachment)
		if err != nil {
			return "", offerhub.ProofHash{}, errors.Wrap(err, "attachment")
		}
		defer f.Close()
		w.FileHash, err = offerhub.HashFile(f)
		if err != nil {
			return "", offerhub.ProofHash{}, err
		}
	}

	h, err := offerhub.WorkProofHash(w)
	if err != nil {
		return "", offerhub.ProofHash{}, err
	}

	typ := claimType
	if typ == "" {
		typ, err = offerhub.ClaimTypeFor(w)
		if err != nil {
			return "", offerhub.ProofHash{}, err
		}
	}
	return typ, h, nil
}

func init() {
	addCmd.Flags().StringVar(&issuer, "issuer", "", "issuing account, address or alias (default the configured key)")
	addCmd.Flags().StringVar(&receiver, "receiver", "", "receiving account, address or alias")
	addCmd.Flags().StringVar(&claimType, "type", "", "claim type")
	addCmd.Flags().StringVar(&proof, "proof", "", "hex proof hash")
	addCmd.Flags().StringVar(&title, "title", "", "title of the delivered work")
	addCmd.Flags().StringVar(&description, "description", "", "description of the delivered work")
	addCmd.Flags().StringArrayVar(&urls, "url", nil, "delivery URL, repeatable")
	addCmd.Flags().StringVar(&date, "date", "", "delivery date, YYYY-MM-DD or RFC 3339 (default today)")
	addCmd.Flags().StringVar(&attachment, "file", "", "file whose hash is included in the proof")
	addCmd.MarkFlagsMutuallyExclusive("proof", "title")
}
