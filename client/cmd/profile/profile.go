package profile

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/app"
	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
)

var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Registers, updates and reads profiles",
}

// Flags shared by register and update.
var (
	owner        string
	metadataURI  string
	metadataFile string
	displayName  string
	countryCode  string
	email        string
	emailHash    string
	links        []string
)

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&owner, "owner", "", "profile owner, address or alias (default the configured key)")
	cmd.Flags().StringVar(&metadataURI, "metadata-uri", "", "metadata document URI")
	cmd.Flags().StringVar(&metadataFile, "metadata-file", "", "derive an ipfs:// metadata URI from this document")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	cmd.Flags().StringVar(&countryCode, "country", "", "two letter country code")
	cmd.Flags().StringVar(&email, "email", "", "email address, stored hashed")
	cmd.Flags().StringVar(&emailHash, "email-hash", "", "hex email hash, when the address should not be passed")
	cmd.Flags().StringArrayVar(&links, "link", nil, "linked account as platform:handle, repeatable")
	cmd.MarkFlagsMutuallyExclusive("metadata-uri", "metadata-file")
	cmd.MarkFlagsMutuallyExclusive("email", "email-hash")
}

func profileInput(session *app.Session) (offerhub.ProfileInput, error) {
	in := offerhub.ProfileInput{
		MetadataURI: metadataURI,
		DisplayName: displayName,
		CountryCode: strings.ToUpper(countryCode),
	}

	var err error
	in.Owner, err = utils.ResolveAccount(session, owner)
	if err != nil {
		return in, err
	}

	if metadataFile != "" {
		doc, err := os.ReadFile(metadataFile)
		if err != nil {
			return in, errors.Wrap(err, "metadata file")
		}
		in.MetadataURI, err = offerhub.MetadataURIFromDocument(doc)
		if err != nil {
			return in, err
		}
	}

	switch {
	case email != "":
		h := offerhub.EmailHash(email)
		in.EmailHash = h[:]
	case emailHash != "":
		h, err := offerhub.ParseProofHash(emailHash)
		if err != nil {
			return in, err
		}
		in.EmailHash = h[:]
	}

	for _, l := range links {
		platform, handle, ok := strings.Cut(l, ":")
		if !ok || platform == "" || handle == "" {
			return in, errors.Errorf("linked account %q is not platform:handle", l)
		}
		in.LinkedAccounts = append(in.LinkedAccounts, offerhub.LinkedAccount{
			Platform: platform,
			Handle:   handle,
		})
	}

	return in, nil
}

func write(
	cmd *cobra.Command,
	op func(
		*offerhub.Client,
		context.Context,
		offerhub.ProfileInput,
	) (*offerhub.Receipt, error),
) error {
	ctx, cancel := utils.CommandContext(cmd)
	defer cancel()

	session, cleanup, err := utils.OpenSession()
	if err != nil {
		return err
	}
	defer cleanup()

	in, err := profileInput(session)
	if err != nil {
		return err
	}

	receipt, err := op(session.Client, ctx, in)
	if err != nil {
		return err
	}
	return utils.PrintReceipt(cmd.OutOrStdout(), receipt)
}

func init() {
	ProfileCmd.AddCommand(registerCmd)
	ProfileCmd.AddCommand(updateCmd)
	ProfileCmd.AddCommand(getCmd)
	ProfileCmd.AddCommand(summaryCmd)
}
