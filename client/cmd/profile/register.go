package profile

import (
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Registers a profile for the owner account",
	Example: `  offerhub profile register --name "Ada" --metadata-file profile.json \
    --country GB --email ada@example.com --link github:ada`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return write(cmd, (*offerhub.Client).RegisterProfile)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replaces the owner's profile fields",
	Long: `Replaces every mutable field of the owner's profile. Fields not given
are cleared, so pass the full profile each time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return write(cmd, (*offerhub.Client).UpdateProfile)
	},
}

func init() {
	addProfileFlags(registerCmd)
	addProfileFlags(updateCmd)
}
