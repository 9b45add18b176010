package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/client/utils"
	"github.com/OFFER-HUB/protocol-offer-hub/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the offerhub version",
	Long:  `Display the offerhub version and optionally the SHA256 and MD5 hashes of the executable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, config.GetVersionString())

		showChecksum, _ := cmd.Flags().GetBool("checksum")
		if !showChecksum {
			return nil
		}

		executable, err := os.Executable()
		if err != nil {
			return err
		}
		sha256Hash, md5Hash, err := utils.CalculateFileHashes(executable)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "SHA256: %s\n", sha256Hash)
		fmt.Fprintf(out, "MD5: %s\n", md5Hash)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("checksum", false, "Show SHA256 and MD5 checksums of the executable")
	rootCmd.AddCommand(versionCmd)
}
