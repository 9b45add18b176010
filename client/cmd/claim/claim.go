package claim

import (
	"github.com/spf13/cobra"
)

var ClaimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Issues and reads claims",
}

func init() {
	ClaimCmd.AddCommand(addCmd)
	ClaimCmd.AddCommand(getCmd)
	ClaimCmd.AddCommand(listCmd)
	ClaimCmd.AddCommand(totalCmd)
}
