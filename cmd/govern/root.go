package govern

import (
	"os"

	"github.com/spf13/cobra"
)

// BuildGovernCmd builds the root command for inspecting governance
// proposals offline: structural validation, tally evaluation, and council
// threshold math.
func BuildGovernCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "govern",
		Short: "Inspect governance proposals",
		Long:  ``,
	}

	cmd.PersistentFlags().String("proposal", os.Getenv("GOVERN_PROPOSAL"),
		"Path to the JSON file containing the proposal")
	cmd.PersistentFlags().String("governance", os.Getenv("GOVERN_GOVERNANCE"),
		"Path to the JSON file containing the governance instance")

	cmd.AddCommand(buildValidateCmd())
	cmd.AddCommand(buildTallyCmd())
	cmd.AddCommand(buildThresholdsCmd())

	return &cmd
}
