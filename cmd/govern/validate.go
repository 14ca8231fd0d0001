package govern

import (
	"fmt"

	"github.com/spf13/cobra"
)

func buildValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a proposal file",
		Long:  `Loads a proposal from JSON and runs structural validation against it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proposal, err := loadProposal(cmd)
			if err != nil {
				return err
			}

			fmt.Printf("proposal %s (#%d) is valid: %d actions, status %s\n",
				proposal.ID, proposal.Sequence, len(proposal.Actions), proposal.Status)

			return nil
		},
	}

	return cmd
}
