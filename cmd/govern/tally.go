package govern

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func buildTallyCmd() *cobra.Command {
	var (
		totalPower string
		at         string
	)

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Evaluate a proposal's quorum and approval outcome",
		Long: `Loads a proposal and its governance instance and reports participation,
quorum, and whether the approval threshold is met. In stake mode
--total-power supplies the quorum denominator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proposal, err := loadProposal(cmd)
			if err != nil {
				return err
			}

			governance, err := loadGovernance(cmd)
			if err != nil {
				return err
			}

			total, err := cast.ToUint64E(totalPower)
			if err != nil {
				return fmt.Errorf("invalid --total-power: %w", err)
			}

			res := proposal.Evaluate(governance, total)

			fmt.Printf("for: %d  against: %d  abstain: %d\n",
				proposal.ForVotes, proposal.AgainstVotes, proposal.AbstainVotes)
			fmt.Printf("quorum met: %t\n", res.QuorumMet)
			fmt.Printf("passes approval threshold: %t\n", res.Passed)

			if at != "" {
				when, terr := cast.ToTimeE(at)
				if terr != nil {
					return fmt.Errorf("invalid --at: %w", terr)
				}
				fmt.Printf("effective status at %s: %s\n", when, proposal.EffectiveStatus(when))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&totalPower, "total-power", "0",
		"Total voting power of the bound stake pool (stake mode only)")
	cmd.Flags().StringVar(&at, "at", "",
		"Report the proposal's effective status at this time (RFC3339)")

	return cmd
}
