package govern

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quorumlabs/govern/types"
)

func buildThresholdsCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Print council vote thresholds for a roster size",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 1 || size > types.MaxCouncilSize {
				return fmt.Errorf("council size %d outside [1, %d]", size, types.MaxCouncilSize)
			}

			fmt.Printf("council size:        %d\n", size)
			fmt.Printf("fast-track majority: %d\n", types.MajorityThreshold(size))
			fmt.Printf("veto threshold:      %d\n", types.VetoThreshold(size))

			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 3, "Council roster size")

	return cmd
}
