package govern

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quorumlabs/govern"
)

func loadProposal(cmd *cobra.Command) (*govern.Proposal, error) {
	path, err := cmd.Flags().GetString("proposal")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("no proposal file given, use --proposal")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return govern.ReadProposal(f)
}

func loadGovernance(cmd *cobra.Command) (*govern.Governance, error) {
	path, err := cmd.Flags().GetString("governance")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("no governance file given, use --governance")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return govern.ReadGovernance(f)
}
