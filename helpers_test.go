package govern

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/quorumlabs/govern/types"
)

// Shared fixtures for the package tests.
var (
	proposer = common.HexToAddress("0x1")
	voter1   = common.HexToAddress("0x2")
	voter2   = common.HexToAddress("0x3")
	voter3   = common.HexToAddress("0x4")

	member1 = common.HexToAddress("0xA")
	member2 = common.HexToAddress("0xB")
	member3 = common.HexToAddress("0xC")

	t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

// newStakeGovernance builds a stake-mode instance with default config.
func newStakeGovernance(t *testing.T) (*Governance, AdminToken) {
	t.Helper()

	pool := uuid.New()
	g, err := newGovernance(CreateGovernanceInput{
		Name:      "stake dao",
		Mode:      types.ModeStake,
		Config:    DefaultConfig(),
		StakePool: &pool,
	}, t0)
	require.NoError(t, err)

	return g, AdminToken{governanceID: g.ID}
}

// newCollectionGovernance builds a collection-mode instance with an
// absolute quorum vote count.
func newCollectionGovernance(t *testing.T, quorumVotes uint64) (*Governance, AdminToken) {
	t.Helper()

	ct := uuid.New()
	cfg := DefaultConfig()
	cfg.QuorumVotes = quorumVotes

	g, err := newGovernance(CreateGovernanceInput{
		Name:           "collection dao",
		Mode:           types.ModeCollection,
		Config:         cfg,
		CollectionType: &ct,
	}, t0)
	require.NoError(t, err)

	return g, AdminToken{governanceID: g.ID}
}

// textActions returns a minimal valid action list.
func textActions() []Action {
	return []Action{{Type: types.ActionText}}
}

// pendingProposal creates a proposal under g at t0.
func pendingProposal(t *testing.T, g *Governance) *Proposal {
	t.Helper()

	p, err := newProposal(g, proposer, "raise treasury cap", "", textActions(), nil, false, t0)
	require.NoError(t, err)

	return p
}

// votingTime returns an instant inside the proposal's voting window.
func votingTime(p *Proposal) time.Time {
	return p.VotingStarts.Add(time.Minute)
}

// afterVoting returns an instant just past the voting window.
func afterVoting(p *Proposal) time.Time {
	return p.VotingEnds.Add(time.Minute)
}
