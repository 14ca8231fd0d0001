package govern

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumlabs/govern/types"
)

// councilGovernance returns a stake-mode instance with an enabled council
// of the given members.
func councilGovernance(t *testing.T, members ...common.Address) (*Governance, AdminToken) {
	t.Helper()

	g, admin := newStakeGovernance(t)
	_, err := g.EnableCouncil(admin, members)
	require.NoError(t, err)

	return g, admin
}

func Test_Proposal_FastTrack_ThresholdExact(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1, member2, member3)
	p := pendingProposal(t, g)
	now := votingTime(p)

	// majority threshold for 3 members is 2: the first vote never fires
	require.NoError(t, p.CastFastTrackVote(now, g, member1))
	assert.False(t, p.FastTracked)

	// the second distinct vote fires exactly
	require.NoError(t, p.CastFastTrackVote(now, g, member2))
	assert.True(t, p.FastTracked)

	// and further fast-track votes are rejected outright
	err := p.CastFastTrackVote(now, g, member3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrState)
}

func Test_Proposal_FastTrack_SingleMemberCouncil(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1)
	p := pendingProposal(t, g)

	require.NoError(t, p.CastFastTrackVote(votingTime(p), g, member1))
	assert.True(t, p.FastTracked)
}

func Test_Proposal_FastTrack_Dedup(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1, member2, member3)
	p := pendingProposal(t, g)
	now := votingTime(p)

	require.NoError(t, p.CastFastTrackVote(now, g, member1))

	err := p.CastFastTrackVote(now, g, member1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrState)
	assert.False(t, p.FastTracked)
}

func Test_Proposal_FastTrack_CollapsesWindow(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1)
	p := pendingProposal(t, g)

	// fast-track lands before voting starts: window collapses to start
	// now with the configured period
	now := t0.Add(time.Hour)
	require.True(t, now.Before(p.VotingStarts))

	require.NoError(t, p.CastFastTrackVote(now, g, member1))

	assert.Equal(t, now, p.VotingStarts)
	assert.Equal(t, now.Add(g.Config.VotingPeriod.Duration), p.VotingEnds)
}

func Test_Proposal_FastTrack_ReducedTimelock(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1)
	p := pendingProposal(t, g)
	now := votingTime(p)

	require.NoError(t, p.CastFastTrackVote(now, g, member1))

	_, err := p.CastStakeVote(now, uuid.New(), types.SupportFor, 500)
	require.NoError(t, err)

	finalizeAt := afterVoting(p)
	require.NoError(t, p.Finalize(finalizeAt, g, 1000))

	require.Equal(t, types.StatusSucceeded, p.Status)
	assert.Equal(t, finalizeAt.Add(g.Config.FastTrackTimelock.Duration), p.ExecuteAfter)
}

// Three-member council: two fast-track votes auto-fire; one veto vote is
// short of the threshold of 2 and the second distinct veto vetoes.
func Test_Proposal_CouncilOverride_Scenario(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1, member2, member3)
	p := pendingProposal(t, g)
	now := votingTime(p)

	require.NoError(t, p.CastFastTrackVote(now, g, member1))
	require.NoError(t, p.CastFastTrackVote(now, g, member2))
	assert.True(t, p.FastTracked)

	_, err := p.CastStakeVote(now, uuid.New(), types.SupportFor, 500)
	require.NoError(t, err)
	require.NoError(t, p.Finalize(afterVoting(p), g, 1000))
	require.Equal(t, types.StatusSucceeded, p.Status)

	vetoAt := p.ExecuteAfter.Add(-time.Minute)
	require.NoError(t, p.CastVetoVote(vetoAt, g, member1))
	assert.Equal(t, types.StatusSucceeded, p.Status)

	require.NoError(t, p.CastVetoVote(vetoAt, g, member2))
	assert.Equal(t, types.StatusVetoed, p.Status)
}

func Test_Proposal_Veto_Window(t *testing.T) {
	t.Parallel()

	g, _ := councilGovernance(t, member1, member2, member3)

	t.Run("failure: before success", func(t *testing.T) {
		t.Parallel()

		p := pendingProposal(t, g)

		err := p.CastVetoVote(votingTime(p), g, member1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrState)
	})

	t.Run("failure: at execute-after", func(t *testing.T) {
		t.Parallel()

		p := succeededProposal(t, g, textActions())

		err := p.CastVetoVote(p.ExecuteAfter, g, member1)
		require.Error(t, err)

		var winErr *VetoWindowError
		assert.ErrorAs(t, err, &winErr)
	})

	t.Run("failure: duplicate member", func(t *testing.T) {
		t.Parallel()

		p := succeededProposal(t, g, textActions())
		vetoAt := p.ExecuteAfter.Add(-time.Minute)

		require.NoError(t, p.CastVetoVote(vetoAt, g, member1))

		err := p.CastVetoVote(vetoAt, g, member1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrState)
	})

	t.Run("success: queued proposals remain vetoable", func(t *testing.T) {
		t.Parallel()

		p := succeededProposal(t, g, textActions())
		require.NoError(t, p.Queue(afterVoting(p), g))

		vetoAt := p.ExecuteAfter.Add(-time.Minute)
		require.NoError(t, p.CastVetoVote(vetoAt, g, member1))
		require.NoError(t, p.CastVetoVote(vetoAt, g, member2))
		assert.Equal(t, types.StatusVetoed, p.Status)
	})
}
