package govern

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumlabs/govern/types"
)

func Test_newGovernance_ModeBinding(t *testing.T) {
	t.Parallel()

	pool := uuid.New()
	ct := uuid.New()

	tests := []struct {
		name    string
		give    CreateGovernanceInput
		wantErr bool
	}{
		{
			name: "success: stake mode with pool",
			give: CreateGovernanceInput{Name: "a", Mode: types.ModeStake, Config: DefaultConfig(), StakePool: &pool},
		},
		{
			name: "success: collection mode with collection type",
			give: CreateGovernanceInput{Name: "a", Mode: types.ModeCollection, Config: DefaultConfig(), CollectionType: &ct},
		},
		{
			name:    "failure: stake mode without pool",
			give:    CreateGovernanceInput{Name: "a", Mode: types.ModeStake, Config: DefaultConfig()},
			wantErr: true,
		},
		{
			name:    "failure: stake mode with both bindings",
			give:    CreateGovernanceInput{Name: "a", Mode: types.ModeStake, Config: DefaultConfig(), StakePool: &pool, CollectionType: &ct},
			wantErr: true,
		},
		{
			name:    "failure: collection mode with stake pool",
			give:    CreateGovernanceInput{Name: "a", Mode: types.ModeCollection, Config: DefaultConfig(), StakePool: &pool, CollectionType: &ct},
			wantErr: true,
		},
		{
			name:    "failure: unknown mode",
			give:    CreateGovernanceInput{Name: "a", Mode: "plutocracy", Config: DefaultConfig()},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := newGovernance(tt.give, t0)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				require.NoError(t, err)
				// exactly one binding populated
				if tt.give.Mode == types.ModeStake {
					assert.NotNil(t, g.StakePool)
					assert.Nil(t, g.CollectionType)
				} else {
					assert.Nil(t, g.StakePool)
					assert.NotNil(t, g.CollectionType)
				}
			}
		})
	}
}

func Test_newGovernance_ZeroConfigDefaults(t *testing.T) {
	t.Parallel()

	pool := uuid.New()
	g, err := newGovernance(CreateGovernanceInput{
		Name:      "hands off",
		Mode:      types.ModeStake,
		StakePool: &pool,
	}, t0)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().VotingDelay, g.Config.VotingDelay)
	assert.Equal(t, DefaultConfig().VotingPeriod, g.Config.VotingPeriod)
	assert.Equal(t, DefaultConfig().TimelockDelay, g.Config.TimelockDelay)
	assert.Equal(t, DefaultApprovalThresholdBps, g.Config.ApprovalThresholdBps)
}

func Test_Governance_UpdateConfig_TokenScope(t *testing.T) {
	t.Parallel()

	g, _ := newStakeGovernance(t)
	_, otherAdmin := newStakeGovernance(t)

	quorum := uint64(1000)
	err := g.UpdateConfig(otherAdmin, ConfigUpdate{QuorumBps: &quorum})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorization)
	assert.Equal(t, DefaultQuorumBps, g.Config.QuorumBps)
}

func Test_Governance_PauseAsymmetry(t *testing.T) {
	t.Parallel()

	guardian := common.HexToAddress("0xFF")
	pool := uuid.New()
	g, err := newGovernance(CreateGovernanceInput{
		Name:      "guarded",
		Mode:      types.ModeStake,
		Config:    DefaultConfig(),
		StakePool: &pool,
		Guardian:  &guardian,
	}, t0)
	require.NoError(t, err)
	admin := AdminToken{governanceID: g.ID}

	// guardian can force-pause
	require.NoError(t, g.GuardianPause(guardian))
	assert.True(t, g.Paused)

	// a non-guardian cannot
	err = g.GuardianPause(voter1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorization)

	// only the admin unpauses
	require.NoError(t, g.Unpause(admin))
	assert.False(t, g.Paused)

	require.NoError(t, g.Pause(admin))
	assert.True(t, g.Paused)
}

func Test_Governance_EnableCouncil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		members []common.Address
		wantErr string
	}{
		{
			name:    "success: three members",
			members: []common.Address{member1, member2, member3},
		},
		{
			name:    "failure: empty roster",
			members: nil,
			wantErr: "council roster of 0 members",
		},
		{
			name:    "failure: duplicate member",
			members: []common.Address{member1, member1},
			wantErr: "duplicate member",
		},
		{
			name: "failure: roster above maximum",
			members: func() []common.Address {
				m := make([]common.Address, types.MaxCouncilSize+1)
				for i := range m {
					m[i] = common.BytesToAddress([]byte{byte(i + 1)})
				}
				return m
			}(),
			wantErr: "council roster of 12 members",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, admin := newStakeGovernance(t)

			tokens, err := g.EnableCouncil(admin, tt.members)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				assert.False(t, g.CouncilEnabled)

				return
			}

			require.NoError(t, err)
			assert.True(t, g.CouncilEnabled)
			require.Len(t, tokens, len(tt.members))
			for i, tok := range tokens {
				assert.Equal(t, g.ID, tok.GovernanceID())
				assert.Equal(t, tt.members[i], tok.Member())
			}

			// not re-enterable
			_, err = g.EnableCouncil(admin, tt.members)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrState)
		})
	}
}

func Test_Governance_CouncilRoster(t *testing.T) {
	t.Parallel()

	g, admin := newStakeGovernance(t)
	_, err := g.EnableCouncil(admin, []common.Address{member1})
	require.NoError(t, err)

	// add a second seat
	tok, err := g.AddCouncilMember(admin, member2)
	require.NoError(t, err)
	assert.Equal(t, member2, tok.Member())

	// the seat token checks against the live roster
	require.NoError(t, g.checkCouncilSeat(tok))

	// adding the same member twice fails
	_, err = g.AddCouncilMember(admin, member2)
	require.Error(t, err)

	// removal burns the seat
	require.NoError(t, g.RemoveCouncilMember(admin, member2))
	err = g.checkCouncilSeat(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrState)

	// the last member cannot be removed
	err = g.RemoveCouncilMember(admin, member1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResource)
}
