package govern

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AdminToken_Scope(t *testing.T) {
	t.Parallel()

	g1, admin1 := newStakeGovernance(t)
	g2, admin2 := newStakeGovernance(t)

	require.NoError(t, g1.Pause(admin1))

	err := g2.Pause(admin1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorization)
	assert.False(t, g2.Paused)

	require.NoError(t, g2.Pause(admin2))
}

func Test_ExecutionAuthorization_Redeem(t *testing.T) {
	t.Parallel()

	proposalID := uuid.New()
	governanceID := uuid.New()
	targetID := uuid.New()

	t.Run("success: single redemption", func(t *testing.T) {
		t.Parallel()

		auth := newExecutionAuthorization(proposalID, governanceID, targetID)
		require.False(t, auth.Consumed())

		require.NoError(t, auth.Redeem(proposalID, governanceID, targetID))
		assert.True(t, auth.Consumed())
	})

	t.Run("failure: second redemption", func(t *testing.T) {
		t.Parallel()

		auth := newExecutionAuthorization(proposalID, governanceID, targetID)
		require.NoError(t, auth.Redeem(proposalID, governanceID, targetID))

		err := auth.Redeem(proposalID, governanceID, targetID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrState)
	})

	t.Run("failure: mismatch does not burn the authorization", func(t *testing.T) {
		t.Parallel()

		auth := newExecutionAuthorization(proposalID, governanceID, targetID)

		err := auth.Redeem(proposalID, governanceID, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthorization)
		assert.False(t, auth.Consumed())

		err = auth.Redeem(uuid.New(), governanceID, targetID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthorization)

		err = auth.Redeem(proposalID, uuid.New(), targetID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthorization)

		// still redeemable with the minted triple
		require.NoError(t, auth.Redeem(proposalID, governanceID, targetID))
	})
}

func Test_ExecutionAuthorization_ConcurrentRedeem(t *testing.T) {
	t.Parallel()

	proposalID := uuid.New()
	governanceID := uuid.New()
	targetID := uuid.New()
	auth := newExecutionAuthorization(proposalID, governanceID, targetID)

	const attempts = 16
	errs := make(chan error, attempts)
	for range attempts {
		go func() {
			errs <- auth.Redeem(proposalID, governanceID, targetID)
		}()
	}

	var succeeded int
	for range attempts {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrState)
		}
	}
	assert.Equal(t, 1, succeeded)
}
