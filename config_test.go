package govern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumlabs/govern/types"
)

func Test_DefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint64(400), cfg.QuorumBps)
	assert.Equal(t, uint64(5000), cfg.ApprovalThresholdBps)
	assert.Equal(t, 24*time.Hour, cfg.VotingDelay.Duration)
	assert.Equal(t, 3*24*time.Hour, cfg.VotingPeriod.Duration)
	assert.Equal(t, 2*24*time.Hour, cfg.TimelockDelay.Duration)
}

func Test_Config_withDefaults(t *testing.T) {
	t.Parallel()

	t.Run("success: zero config takes the documented defaults", func(t *testing.T) {
		t.Parallel()

		cfg := Config{}.withDefaults()

		require.NoError(t, cfg.Validate())
		assert.Equal(t, 24*time.Hour, cfg.VotingDelay.Duration)
		assert.Equal(t, 3*24*time.Hour, cfg.VotingPeriod.Duration)
		assert.Equal(t, 2*24*time.Hour, cfg.TimelockDelay.Duration)
		assert.Equal(t, 24*time.Hour, cfg.FastTrackTimelock.Duration)
		assert.Equal(t, uint64(5000), cfg.ApprovalThresholdBps)
		// zero is a valid quorum and proposal threshold, so both stay
		assert.Zero(t, cfg.QuorumBps)
		assert.Zero(t, cfg.ProposalThreshold)
	})

	t.Run("success: set fields are untouched", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			VotingDelay:   types.MustParseDuration("2h"),
			TimelockDelay: types.MustParseDuration("18h"),
		}.withDefaults()

		assert.Equal(t, 2*time.Hour, cfg.VotingDelay.Duration)
		assert.Equal(t, 18*time.Hour, cfg.TimelockDelay.Duration)
		// the fast-track default follows the given timelock, not the stock one
		assert.Equal(t, 9*time.Hour, cfg.FastTrackTimelock.Duration)
	})
}

func Test_Config_Validate(t *testing.T) {
	t.Parallel()

	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "success: defaults",
			mutate: func(c *Config) {},
		},
		{
			name:   "success: bounds inclusive",
			mutate: func(c *Config) { c.VotingDelay = types.MustParseDuration("1h") },
		},
		{
			name:    "failure: voting delay too short",
			mutate:  func(c *Config) { c.VotingDelay = types.MustParseDuration("59m") },
			wantErr: "voting delay",
		},
		{
			name:    "failure: voting delay too long",
			mutate:  func(c *Config) { c.VotingDelay = types.MustParseDuration("169h") },
			wantErr: "voting delay",
		},
		{
			name:    "failure: voting period below one day",
			mutate:  func(c *Config) { c.VotingPeriod = types.MustParseDuration("23h") },
			wantErr: "voting period",
		},
		{
			name:    "failure: voting period above fourteen days",
			mutate:  func(c *Config) { c.VotingPeriod = types.MustParseDuration("337h") },
			wantErr: "voting period",
		},
		{
			name:    "failure: timelock below twelve hours",
			mutate:  func(c *Config) { c.TimelockDelay = types.MustParseDuration("11h") },
			wantErr: "timelock delay",
		},
		{
			name:    "failure: zero approval threshold",
			mutate:  func(c *Config) { c.ApprovalThresholdBps = 0 },
			wantErr: "approval threshold",
		},
		{
			name:    "failure: approval threshold above 100%",
			mutate:  func(c *Config) { c.ApprovalThresholdBps = 10001 },
			wantErr: "approval threshold",
		},
		{
			name:    "failure: quorum above 100%",
			mutate:  func(c *Config) { c.QuorumBps = 10001 },
			wantErr: "quorum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrConfiguration)
			}
		})
	}
}

func Test_ConfigUpdate_apply(t *testing.T) {
	t.Parallel()

	base := DefaultConfig()

	quorum := uint64(1000)
	period := types.MustParseDuration("96h")
	merged, err := ConfigUpdate{QuorumBps: &quorum, VotingPeriod: &period}.apply(base)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), merged.QuorumBps)
	assert.Equal(t, 96*time.Hour, merged.VotingPeriod.Duration)
	// untouched fields survive
	assert.Equal(t, base.TimelockDelay, merged.TimelockDelay)

	bad := types.MustParseDuration("30m")
	_, err = ConfigUpdate{VotingDelay: &bad}.apply(base)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}
