package govern

import (
	"fmt"
	"time"

	"github.com/quorumlabs/govern/types"
)

// Documented defaults applied by DefaultConfig.
const (
	DefaultQuorumBps            uint64 = 400   // 4%
	DefaultApprovalThresholdBps uint64 = 5000  // 50%
	MaxBps                      uint64 = 10000 // 100%
)

var (
	defaultVotingDelay   = types.NewDuration(24 * time.Hour)
	defaultVotingPeriod  = types.NewDuration(3 * 24 * time.Hour)
	defaultTimelockDelay = types.NewDuration(2 * 24 * time.Hour)

	// Emergency proposals use a fixed short window regardless of config.
	emergencyVotingDelay  = types.NewDuration(time.Hour)
	emergencyVotingPeriod = types.NewDuration(24 * time.Hour)
)

// Parameter bounds enforced by Config.Validate.
var (
	minVotingDelay   = time.Hour
	maxVotingDelay   = 7 * 24 * time.Hour
	minVotingPeriod  = 24 * time.Hour
	maxVotingPeriod  = 14 * 24 * time.Hour
	minTimelockDelay = 12 * time.Hour
	maxTimelockDelay = 7 * 24 * time.Hour
)

// Config holds the numeric configuration of a governance instance.
//
// QuorumBps applies in stake mode (participation as a fraction of total
// voting power); QuorumVotes applies in collection mode (absolute count of
// votes). Only the field matching the instance's voting mode is consulted.
type Config struct {
	QuorumBps            uint64         `json:"quorumBps"`
	QuorumVotes          uint64         `json:"quorumVotes"`
	VotingDelay          types.Duration `json:"votingDelay"`
	VotingPeriod         types.Duration `json:"votingPeriod"`
	TimelockDelay        types.Duration `json:"timelockDelay"`
	FastTrackTimelock    types.Duration `json:"fastTrackTimelock"`
	ProposalThreshold    uint64         `json:"proposalThreshold"`
	ApprovalThresholdBps uint64         `json:"approvalThresholdBps"`
}

// DefaultConfig returns the documented default configuration: 4% quorum,
// 1 day voting delay, 3 day voting period, 2 day timelock, 50% approval.
// The fast-track timelock defaults to half the standard timelock.
func DefaultConfig() Config {
	return Config{
		QuorumBps:            DefaultQuorumBps,
		VotingDelay:          defaultVotingDelay,
		VotingPeriod:         defaultVotingPeriod,
		TimelockDelay:        defaultTimelockDelay,
		FastTrackTimelock:    types.NewDuration(defaultTimelockDelay.Duration / 2),
		ApprovalThresholdBps: DefaultApprovalThresholdBps,
	}
}

// withDefaults fills fields whose zero value cannot be meant literally:
// unset durations and a zero approval threshold take the documented
// defaults, and an unset fast-track timelock takes half the timelock
// delay. Quorum and proposal-threshold values are kept as given, zero is
// a valid setting for each.
func (c Config) withDefaults() Config {
	if c.VotingDelay.Duration == 0 {
		c.VotingDelay = defaultVotingDelay
	}
	if c.VotingPeriod.Duration == 0 {
		c.VotingPeriod = defaultVotingPeriod
	}
	if c.TimelockDelay.Duration == 0 {
		c.TimelockDelay = defaultTimelockDelay
	}
	if c.FastTrackTimelock.Duration == 0 {
		c.FastTrackTimelock = types.NewDuration(c.TimelockDelay.Duration / 2)
	}
	if c.ApprovalThresholdBps == 0 {
		c.ApprovalThresholdBps = DefaultApprovalThresholdBps
	}

	return c
}

// Validate checks every parameter against its documented bound.
func (c Config) Validate() error {
	if d := c.VotingDelay.Duration; d < minVotingDelay || d > maxVotingDelay {
		return NewConfigBoundError("voting delay", d.String(),
			fmt.Sprintf("[%s, %s]", minVotingDelay, maxVotingDelay))
	}
	if d := c.VotingPeriod.Duration; d < minVotingPeriod || d > maxVotingPeriod {
		return NewConfigBoundError("voting period", d.String(),
			fmt.Sprintf("[%s, %s]", minVotingPeriod, maxVotingPeriod))
	}
	if d := c.TimelockDelay.Duration; d < minTimelockDelay || d > maxTimelockDelay {
		return NewConfigBoundError("timelock delay", d.String(),
			fmt.Sprintf("[%s, %s]", minTimelockDelay, maxTimelockDelay))
	}
	if c.FastTrackTimelock.Duration < 0 || c.FastTrackTimelock.Duration > maxTimelockDelay {
		return NewConfigBoundError("fast-track timelock", c.FastTrackTimelock.String(),
			fmt.Sprintf("[0s, %s]", maxTimelockDelay))
	}
	if c.ApprovalThresholdBps == 0 || c.ApprovalThresholdBps > MaxBps {
		return NewConfigBoundError("approval threshold",
			fmt.Sprintf("%dbps", c.ApprovalThresholdBps), "(0, 10000]")
	}
	if c.QuorumBps > MaxBps {
		return NewConfigBoundError("quorum",
			fmt.Sprintf("%dbps", c.QuorumBps), "[0, 10000]")
	}

	return nil
}

// ConfigUpdate carries a partial configuration change. Nil fields are left
// untouched; the merged result is re-validated against the bound table
// before it is applied.
type ConfigUpdate struct {
	QuorumBps            *uint64         `json:"quorumBps,omitempty"`
	QuorumVotes          *uint64         `json:"quorumVotes,omitempty"`
	VotingDelay          *types.Duration `json:"votingDelay,omitempty"`
	VotingPeriod         *types.Duration `json:"votingPeriod,omitempty"`
	TimelockDelay        *types.Duration `json:"timelockDelay,omitempty"`
	FastTrackTimelock    *types.Duration `json:"fastTrackTimelock,omitempty"`
	ProposalThreshold    *uint64         `json:"proposalThreshold,omitempty"`
	ApprovalThresholdBps *uint64         `json:"approvalThresholdBps,omitempty"`
}

// apply merges the update into a copy of the config and validates the result.
func (u ConfigUpdate) apply(c Config) (Config, error) {
	if u.QuorumBps != nil {
		c.QuorumBps = *u.QuorumBps
	}
	if u.QuorumVotes != nil {
		c.QuorumVotes = *u.QuorumVotes
	}
	if u.VotingDelay != nil {
		c.VotingDelay = *u.VotingDelay
	}
	if u.VotingPeriod != nil {
		c.VotingPeriod = *u.VotingPeriod
	}
	if u.TimelockDelay != nil {
		c.TimelockDelay = *u.TimelockDelay
	}
	if u.FastTrackTimelock != nil {
		c.FastTrackTimelock = *u.FastTrackTimelock
	}
	if u.ProposalThreshold != nil {
		c.ProposalThreshold = *u.ProposalThreshold
	}
	if u.ApprovalThresholdBps != nil {
		c.ApprovalThresholdBps = *u.ApprovalThresholdBps
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
