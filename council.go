package govern

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quorumlabs/govern/types"
)

// Council override logic: fast-track and veto votes layered on a live
// proposal, gated by the instance's council roster. Threshold math lives in
// types (MajorityThreshold, VetoThreshold).

// CastFastTrackVote records one council member's fast-track vote. Each
// member votes at most once per proposal. When the distinct-vote count
// reaches the majority threshold for the current roster size the proposal
// is fast-tracked: the reduced timelock applies at finalization, and if
// voting had not yet started the window collapses to start immediately with
// at least a one day period.
func (p *Proposal) CastFastTrackVote(now time.Time, g *Governance, member common.Address) error {
	if p.FastTracked {
		return NewAlreadyFastTrackedError(p.ID)
	}
	if p.Status != types.StatusPending {
		return NewInvalidStatusError(p.Status, types.StatusPending, types.StatusActive)
	}
	if _, ok := p.FastTrackVotes[member]; ok {
		return NewDuplicateCouncilVoteError("fast-track", member)
	}

	p.FastTrackVotes[member] = struct{}{}

	if len(p.FastTrackVotes) >= types.MajorityThreshold(len(g.CouncilMembers)) {
		p.applyFastTrack(now)
	}

	return nil
}

// applyFastTrack flips the flag and, when voting has not started, collapses
// the voting window to begin now, preserving the configured period with a
// one day floor.
func (p *Proposal) applyFastTrack(now time.Time) {
	p.FastTracked = true

	if now.Before(p.VotingStarts) {
		period := p.VotingEnds.Sub(p.VotingStarts)
		if period < 24*time.Hour {
			period = 24 * time.Hour
		}

		p.VotingStarts = now
		p.VotingEnds = now.Add(period)
	}
}

// CastVetoVote records one council member's veto vote. Vetos are only valid
// while the proposal is Succeeded or Queued and strictly before its
// execute-after time. Reaching the veto threshold blocks execution for good.
func (p *Proposal) CastVetoVote(now time.Time, g *Governance, member common.Address) error {
	if p.Status != types.StatusSucceeded && p.Status != types.StatusQueued {
		return NewInvalidStatusError(p.Status, types.StatusSucceeded, types.StatusQueued)
	}
	if !now.Before(p.ExecuteAfter) {
		return NewVetoWindowError(now, p.ExecuteAfter)
	}
	if _, ok := p.VetoVotes[member]; ok {
		return NewDuplicateCouncilVoteError("veto", member)
	}

	p.VetoVotes[member] = struct{}{}

	if len(p.VetoVotes) >= types.VetoThreshold(len(g.CouncilMembers)) {
		p.Status = types.StatusVetoed
	}

	return nil
}
