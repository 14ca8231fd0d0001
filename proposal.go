package govern

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/types"
)

// executionWindow is the fixed interval after the timelock expires during
// which a succeeded proposal may be executed before it expires.
const executionWindow = 7 * 24 * time.Hour

// Proposal is a governance proposal and its full voting state.
//
// The voting window and timelock timestamps are computed once, from the
// governance config current at creation and finalization time. Config edits
// made while a proposal is open never retroactively move its windows.
//
// Each proposal carries its own three dedup sets, one per power source, so
// proposals under the same instance never contend on shared vote state.
type Proposal struct {
	ID           uuid.UUID      `json:"id" validate:"required"`
	GovernanceID uuid.UUID      `json:"governanceId" validate:"required"`
	Sequence     uint64         `json:"sequence"`
	Proposer     common.Address `json:"proposer"`
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`

	Status types.ProposalStatus `json:"status" validate:"required"`

	VotingStarts      time.Time `json:"votingStarts"`
	VotingEnds        time.Time `json:"votingEnds"`
	ExecuteAfter      time.Time `json:"executeAfter,omitzero"`
	ExecutionDeadline time.Time `json:"executionDeadline,omitzero"`

	ForVotes     uint64 `json:"forVotes"`
	AgainstVotes uint64 `json:"againstVotes"`
	AbstainVotes uint64 `json:"abstainVotes"`

	VotedAddresses map[common.Address]struct{} `json:"votedAddresses"`
	VotedPositions map[uuid.UUID]struct{}      `json:"votedPositions"`
	VotedVaults    map[uuid.UUID]struct{}      `json:"votedVaults"`

	Actions []Action `json:"actions" validate:"required,min=1,max=10"`

	VetoVotes      map[common.Address]struct{} `json:"vetoVotes"`
	FastTrackVotes map[common.Address]struct{} `json:"fastTrackVotes"`
	FastTracked    bool                        `json:"fastTracked"`

	TimelockOverride *types.Duration `json:"timelockOverride,omitempty"`
	Emergency        bool            `json:"emergency"`

	CreatedAt time.Time `json:"createdAt"`
}

// VoteReceipt records one accepted vote: which source backed it, the dedup
// key that was recorded, and the weight added to the tally.
type VoteReceipt struct {
	Source  types.VoteSource  `json:"source"`
	Key     string            `json:"key"`
	Support types.VoteSupport `json:"support"`
	Weight  uint64            `json:"weight"`
}

// TallyResult is the outcome of the quorum and approval evaluation.
type TallyResult struct {
	QuorumMet bool `json:"quorumMet"`
	Passed    bool `json:"passed"`
}

// newProposal builds a Pending proposal with its voting window frozen from
// the instance's current config. Emergency proposals use the fixed 1 hour
// delay / 1 day period and are preset fast-tracked.
func newProposal(g *Governance, proposer common.Address, title, description string,
	actions []Action, override *types.Duration, emergency bool, now time.Time,
) (*Proposal, error) {
	if err := validActions(actions); err != nil {
		return nil, err
	}

	// A custom timelock is proposer-supplied, so it is held to the same
	// bound as the configured timelock delay. Anything shorter would also
	// collapse the council's veto window.
	if override != nil {
		if d := override.Duration; d < minTimelockDelay || d > maxTimelockDelay {
			return nil, NewConfigBoundError("timelock override", d.String(),
				fmt.Sprintf("[%s, %s]", minTimelockDelay, maxTimelockDelay))
		}
	}

	delay := g.Config.VotingDelay
	period := g.Config.VotingPeriod
	if emergency {
		delay = emergencyVotingDelay
		period = emergencyVotingPeriod
	}

	starts := now.Add(delay.Duration)

	p := &Proposal{
		ID:           uuid.New(),
		GovernanceID: g.ID,
		Sequence:     g.ProposalCount + 1,
		Proposer:     proposer,
		Title:        title,
		Description:  description,
		Status:       types.StatusPending,
		VotingStarts: starts,
		VotingEnds:   starts.Add(period.Duration),

		VotedAddresses: make(map[common.Address]struct{}),
		VotedPositions: make(map[uuid.UUID]struct{}),
		VotedVaults:    make(map[uuid.UUID]struct{}),
		VetoVotes:      make(map[common.Address]struct{}),
		FastTrackVotes: make(map[common.Address]struct{}),

		Actions:          append([]Action(nil), actions...),
		TimelockOverride: override,
		Emergency:        emergency,
		FastTracked:      emergency,
		CreatedAt:        now,
	}

	return p, nil
}

// ReadProposal decodes a proposal from JSON and validates it.
func ReadProposal(r io.Reader) (*Proposal, error) {
	var p Proposal
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// WriteProposal encodes a proposal as indented JSON.
func WriteProposal(w io.Writer, p *Proposal) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(p)
}

// Validate runs tag-based validation followed by the structural checks a
// JSON round-trip cannot express.
func (p *Proposal) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}

	if _, ok := types.StringToProposalStatus[string(p.Status)]; !ok {
		return NewConfigBoundError("status", string(p.Status), "known proposal status")
	}
	if err := validActions(p.Actions); err != nil {
		return err
	}
	if !p.VotingEnds.After(p.VotingStarts) {
		return NewConfigBoundError("voting window", p.VotingEnds.Format(time.RFC3339),
			"voting end after voting start")
	}

	return nil
}

// EffectiveStatus derives the externally visible status at the given time.
// Active is a view, never stored: a Pending proposal whose voting window
// contains now reports Active.
func (p *Proposal) EffectiveStatus(now time.Time) types.ProposalStatus {
	if p.Status == types.StatusPending && p.inVotingWindow(now) {
		return types.StatusActive
	}

	return p.Status
}

func (p *Proposal) inVotingWindow(now time.Time) bool {
	return !now.Before(p.VotingStarts) && now.Before(p.VotingEnds)
}

// checkVotable gates the shared vote-cast path: the stored status must still
// be Pending and now must lie inside [votingStarts, votingEnds).
func (p *Proposal) checkVotable(now time.Time) error {
	if p.Status != types.StatusPending {
		return NewInvalidStatusError(p.Status, types.StatusPending, types.StatusActive)
	}
	if !p.inVotingWindow(now) {
		return NewVotingWindowError(now, p.VotingStarts, p.VotingEnds)
	}

	return nil
}

// addVote applies a validated vote to the matching tally.
func (p *Proposal) addVote(support types.VoteSupport, weight uint64) error {
	switch support {
	case types.SupportFor:
		p.ForVotes += weight
	case types.SupportAgainst:
		p.AgainstVotes += weight
	case types.SupportAbstain:
		p.AbstainVotes += weight
	default:
		return NewConfigBoundError("support", string(support), "against|for|abstain")
	}

	return nil
}

// CastStakeVote records a stake-weighted vote, deduplicated on the stake
// position id.
func (p *Proposal) CastStakeVote(now time.Time, positionID uuid.UUID,
	support types.VoteSupport, weight uint64,
) (VoteReceipt, error) {
	if err := p.checkVotable(now); err != nil {
		return VoteReceipt{}, err
	}
	if _, ok := p.VotedPositions[positionID]; ok {
		return VoteReceipt{}, NewDuplicateVoteError(types.SourceStakePosition, positionID.String())
	}
	if err := p.addVote(support, weight); err != nil {
		return VoteReceipt{}, err
	}

	p.VotedPositions[positionID] = struct{}{}

	return VoteReceipt{
		Source:  types.SourceStakePosition,
		Key:     positionID.String(),
		Support: support,
		Weight:  weight,
	}, nil
}

// CastCollectionVote records a collection-weighted vote, deduplicated on the
// holder's vault id.
func (p *Proposal) CastCollectionVote(now time.Time, vaultID uuid.UUID,
	support types.VoteSupport, weight uint64,
) (VoteReceipt, error) {
	if err := p.checkVotable(now); err != nil {
		return VoteReceipt{}, err
	}
	if _, ok := p.VotedVaults[vaultID]; ok {
		return VoteReceipt{}, NewDuplicateVoteError(types.SourceCollectionVault, vaultID.String())
	}
	if err := p.addVote(support, weight); err != nil {
		return VoteReceipt{}, err
	}

	p.VotedVaults[vaultID] = struct{}{}

	return VoteReceipt{
		Source:  types.SourceCollectionVault,
		Key:     vaultID.String(),
		Support: support,
		Weight:  weight,
	}, nil
}

// CastDelegatedVote records a delegated vote, deduplicated on the
// delegator's address. The weight is the delegation's snapshotted power.
func (p *Proposal) CastDelegatedVote(now time.Time, delegator common.Address,
	support types.VoteSupport, weight uint64,
) (VoteReceipt, error) {
	if err := p.checkVotable(now); err != nil {
		return VoteReceipt{}, err
	}
	if _, ok := p.VotedAddresses[delegator]; ok {
		return VoteReceipt{}, NewDuplicateVoteError(types.SourceDelegation, delegator.String())
	}
	if err := p.addVote(support, weight); err != nil {
		return VoteReceipt{}, err
	}

	p.VotedAddresses[delegator] = struct{}{}

	return VoteReceipt{
		Source:  types.SourceDelegation,
		Key:     delegator.String(),
		Support: support,
		Weight:  weight,
	}, nil
}

// Evaluate computes the quorum and approval outcome against the instance's
// config. In stake mode quorum is participation relative to total voting
// power in basis points; in collection mode it is an absolute vote count.
// Abstain counts toward quorum but not toward the approval ratio.
//
// All comparisons run in big.Int so large tallies cannot overflow.
func (p *Proposal) Evaluate(g *Governance, totalPower uint64) TallyResult {
	participation := p.ForVotes + p.AgainstVotes + p.AbstainVotes

	var quorumMet bool
	switch g.Mode {
	case types.ModeCollection:
		quorumMet = participation >= g.Config.QuorumVotes
	default:
		// participation * 10000 >= totalPower * quorumBps
		quorumMet = scaledAtLeast(participation, totalPower, g.Config.QuorumBps)
	}

	// forVotes * 10000 >= (forVotes + againstVotes) * approvalBps
	passed := scaledAtLeast(p.ForVotes, p.ForVotes+p.AgainstVotes, g.Config.ApprovalThresholdBps)

	return TallyResult{QuorumMet: quorumMet, Passed: passed}
}

// scaledAtLeast reports lhs*10000 >= rhs*bps without uint64 overflow.
func scaledAtLeast(lhs, rhs, bps uint64) bool {
	l := new(big.Int).Mul(new(big.Int).SetUint64(lhs), big.NewInt(int64(MaxBps)))
	r := new(big.Int).Mul(new(big.Int).SetUint64(rhs), new(big.Int).SetUint64(bps))

	return l.Cmp(r) >= 0
}

// Finalize closes voting and resolves the outcome. It may only run once the
// voting window has ended and while the stored status is still Pending.
// On success the timelock window is set from the instance's current config;
// otherwise the proposal is Defeated.
func (p *Proposal) Finalize(now time.Time, g *Governance, totalPower uint64) error {
	if p.Status != types.StatusPending {
		return NewInvalidStatusError(p.Status, types.StatusPending, types.StatusActive)
	}
	if now.Before(p.VotingEnds) {
		return NewVotingNotEndedError(now, p.VotingEnds)
	}

	res := p.Evaluate(g, totalPower)
	if !res.QuorumMet || !res.Passed {
		p.Status = types.StatusDefeated
		return nil
	}

	p.Status = types.StatusSucceeded
	p.setTimelock(now, g)

	return nil
}

// setTimelock freezes the execution window: the fast-track timelock if the
// proposal was fast-tracked, else the custom override if present, else the
// standard delay. The execution deadline is a fixed seven days after.
func (p *Proposal) setTimelock(now time.Time, g *Governance) {
	delay := g.Config.TimelockDelay.Duration
	if p.TimelockOverride != nil {
		delay = p.TimelockOverride.Duration
	}
	if p.FastTracked {
		delay = g.Config.FastTrackTimelock.Duration
	}

	p.ExecuteAfter = now.Add(delay)
	p.ExecutionDeadline = p.ExecuteAfter.Add(executionWindow)
}

// Queue moves a succeeded proposal into the queued state. Setting the
// timelock here is idempotent: finalize normally set it already, but a
// succeeded proposal that predates timelock support gets its window now.
func (p *Proposal) Queue(now time.Time, g *Governance) error {
	if p.Status != types.StatusSucceeded {
		return NewInvalidStatusError(p.Status, types.StatusSucceeded)
	}

	if p.ExecuteAfter.IsZero() {
		p.setTimelock(now, g)
	}

	p.Status = types.StatusQueued

	return nil
}

// BeginExecution transitions a succeeded or queued proposal to Executed,
// minting one single-use execution authorization per custom-transaction
// action. It must run inside [executeAfter, executionDeadline].
func (p *Proposal) BeginExecution(now time.Time) ([]*ExecutionAuthorization, error) {
	if p.Status != types.StatusSucceeded && p.Status != types.StatusQueued {
		return nil, NewInvalidStatusError(p.Status, types.StatusSucceeded, types.StatusQueued)
	}
	if now.Before(p.ExecuteAfter) {
		return nil, NewTimelockNotExpiredError(now, p.ExecuteAfter)
	}
	if now.After(p.ExecutionDeadline) {
		return nil, NewDeadlinePassedError(now, p.ExecutionDeadline)
	}

	var auths []*ExecutionAuthorization
	for _, a := range p.Actions {
		if a.Type == types.ActionCustomTransaction && a.Target != nil {
			auths = append(auths, newExecutionAuthorization(p.ID, p.GovernanceID, *a.Target))
		}
	}

	p.Status = types.StatusExecuted

	return auths, nil
}

// Cancel withdraws the proposal. Only the proposer may cancel, and only
// while voting has not been resolved.
func (p *Proposal) Cancel(caller common.Address) error {
	if caller != p.Proposer {
		return NewWrongCallerError("proposer", caller)
	}
	if p.Status != types.StatusPending {
		return NewInvalidStatusError(p.Status, types.StatusPending, types.StatusActive)
	}

	p.Status = types.StatusCancelled

	return nil
}

// MarkExpired expires a succeeded or queued proposal whose execution
// deadline has passed without execution.
func (p *Proposal) MarkExpired(now time.Time) error {
	if p.Status != types.StatusSucceeded && p.Status != types.StatusQueued {
		return NewInvalidStatusError(p.Status, types.StatusSucceeded, types.StatusQueued)
	}
	if !now.After(p.ExecutionDeadline) {
		return NewNotExpiredError(now, p.ExecutionDeadline)
	}

	p.Status = types.StatusExpired

	return nil
}
