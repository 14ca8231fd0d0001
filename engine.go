package govern

import (
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/sdk"
	"github.com/quorumlabs/govern/types"
)

// Engine owns the id-keyed stores of governance instances, proposals and
// delegations, and exposes the caller-facing operations. Every public
// method is one atomic operation under the engine's lock: all preconditions
// are checked before any state is touched, so a failed call leaves no
// partial effect.
//
// Time never comes from inside the engine: a clock is injected at
// construction (defaulting to time.Now) and sampled once per operation.
type Engine struct {
	mu sync.Mutex

	registry   sdk.Registry
	stake      sdk.StakeOracle
	collection sdk.CollectionOracle

	log   sdk.Logger
	clock func() time.Time

	governances map[uuid.UUID]*Governance
	proposals   map[uuid.UUID]*Proposal
	delegations map[uuid.UUID]*Delegation
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source. Use a fixed or stepped clock in tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger injects the logger the engine writes transitions to.
func WithLogger(log sdk.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an engine wired to the external registry and
// voting-power oracles.
func NewEngine(registry sdk.Registry, stake sdk.StakeOracle, collection sdk.CollectionOracle, opts ...Option) *Engine {
	e := &Engine{
		registry:    registry,
		stake:       stake,
		collection:  collection,
		log:         sdk.DefaultLogger(),
		clock:       time.Now,
		governances: make(map[uuid.UUID]*Governance),
		proposals:   make(map[uuid.UUID]*Proposal),
		delegations: make(map[uuid.UUID]*Delegation),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// CreateGovernanceInput is the creation request for a governance instance.
type CreateGovernanceInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Mode        types.VotingMode `json:"mode" validate:"required,oneof=stake collection"`
	Config      Config           `json:"config"`

	StakePool      *uuid.UUID `json:"stakePool,omitempty"`
	CollectionType *uuid.UUID `json:"collectionType,omitempty"`

	DelegationEnabled bool            `json:"delegationEnabled"`
	Treasury          *uuid.UUID      `json:"treasury,omitempty"`
	Guardian          *common.Address `json:"guardian,omitempty"`

	Payer common.Address `json:"payer"`
	Fee   uint64         `json:"fee"`

	// Origin and LinkRef are only honored on the privileged creation path.
	Origin  types.Origin `json:"origin,omitempty"`
	LinkRef *uuid.UUID   `json:"linkRef,omitempty"`
}

// CreateGovernance registers a new instance with the external registry,
// collecting the creation fee, and returns it together with the admin token
// scoped to exactly this instance.
func (e *Engine) CreateGovernance(in CreateGovernanceInput) (*Governance, AdminToken, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	in.Origin = ""
	in.LinkRef = nil

	if err := validator.New().Struct(in); err != nil {
		return nil, AdminToken{}, err
	}
	if e.registry.Paused() {
		return nil, AdminToken{}, NewRegistryPausedError()
	}
	if err := e.registry.CollectFee(in.Payer, in.Fee); err != nil {
		return nil, AdminToken{}, NewFeeError(err)
	}

	return e.createGovernance(in)
}

// CreateGovernancePrivileged is the zero-fee creation path for trusted
// integrators. It additionally records an origin tag and an optional
// linking reference, purely for provenance.
func (e *Engine) CreateGovernancePrivileged(in CreateGovernanceInput, origin types.Origin, linkRef *uuid.UUID) (*Governance, AdminToken, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := types.StringToOrigin[string(origin)]; !ok {
		return nil, AdminToken{}, NewConfigBoundError("origin", string(origin),
			"independent|automated|partner")
	}
	in.Origin = origin
	in.LinkRef = linkRef

	if err := validator.New().Struct(in); err != nil {
		return nil, AdminToken{}, err
	}
	if e.registry.Paused() {
		return nil, AdminToken{}, NewRegistryPausedError()
	}

	return e.createGovernance(in)
}

func (e *Engine) createGovernance(in CreateGovernanceInput) (*Governance, AdminToken, error) {
	g, err := newGovernance(in, e.clock())
	if err != nil {
		return nil, AdminToken{}, err
	}

	e.governances[g.ID] = g
	e.log.Infof("governance %s created in %s mode", g.ID, g.Mode)

	return g, AdminToken{governanceID: g.ID}, nil
}

// UpdateConfig applies a partial config change to the token's instance.
func (e *Engine) UpdateConfig(token AdminToken, update ConfigUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(token.GovernanceID())
	if err != nil {
		return err
	}

	return g.UpdateConfig(token, update)
}

// Pause suspends proposal creation on the token's instance.
func (e *Engine) Pause(token AdminToken) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(token.GovernanceID())
	if err != nil {
		return err
	}

	return g.Pause(token)
}

// Unpause resumes proposal creation on the token's instance.
func (e *Engine) Unpause(token AdminToken) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(token.GovernanceID())
	if err != nil {
		return err
	}

	return g.Unpause(token)
}

// GuardianPause force-pauses an instance. Guardian only, one-way.
func (e *Engine) GuardianPause(governanceID uuid.UUID, caller common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(governanceID)
	if err != nil {
		return err
	}
	if err := g.GuardianPause(caller); err != nil {
		return err
	}

	e.log.Infof("governance %s force-paused by guardian %s", governanceID, caller)

	return nil
}

// EnableCouncil turns on the council roster for the token's instance.
func (e *Engine) EnableCouncil(token AdminToken, members []common.Address) ([]CouncilToken, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(token.GovernanceID())
	if err != nil {
		return nil, err
	}

	return g.EnableCouncil(token, members)
}

// AddCouncilMember seats a new council member.
func (e *Engine) AddCouncilMember(token AdminToken, member common.Address) (CouncilToken, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(token.GovernanceID())
	if err != nil {
		return CouncilToken{}, err
	}

	return g.AddCouncilMember(token, member)
}

// RemoveCouncilMember unseats a council member, burning the seat.
func (e *Engine) RemoveCouncilMember(token AdminToken, member common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(token.GovernanceID())
	if err != nil {
		return err
	}

	return g.RemoveCouncilMember(token, member)
}

// CreateProposalInput is the creation request for a proposal.
type CreateProposalInput struct {
	GovernanceID uuid.UUID      `json:"governanceId" validate:"required"`
	Proposer     common.Address `json:"proposer"`
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	Actions      []Action       `json:"actions" validate:"required,min=1,max=10"`

	// StakePosition backs the proposer's threshold check in stake mode.
	StakePosition *uuid.UUID `json:"stakePosition,omitempty"`

	TimelockOverride *types.Duration `json:"timelockOverride,omitempty"`
}

// CreateProposal creates a proposal with its voting window frozen from the
// instance's current config. The proposer's live power must meet the
// proposal threshold.
func (e *Engine) CreateProposal(in CreateProposalInput) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validator.New().Struct(in); err != nil {
		return nil, err
	}

	g, err := e.governance(in.GovernanceID)
	if err != nil {
		return nil, err
	}
	if e.registry.Paused() {
		return nil, NewRegistryPausedError()
	}
	if g.Paused {
		return nil, NewGovernancePausedError(g.ID)
	}

	power, err := e.proposerPower(g, in.Proposer, in.StakePosition)
	if err != nil {
		return nil, err
	}
	if power < g.Config.ProposalThreshold {
		return nil, NewPowerBelowThresholdError(power, g.Config.ProposalThreshold)
	}

	p, err := newProposal(g, in.Proposer, in.Title, in.Description,
		in.Actions, in.TimelockOverride, false, e.clock())
	if err != nil {
		return nil, err
	}

	g.ProposalCount++
	e.proposals[p.ID] = p
	e.log.Infof("proposal %s (#%d) created under governance %s", p.ID, p.Sequence, g.ID)

	return p, nil
}

// CreateEmergencyProposal is the council-originated variant: fixed one hour
// voting delay, one day voting period, preset fast-tracked with the
// instance's fast-track timelock. The council seat substitutes for the
// proposal threshold.
func (e *Engine) CreateEmergencyProposal(token CouncilToken, in CreateProposalInput) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	in.Proposer = token.Member()
	if err := validator.New().Struct(in); err != nil {
		return nil, err
	}

	g, err := e.governance(in.GovernanceID)
	if err != nil {
		return nil, err
	}
	if err := g.checkCouncilSeat(token); err != nil {
		return nil, err
	}
	if e.registry.Paused() {
		return nil, NewRegistryPausedError()
	}
	if g.Paused {
		return nil, NewGovernancePausedError(g.ID)
	}

	p, err := newProposal(g, token.Member(), in.Title, in.Description,
		in.Actions, in.TimelockOverride, true, e.clock())
	if err != nil {
		return nil, err
	}

	g.ProposalCount++
	e.proposals[p.ID] = p
	e.log.Infof("emergency proposal %s (#%d) created under governance %s", p.ID, p.Sequence, g.ID)

	return p, nil
}

// CastStakeVote casts a stake-weighted vote backed by the caller's position
// in the bound pool. The position's live staked amount is the weight.
func (e *Engine) CastStakeVote(proposalID uuid.UUID, caller common.Address,
	positionID uuid.UUID, support types.VoteSupport,
) (VoteReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, p, err := e.proposalWithGovernance(proposalID)
	if err != nil {
		return VoteReceipt{}, err
	}

	pos, err := e.stakePower(g, caller, positionID)
	if err != nil {
		return VoteReceipt{}, err
	}
	if pos.Amount == 0 {
		return VoteReceipt{}, NewPowerBelowThresholdError(0, 1)
	}

	return p.CastStakeVote(e.clock(), positionID, support, pos.Amount)
}

// CastCollectionVote casts a collection-weighted vote backed by the
// caller's locked-item vault. One locked item is one vote.
func (e *Engine) CastCollectionVote(proposalID uuid.UUID, caller common.Address,
	support types.VoteSupport,
) (VoteReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, p, err := e.proposalWithGovernance(proposalID)
	if err != nil {
		return VoteReceipt{}, err
	}

	vault, err := e.collectionPower(g, caller)
	if err != nil {
		return VoteReceipt{}, err
	}
	if vault.Count == 0 {
		return VoteReceipt{}, NewPowerBelowThresholdError(0, 1)
	}

	return p.CastCollectionVote(e.clock(), vault.ID, support, vault.Count)
}

// VoteAsDelegate casts a vote through a delegation record. Only the
// recorded delegate may call; the delegator's address is the dedup key and
// the snapshotted power the weight.
func (e *Engine) VoteAsDelegate(delegationID uuid.UUID, caller common.Address,
	proposalID uuid.UUID, support types.VoteSupport,
) (VoteReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.delegations[delegationID]
	if !ok {
		return VoteReceipt{}, NewNotFoundError("delegation", delegationID)
	}

	p, ok := e.proposals[proposalID]
	if !ok {
		return VoteReceipt{}, NewNotFoundError("proposal", proposalID)
	}

	return d.VoteAsDelegate(e.clock(), caller, p, support)
}

// Finalize resolves a proposal's outcome after its voting window closes.
func (e *Engine) Finalize(proposalID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, p, err := e.proposalWithGovernance(proposalID)
	if err != nil {
		return err
	}

	total, err := e.totalVotingPower(g)
	if err != nil {
		return err
	}

	if err := p.Finalize(e.clock(), g, total); err != nil {
		return err
	}

	e.log.Infof("proposal %s finalized: %s", p.ID, p.Status)

	return nil
}

// Queue moves a succeeded proposal into the queued state.
func (e *Engine) Queue(proposalID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, p, err := e.proposalWithGovernance(proposalID)
	if err != nil {
		return err
	}

	return p.Queue(e.clock(), g)
}

// BeginExecution executes a proposal inside its execution window and
// returns the single-use authorizations minted for its custom-transaction
// actions.
func (e *Engine) BeginExecution(proposalID uuid.UUID) ([]*ExecutionAuthorization, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[proposalID]
	if !ok {
		return nil, NewNotFoundError("proposal", proposalID)
	}

	auths, err := p.BeginExecution(e.clock())
	if err != nil {
		return nil, err
	}

	e.log.Infof("proposal %s executed, %d authorizations minted", p.ID, len(auths))

	return auths, nil
}

// Cancel withdraws a proposal. Proposer only, before resolution.
func (e *Engine) Cancel(proposalID uuid.UUID, caller common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[proposalID]
	if !ok {
		return NewNotFoundError("proposal", proposalID)
	}

	return p.Cancel(caller)
}

// MarkExpired expires a proposal whose execution deadline has passed.
func (e *Engine) MarkExpired(proposalID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[proposalID]
	if !ok {
		return NewNotFoundError("proposal", proposalID)
	}

	return p.MarkExpired(e.clock())
}

// CastFastTrackVote records a council member's fast-track vote on a
// proposal under the member's instance.
func (e *Engine) CastFastTrackVote(token CouncilToken, proposalID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, p, err := e.proposalWithGovernance(proposalID)
	if err != nil {
		return err
	}
	if err := g.checkCouncilSeat(token); err != nil {
		return err
	}

	if err := p.CastFastTrackVote(e.clock(), g, token.Member()); err != nil {
		return err
	}

	if p.FastTracked {
		e.log.Infof("proposal %s fast-tracked by council", p.ID)
	}

	return nil
}

// CastVetoVote records a council member's veto vote on a proposal under the
// member's instance.
func (e *Engine) CastVetoVote(token CouncilToken, proposalID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, p, err := e.proposalWithGovernance(proposalID)
	if err != nil {
		return err
	}
	if err := g.checkCouncilSeat(token); err != nil {
		return err
	}

	if err := p.CastVetoVote(e.clock(), g, token.Member()); err != nil {
		return err
	}

	if p.Status == types.StatusVetoed {
		e.log.Infof("proposal %s vetoed by council", p.ID)
	}

	return nil
}

// CreateDelegation snapshots the delegator's current power from a stake
// position correctly bound to the instance and records the delegate.
func (e *Engine) CreateDelegation(governanceID uuid.UUID, delegator, delegate common.Address,
	positionID uuid.UUID, lockUntil *time.Time,
) (*Delegation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.governance(governanceID)
	if err != nil {
		return nil, err
	}
	if !g.DelegationEnabled {
		return nil, NewDelegationDisabledError(g.ID)
	}

	pos, err := e.stakePower(g, delegator, positionID)
	if err != nil {
		return nil, err
	}

	d, err := newDelegation(g.ID, delegator, delegate, positionID, pos.Amount, lockUntil, e.clock())
	if err != nil {
		return nil, err
	}

	e.delegations[d.ID] = d
	e.log.Infof("delegation %s created: %s -> %s (power %d)", d.ID, delegator, delegate, d.Power)

	return d, nil
}

// TransferDelegation hands a delegation to a new delegate.
func (e *Engine) TransferDelegation(delegationID uuid.UUID, caller, newDelegate common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.delegations[delegationID]
	if !ok {
		return NewNotFoundError("delegation", delegationID)
	}

	return d.Transfer(e.clock(), caller, newDelegate)
}

// RevokeDelegation destroys a delegation record.
func (e *Engine) RevokeDelegation(delegationID uuid.UUID, caller common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.delegations[delegationID]
	if !ok {
		return NewNotFoundError("delegation", delegationID)
	}
	if err := d.checkRevocable(e.clock(), caller); err != nil {
		return err
	}

	delete(e.delegations, delegationID)

	return nil
}

// GetGovernance returns a governance instance by id.
func (e *Engine) GetGovernance(id uuid.UUID) (*Governance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.governance(id)
}

// GetProposal returns a proposal by id.
func (e *Engine) GetProposal(id uuid.UUID) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return nil, NewNotFoundError("proposal", id)
	}

	return p, nil
}

// GetDelegation returns a delegation record by id.
func (e *Engine) GetDelegation(id uuid.UUID) (*Delegation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.delegations[id]
	if !ok {
		return nil, NewNotFoundError("delegation", id)
	}

	return d, nil
}

// ProposalsByGovernance returns an instance's proposals ordered by sequence.
func (e *Engine) ProposalsByGovernance(governanceID uuid.UUID) []*Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []*Proposal
	for _, p := range e.proposals {
		if p.GovernanceID == governanceID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })

	return out
}

func (e *Engine) governance(id uuid.UUID) (*Governance, error) {
	g, ok := e.governances[id]
	if !ok {
		return nil, NewNotFoundError("governance", id)
	}

	return g, nil
}

func (e *Engine) proposalWithGovernance(proposalID uuid.UUID) (*Governance, *Proposal, error) {
	p, ok := e.proposals[proposalID]
	if !ok {
		return nil, nil, NewNotFoundError("proposal", proposalID)
	}

	g, err := e.governance(p.GovernanceID)
	if err != nil {
		return nil, nil, err
	}

	return g, p, nil
}
