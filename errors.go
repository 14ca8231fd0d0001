package govern

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/types"
)

// Error categories. Every concrete error in this package unwraps to exactly
// one of these sentinels, so callers can match on the category with
// errors.Is or on the concrete type with errors.As.
var (
	// ErrConfiguration covers out-of-bound or structurally invalid parameters.
	ErrConfiguration = errors.New("configuration error")
	// ErrAuthorization covers missing or mismatched tokens and wrong roles.
	ErrAuthorization = errors.New("authorization error")
	// ErrState covers wrong-status transitions, window violations and
	// duplicate votes.
	ErrState = errors.New("state error")
	// ErrResource covers insufficient fees, insufficient power and
	// empty or oversized lists.
	ErrResource = errors.New("resource error")
	// ErrTiming covers timelock, deadline and delegation-lock violations.
	ErrTiming = errors.New("timing error")
)

// ConfigBoundError is returned when a governance config parameter falls
// outside its documented bound.
type ConfigBoundError struct {
	Param string
	Value string
	Bound string
}

// NewConfigBoundError creates a new ConfigBoundError.
func NewConfigBoundError(param, value, bound string) *ConfigBoundError {
	return &ConfigBoundError{Param: param, Value: value, Bound: bound}
}

func (e *ConfigBoundError) Error() string {
	return fmt.Sprintf("%s %s outside bound %s", e.Param, e.Value, e.Bound)
}

func (e *ConfigBoundError) Unwrap() error { return ErrConfiguration }

// TokenScopeError is returned when a capability token references a different
// governance instance than the one being operated on.
type TokenScopeError struct {
	Want uuid.UUID
	Got  uuid.UUID
}

// NewTokenScopeError creates a new TokenScopeError.
func NewTokenScopeError(want, got uuid.UUID) *TokenScopeError {
	return &TokenScopeError{Want: want, Got: got}
}

func (e *TokenScopeError) Error() string {
	return fmt.Sprintf("token scoped to governance %s, want %s", e.Got, e.Want)
}

func (e *TokenScopeError) Unwrap() error { return ErrAuthorization }

// WrongCallerError is returned when the caller does not hold the role the
// operation requires (proposer, delegator, delegate, guardian or council
// member).
type WrongCallerError struct {
	Role   string
	Caller common.Address
}

// NewWrongCallerError creates a new WrongCallerError.
func NewWrongCallerError(role string, caller common.Address) *WrongCallerError {
	return &WrongCallerError{Role: role, Caller: caller}
}

func (e *WrongCallerError) Error() string {
	return fmt.Sprintf("caller %s is not the %s", e.Caller, e.Role)
}

func (e *WrongCallerError) Unwrap() error { return ErrAuthorization }

// SourceBindingError is returned when a voting-power source does not belong
// to the caller or is bound to a different pool or collection than the
// governance instance.
type SourceBindingError struct {
	Source types.VoteSource
	Reason string
}

// NewSourceBindingError creates a new SourceBindingError.
func NewSourceBindingError(source types.VoteSource, reason string) *SourceBindingError {
	return &SourceBindingError{Source: source, Reason: reason}
}

func (e *SourceBindingError) Error() string {
	return fmt.Sprintf("invalid %s source: %s", e.Source, e.Reason)
}

func (e *SourceBindingError) Unwrap() error { return ErrAuthorization }

// InvalidStatusError is returned when a proposal is not in a status that
// admits the requested transition.
type InvalidStatusError struct {
	Got  types.ProposalStatus
	Want []types.ProposalStatus
}

// NewInvalidStatusError creates a new InvalidStatusError.
func NewInvalidStatusError(got types.ProposalStatus, want ...types.ProposalStatus) *InvalidStatusError {
	return &InvalidStatusError{Got: got, Want: want}
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("proposal status is %s, want one of %v", e.Got, e.Want)
}

func (e *InvalidStatusError) Unwrap() error { return ErrState }

// VotingWindowError is returned when a vote is cast outside the proposal's
// voting window.
type VotingWindowError struct {
	Now    time.Time
	Starts time.Time
	Ends   time.Time
}

// NewVotingWindowError creates a new VotingWindowError.
func NewVotingWindowError(now, starts, ends time.Time) *VotingWindowError {
	return &VotingWindowError{Now: now, Starts: starts, Ends: ends}
}

func (e *VotingWindowError) Error() string {
	return fmt.Sprintf("vote at %s outside voting window [%s, %s)",
		e.Now.Format(time.RFC3339), e.Starts.Format(time.RFC3339), e.Ends.Format(time.RFC3339))
}

func (e *VotingWindowError) Unwrap() error { return ErrState }

// VotingNotEndedError is returned when finalize is called before the voting
// window has closed.
type VotingNotEndedError struct {
	Now  time.Time
	Ends time.Time
}

// NewVotingNotEndedError creates a new VotingNotEndedError.
func NewVotingNotEndedError(now, ends time.Time) *VotingNotEndedError {
	return &VotingNotEndedError{Now: now, Ends: ends}
}

func (e *VotingNotEndedError) Error() string {
	return fmt.Sprintf("voting open until %s, cannot finalize at %s",
		e.Ends.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *VotingNotEndedError) Unwrap() error { return ErrState }

// DuplicateVoteError is returned when a dedup key has already voted on the
// proposal through the same source.
type DuplicateVoteError struct {
	Source types.VoteSource
	Key    string
}

// NewDuplicateVoteError creates a new DuplicateVoteError.
func NewDuplicateVoteError(source types.VoteSource, key string) *DuplicateVoteError {
	return &DuplicateVoteError{Source: source, Key: key}
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("duplicate %s vote by %s", e.Source, e.Key)
}

func (e *DuplicateVoteError) Unwrap() error { return ErrState }

// DuplicateCouncilVoteError is returned when a council member repeats a
// fast-track or veto vote on the same proposal.
type DuplicateCouncilVoteError struct {
	Kind   string
	Member common.Address
}

// NewDuplicateCouncilVoteError creates a new DuplicateCouncilVoteError.
func NewDuplicateCouncilVoteError(kind string, member common.Address) *DuplicateCouncilVoteError {
	return &DuplicateCouncilVoteError{Kind: kind, Member: member}
}

func (e *DuplicateCouncilVoteError) Error() string {
	return fmt.Sprintf("council member %s already cast a %s vote", e.Member, e.Kind)
}

func (e *DuplicateCouncilVoteError) Unwrap() error { return ErrState }

// VetoWindowError is returned when a veto vote arrives at or after the
// proposal's execute-after time.
type VetoWindowError struct {
	Now          time.Time
	ExecuteAfter time.Time
}

// NewVetoWindowError creates a new VetoWindowError.
func NewVetoWindowError(now, executeAfter time.Time) *VetoWindowError {
	return &VetoWindowError{Now: now, ExecuteAfter: executeAfter}
}

func (e *VetoWindowError) Error() string {
	return fmt.Sprintf("veto at %s not strictly before execute-after %s",
		e.Now.Format(time.RFC3339), e.ExecuteAfter.Format(time.RFC3339))
}

func (e *VetoWindowError) Unwrap() error { return ErrState }

// AlreadyFastTrackedError is returned when fast-track is requested on a
// proposal that has already been fast-tracked.
type AlreadyFastTrackedError struct {
	ProposalID uuid.UUID
}

// NewAlreadyFastTrackedError creates a new AlreadyFastTrackedError.
func NewAlreadyFastTrackedError(id uuid.UUID) *AlreadyFastTrackedError {
	return &AlreadyFastTrackedError{ProposalID: id}
}

func (e *AlreadyFastTrackedError) Error() string {
	return fmt.Sprintf("proposal %s is already fast-tracked", e.ProposalID)
}

func (e *AlreadyFastTrackedError) Unwrap() error { return ErrState }

// GovernancePausedError is returned when creation paths run against a paused
// governance instance.
type GovernancePausedError struct {
	GovernanceID uuid.UUID
}

// NewGovernancePausedError creates a new GovernancePausedError.
func NewGovernancePausedError(id uuid.UUID) *GovernancePausedError {
	return &GovernancePausedError{GovernanceID: id}
}

func (e *GovernancePausedError) Error() string {
	return fmt.Sprintf("governance %s is paused", e.GovernanceID)
}

func (e *GovernancePausedError) Unwrap() error { return ErrState }

// RegistryPausedError is returned when the platform registry reports that
// creation is suspended.
type RegistryPausedError struct{}

// NewRegistryPausedError creates a new RegistryPausedError.
func NewRegistryPausedError() *RegistryPausedError { return &RegistryPausedError{} }

func (e *RegistryPausedError) Error() string { return "registry is paused" }

func (e *RegistryPausedError) Unwrap() error { return ErrState }

// DelegationDisabledError is returned when a delegation is created under an
// instance that has delegation turned off.
type DelegationDisabledError struct {
	GovernanceID uuid.UUID
}

// NewDelegationDisabledError creates a new DelegationDisabledError.
func NewDelegationDisabledError(id uuid.UUID) *DelegationDisabledError {
	return &DelegationDisabledError{GovernanceID: id}
}

func (e *DelegationDisabledError) Error() string {
	return fmt.Sprintf("delegation is disabled for governance %s", e.GovernanceID)
}

func (e *DelegationDisabledError) Unwrap() error { return ErrState }

// NotFoundError is returned when a record id is not present in the engine's
// store.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrState }

// CouncilStateError is returned when the council roster is in the wrong
// state for the operation: not enabled, already enabled, or member missing.
type CouncilStateError struct {
	Reason string
}

// NewCouncilStateError creates a new CouncilStateError.
func NewCouncilStateError(reason string) *CouncilStateError {
	return &CouncilStateError{Reason: reason}
}

func (e *CouncilStateError) Error() string {
	return "council: " + e.Reason
}

func (e *CouncilStateError) Unwrap() error { return ErrState }

// SelfDelegationError is returned when a delegation would make the delegate
// equal to the delegator.
type SelfDelegationError struct {
	Delegator common.Address
}

// NewSelfDelegationError creates a new SelfDelegationError.
func NewSelfDelegationError(delegator common.Address) *SelfDelegationError {
	return &SelfDelegationError{Delegator: delegator}
}

func (e *SelfDelegationError) Error() string {
	return fmt.Sprintf("delegator %s cannot delegate to itself", e.Delegator)
}

func (e *SelfDelegationError) Unwrap() error { return ErrConfiguration }

// PowerBelowThresholdError is returned when the proposer's voting power does
// not meet the proposal threshold, or a delegation source has no power.
type PowerBelowThresholdError struct {
	Power     uint64
	Threshold uint64
}

// NewPowerBelowThresholdError creates a new PowerBelowThresholdError.
func NewPowerBelowThresholdError(power, threshold uint64) *PowerBelowThresholdError {
	return &PowerBelowThresholdError{Power: power, Threshold: threshold}
}

func (e *PowerBelowThresholdError) Error() string {
	return fmt.Sprintf("voting power %d below required %d", e.Power, e.Threshold)
}

func (e *PowerBelowThresholdError) Unwrap() error { return ErrResource }

// ActionCountError is returned when a proposal carries no actions or more
// than the maximum of ten.
type ActionCountError struct {
	Count int
}

// NewActionCountError creates a new ActionCountError.
func NewActionCountError(count int) *ActionCountError {
	return &ActionCountError{Count: count}
}

func (e *ActionCountError) Error() string {
	return fmt.Sprintf("proposal has %d actions, want between 1 and %d", e.Count, MaxProposalActions)
}

func (e *ActionCountError) Unwrap() error { return ErrResource }

// MemberCountError is returned when a council roster operation would leave
// the roster empty or above the maximum size.
type MemberCountError struct {
	Count int
}

// NewMemberCountError creates a new MemberCountError.
func NewMemberCountError(count int) *MemberCountError {
	return &MemberCountError{Count: count}
}

func (e *MemberCountError) Error() string {
	return fmt.Sprintf("council roster of %d members, want between 1 and %d", e.Count, types.MaxCouncilSize)
}

func (e *MemberCountError) Unwrap() error { return ErrResource }

// FeeError is returned when the registry rejects the creation fee.
type FeeError struct {
	Err error
}

// NewFeeError creates a new FeeError.
func NewFeeError(err error) *FeeError {
	return &FeeError{Err: err}
}

func (e *FeeError) Error() string {
	return fmt.Sprintf("creation fee rejected: %v", e.Err)
}

func (e *FeeError) Unwrap() error { return ErrResource }

// TimelockNotExpiredError is returned when execution begins before the
// timelock has elapsed.
type TimelockNotExpiredError struct {
	Now          time.Time
	ExecuteAfter time.Time
}

// NewTimelockNotExpiredError creates a new TimelockNotExpiredError.
func NewTimelockNotExpiredError(now, executeAfter time.Time) *TimelockNotExpiredError {
	return &TimelockNotExpiredError{Now: now, ExecuteAfter: executeAfter}
}

func (e *TimelockNotExpiredError) Error() string {
	return fmt.Sprintf("timelock expires at %s, cannot execute at %s",
		e.ExecuteAfter.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *TimelockNotExpiredError) Unwrap() error { return ErrTiming }

// DeadlinePassedError is returned when execution is attempted after the
// execution deadline.
type DeadlinePassedError struct {
	Now      time.Time
	Deadline time.Time
}

// NewDeadlinePassedError creates a new DeadlinePassedError.
func NewDeadlinePassedError(now, deadline time.Time) *DeadlinePassedError {
	return &DeadlinePassedError{Now: now, Deadline: deadline}
}

func (e *DeadlinePassedError) Error() string {
	return fmt.Sprintf("execution deadline %s passed at %s",
		e.Deadline.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *DeadlinePassedError) Unwrap() error { return ErrTiming }

// NotExpiredError is returned when mark-expired runs before the execution
// deadline has passed.
type NotExpiredError struct {
	Now      time.Time
	Deadline time.Time
}

// NewNotExpiredError creates a new NotExpiredError.
func NewNotExpiredError(now, deadline time.Time) *NotExpiredError {
	return &NotExpiredError{Now: now, Deadline: deadline}
}

func (e *NotExpiredError) Error() string {
	return fmt.Sprintf("execution deadline %s has not passed at %s",
		e.Deadline.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *NotExpiredError) Unwrap() error { return ErrTiming }

// DelegationLockedError is returned when a locked delegation is transferred
// or revoked before its lock-until time.
type DelegationLockedError struct {
	Now   time.Time
	Until time.Time
}

// NewDelegationLockedError creates a new DelegationLockedError.
func NewDelegationLockedError(now, until time.Time) *DelegationLockedError {
	return &DelegationLockedError{Now: now, Until: until}
}

func (e *DelegationLockedError) Error() string {
	return fmt.Sprintf("delegation locked until %s", e.Until.Format(time.RFC3339))
}

func (e *DelegationLockedError) Unwrap() error { return ErrTiming }

// AuthorizationConsumedError is returned when an execution authorization is
// redeemed twice or against the wrong target.
type AuthorizationConsumedError struct {
	ProposalID uuid.UUID
}

// NewAuthorizationConsumedError creates a new AuthorizationConsumedError.
func NewAuthorizationConsumedError(proposalID uuid.UUID) *AuthorizationConsumedError {
	return &AuthorizationConsumedError{ProposalID: proposalID}
}

func (e *AuthorizationConsumedError) Error() string {
	return fmt.Sprintf("execution authorization for proposal %s already consumed", e.ProposalID)
}

func (e *AuthorizationConsumedError) Unwrap() error { return ErrState }

// AuthorizationMismatchError is returned when an execution authorization is
// redeemed with a (proposal, governance, target) triple it was not minted
// for.
type AuthorizationMismatchError struct {
	Field string
	Want  uuid.UUID
	Got   uuid.UUID
}

// NewAuthorizationMismatchError creates a new AuthorizationMismatchError.
func NewAuthorizationMismatchError(field string, want, got uuid.UUID) *AuthorizationMismatchError {
	return &AuthorizationMismatchError{Field: field, Want: want, Got: got}
}

func (e *AuthorizationMismatchError) Error() string {
	return fmt.Sprintf("execution authorization %s mismatch: got %s, want %s", e.Field, e.Got, e.Want)
}

func (e *AuthorizationMismatchError) Unwrap() error { return ErrAuthorization }
