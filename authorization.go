package govern

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// AdminToken is the capability handle for a governance instance's admin
// operations. It is minted once at instance creation and scoped to exactly
// that instance's id; every privileged call checks the scope by equality.
//
// Construction is private: holding a value proves it came from CreateGovernance.
type AdminToken struct {
	governanceID uuid.UUID
}

// GovernanceID returns the id of the instance the token is scoped to.
func (t AdminToken) GovernanceID() uuid.UUID { return t.governanceID }

// checkScope rejects tokens scoped to a different instance.
func (t AdminToken) checkScope(governanceID uuid.UUID) error {
	if t.governanceID != governanceID {
		return NewTokenScopeError(governanceID, t.governanceID)
	}

	return nil
}

// CouncilToken is the capability handle for one council seat. It is minted
// when a member is added to the roster and burned (its scope check fails
// against the roster) when the member is removed.
type CouncilToken struct {
	governanceID uuid.UUID
	member       common.Address
}

// GovernanceID returns the id of the instance the seat belongs to.
func (t CouncilToken) GovernanceID() uuid.UUID { return t.governanceID }

// Member returns the address of the seat holder.
func (t CouncilToken) Member() common.Address { return t.member }

// ExecutionAuthorization is the single-use permission minted for each
// custom-transaction action when a proposal executes. It is a linear value:
// minted exactly once, redeemed exactly once by the matching external
// target, never copied. The consumed flag is flipped with a compare-and-swap
// so concurrent redeem attempts cannot both succeed.
//
// Construction is private to the package; external targets receive pointers
// from BeginExecution and must not dereference-copy them.
type ExecutionAuthorization struct {
	proposalID   uuid.UUID
	governanceID uuid.UUID
	targetID     uuid.UUID
	consumed     atomic.Bool
}

func newExecutionAuthorization(proposalID, governanceID, targetID uuid.UUID) *ExecutionAuthorization {
	return &ExecutionAuthorization{
		proposalID:   proposalID,
		governanceID: governanceID,
		targetID:     targetID,
	}
}

// ProposalID returns the proposal the authorization was minted for.
func (a *ExecutionAuthorization) ProposalID() uuid.UUID { return a.proposalID }

// GovernanceID returns the governance instance the authorization belongs to.
func (a *ExecutionAuthorization) GovernanceID() uuid.UUID { return a.governanceID }

// TargetID returns the external target the authorization is addressed to.
func (a *ExecutionAuthorization) TargetID() uuid.UUID { return a.targetID }

// Consumed reports whether the authorization has been redeemed.
func (a *ExecutionAuthorization) Consumed() bool { return a.consumed.Load() }

// Redeem consumes the authorization for the given (proposal, governance,
// target) triple. All three ids must match the minted values, and the
// authorization must not have been redeemed before. The mismatch checks run
// first so a bad redeem attempt does not burn the authorization.
func (a *ExecutionAuthorization) Redeem(proposalID, governanceID, targetID uuid.UUID) error {
	if proposalID != a.proposalID {
		return NewAuthorizationMismatchError("proposal", a.proposalID, proposalID)
	}
	if governanceID != a.governanceID {
		return NewAuthorizationMismatchError("governance", a.governanceID, governanceID)
	}
	if targetID != a.targetID {
		return NewAuthorizationMismatchError("target", a.targetID, targetID)
	}

	if !a.consumed.CompareAndSwap(false, true) {
		return NewAuthorizationConsumedError(a.proposalID)
	}

	return nil
}
