package sdk

import (
	"github.com/google/uuid"
)

// Authorization is the view of an execution authorization a custody target
// needs to redeem it: the matching triple plus the single-use redeem.
// *govern.ExecutionAuthorization satisfies it.
type Authorization interface {
	ProposalID() uuid.UUID
	GovernanceID() uuid.UUID
	TargetID() uuid.UUID
	Redeem(proposalID, governanceID, targetID uuid.UUID) error
}

// CustodyTarget is an external fund-custody or custom-action target that
// consumes execution authorizations. Implementations must redeem each
// authorization exactly once, matching on (proposal id, governance id,
// target id), and reject mismatch or reuse.
type CustodyTarget interface {
	// Execute redeems the authorization and performs the target's effect.
	Execute(auth Authorization) error
}
