package types //nolint:revive

// ProposalStatus is the lifecycle state of a governance proposal.
//
// Active is never written to storage: a proposal whose stored status is
// Pending counts as active whenever the call time falls inside its voting
// window. EffectiveStatus on the proposal exposes the derived value.
type ProposalStatus string

const (
	StatusPending   ProposalStatus = "Pending"
	StatusActive    ProposalStatus = "Active"
	StatusSucceeded ProposalStatus = "Succeeded"
	StatusDefeated  ProposalStatus = "Defeated"
	StatusQueued    ProposalStatus = "Queued"
	StatusExecuted  ProposalStatus = "Executed"
	StatusExpired   ProposalStatus = "Expired"
	StatusVetoed    ProposalStatus = "Vetoed"
	StatusCancelled ProposalStatus = "Cancelled"
)

// StringToProposalStatus converts a string to a ProposalStatus.
var StringToProposalStatus = map[string]ProposalStatus{
	"Pending":   StatusPending,
	"Active":    StatusActive,
	"Succeeded": StatusSucceeded,
	"Defeated":  StatusDefeated,
	"Queued":    StatusQueued,
	"Executed":  StatusExecuted,
	"Expired":   StatusExpired,
	"Vetoed":    StatusVetoed,
	"Cancelled": StatusCancelled,
}

// Terminal reports whether the status admits no further transitions.
func (s ProposalStatus) Terminal() bool {
	switch s {
	case StatusDefeated, StatusExecuted, StatusExpired, StatusVetoed, StatusCancelled:
		return true
	default:
		return false
	}
}
