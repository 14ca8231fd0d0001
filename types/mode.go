package types

// VotingMode selects the power scheme a governance instance is bound to.
// Exactly one scheme is chosen at creation and never changes.
type VotingMode string

const (
	// ModeStake weighs votes by the live amount staked in the bound pool.
	ModeStake VotingMode = "stake"
	// ModeCollection weighs votes by the count of items locked in a
	// per-holder vault of the bound collection type. One item, one vote.
	ModeCollection VotingMode = "collection"
)

// StringToVotingMode converts a string to a VotingMode.
var StringToVotingMode = map[string]VotingMode{
	"stake":      ModeStake,
	"collection": ModeCollection,
}

// Origin tags how a governance instance was created through the privileged
// integrator path. Purely provenance; no behavior hangs off it.
type Origin string

const (
	OriginIndependent Origin = "independent"
	OriginAutomated   Origin = "automated"
	OriginPartner     Origin = "partner"
)

// StringToOrigin converts a string to an Origin.
var StringToOrigin = map[string]Origin{
	"independent": OriginIndependent,
	"automated":   OriginAutomated,
	"partner":     OriginPartner,
}
