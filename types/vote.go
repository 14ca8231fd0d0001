package types

// VoteSupport is the stance a voter takes on a proposal. Abstain counts
// toward quorum but is excluded from the approval ratio.
type VoteSupport string

const (
	SupportAgainst VoteSupport = "against"
	SupportFor     VoteSupport = "for"
	SupportAbstain VoteSupport = "abstain"
)

// StringToVoteSupport converts a string to a VoteSupport.
var StringToVoteSupport = map[string]VoteSupport{
	"against": SupportAgainst,
	"for":     SupportFor,
	"abstain": SupportAbstain,
}

// Valid reports whether the support value is one of the three accepted
// stances.
func (s VoteSupport) Valid() bool {
	_, ok := StringToVoteSupport[string(s)]
	return ok
}

// VoteSource identifies which of the three mutually exclusive power sources
// backed a vote. Each source deduplicates on its own key: direct stake votes
// on the position id, collection votes on the vault id, delegated votes on
// the delegator's address.
type VoteSource string

const (
	SourceStakePosition   VoteSource = "stake-position"
	SourceCollectionVault VoteSource = "collection-vault"
	SourceDelegation      VoteSource = "delegation"
)
