package sdk

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// StakePosition is one holder's position in an external stake pool, as
// reported by the stake oracle.
type StakePosition struct {
	ID     uuid.UUID
	Pool   uuid.UUID
	Owner  common.Address
	Amount uint64
}

// StakeOracle exposes read-only stake state for stake-weighted voting.
// Power is live: it is queried at every vote (delegation snapshots are the
// one exception, taken once at delegation creation).
type StakeOracle interface {
	// Position returns the stake position with the given id.
	Position(id uuid.UUID) (StakePosition, error)

	// TotalStaked returns the total amount staked in the pool, the
	// denominator of the stake-mode quorum check.
	TotalStaked(pool uuid.UUID) (uint64, error)
}

// CollectionVault is one holder's locked-item vault for a governance
// instance, as reported by the collection oracle. One locked item equals
// one vote.
type CollectionVault struct {
	ID           uuid.UUID
	GovernanceID uuid.UUID
	Owner        common.Address
	Count        uint64
}

// CollectionOracle exposes read-only locked-collection state for
// collection-weighted voting.
type CollectionOracle interface {
	// Vault returns the caller's vault for the governance instance.
	Vault(governanceID uuid.UUID, owner common.Address) (CollectionVault, error)
}
