package testutils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/sdk"
)

// Registry is an in-memory fee/pause registry.
type Registry struct {
	PausedFlag bool
	MinFee     uint64
	Collected  uint64
}

// NewRegistry returns a registry enforcing the given minimum fee.
func NewRegistry(minFee uint64) *Registry {
	return &Registry{MinFee: minFee}
}

// Paused implements sdk.Registry.
func (r *Registry) Paused() bool { return r.PausedFlag }

// CollectFee implements sdk.Registry, rejecting amounts below the minimum.
func (r *Registry) CollectFee(payer common.Address, amount uint64) error {
	if amount < r.MinFee {
		return fmt.Errorf("fee %d below minimum %d", amount, r.MinFee)
	}

	r.Collected += amount

	return nil
}

// StakeOracle is an in-memory stake-position oracle.
type StakeOracle struct {
	Positions map[uuid.UUID]sdk.StakePosition
	Totals    map[uuid.UUID]uint64
}

// NewStakeOracle returns an empty oracle.
func NewStakeOracle() *StakeOracle {
	return &StakeOracle{
		Positions: make(map[uuid.UUID]sdk.StakePosition),
		Totals:    make(map[uuid.UUID]uint64),
	}
}

// AddPosition records a position and grows the pool total.
func (o *StakeOracle) AddPosition(pool uuid.UUID, owner common.Address, amount uint64) uuid.UUID {
	id := uuid.New()
	o.Positions[id] = sdk.StakePosition{ID: id, Pool: pool, Owner: owner, Amount: amount}
	o.Totals[pool] += amount

	return id
}

// Position implements sdk.StakeOracle.
func (o *StakeOracle) Position(id uuid.UUID) (sdk.StakePosition, error) {
	pos, ok := o.Positions[id]
	if !ok {
		return sdk.StakePosition{}, fmt.Errorf("position %s not found", id)
	}

	return pos, nil
}

// TotalStaked implements sdk.StakeOracle.
func (o *StakeOracle) TotalStaked(pool uuid.UUID) (uint64, error) {
	return o.Totals[pool], nil
}

// CollectionOracle is an in-memory locked-collection oracle.
type CollectionOracle struct {
	Vaults map[uuid.UUID]map[common.Address]sdk.CollectionVault
}

// NewCollectionOracle returns an empty oracle.
func NewCollectionOracle() *CollectionOracle {
	return &CollectionOracle{Vaults: make(map[uuid.UUID]map[common.Address]sdk.CollectionVault)}
}

// Lock records count locked items for the owner under the governance.
func (o *CollectionOracle) Lock(governanceID uuid.UUID, owner common.Address, count uint64) uuid.UUID {
	if o.Vaults[governanceID] == nil {
		o.Vaults[governanceID] = make(map[common.Address]sdk.CollectionVault)
	}

	vault, ok := o.Vaults[governanceID][owner]
	if !ok {
		vault = sdk.CollectionVault{ID: uuid.New(), GovernanceID: governanceID, Owner: owner}
	}
	vault.Count += count
	o.Vaults[governanceID][owner] = vault

	return vault.ID
}

// Vault implements sdk.CollectionOracle.
func (o *CollectionOracle) Vault(governanceID uuid.UUID, owner common.Address) (sdk.CollectionVault, error) {
	vault, ok := o.Vaults[governanceID][owner]
	if !ok {
		return sdk.CollectionVault{}, fmt.Errorf("no vault for %s under governance %s", owner, governanceID)
	}

	return vault, nil
}

// Custody is an in-memory custody target that redeems authorizations
// addressed to its id.
type Custody struct {
	TargetID uuid.UUID
	Executed int
}

// NewCustody returns a custody target with a fresh id.
func NewCustody() *Custody {
	return &Custody{TargetID: uuid.New()}
}

// Execute implements sdk.CustodyTarget.
func (c *Custody) Execute(auth sdk.Authorization) error {
	if err := auth.Redeem(auth.ProposalID(), auth.GovernanceID(), c.TargetID); err != nil {
		return err
	}

	c.Executed++

	return nil
}
