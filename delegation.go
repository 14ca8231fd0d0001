package govern

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/types"
)

// Delegation is a proxy-voting record. The delegator's voting power is
// snapshotted when the record is created and never re-queried; the delegate
// votes with that frozen weight, deduplicated on the delegator's address.
//
// Invariant: Delegate != Delegator, at creation and after every transfer.
type Delegation struct {
	ID             uuid.UUID      `json:"id"`
	GovernanceID   uuid.UUID      `json:"governanceId"`
	Delegator      common.Address `json:"delegator"`
	Delegate       common.Address `json:"delegate"`
	SourcePosition uuid.UUID      `json:"sourcePosition"`
	Power          uint64         `json:"power"`
	LockUntil      *time.Time     `json:"lockUntil,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// newDelegation builds a record with the power snapshot already resolved by
// the arbitration layer.
func newDelegation(governanceID uuid.UUID, delegator, delegate common.Address,
	sourcePosition uuid.UUID, power uint64, lockUntil *time.Time, now time.Time,
) (*Delegation, error) {
	if delegate == delegator {
		return nil, NewSelfDelegationError(delegator)
	}
	if power == 0 {
		return nil, NewPowerBelowThresholdError(0, 1)
	}

	return &Delegation{
		ID:             uuid.New(),
		GovernanceID:   governanceID,
		Delegator:      delegator,
		Delegate:       delegate,
		SourcePosition: sourcePosition,
		Power:          power,
		LockUntil:      lockUntil,
		CreatedAt:      now,
	}, nil
}

// checkUnlocked rejects mutation while the record is time-locked.
func (d *Delegation) checkUnlocked(now time.Time) error {
	if d.LockUntil != nil && now.Before(*d.LockUntil) {
		return NewDelegationLockedError(now, *d.LockUntil)
	}

	return nil
}

// Transfer hands the record to a new delegate. Delegator only, blocked while
// locked, and the new delegate may not be the delegator.
func (d *Delegation) Transfer(now time.Time, caller, newDelegate common.Address) error {
	if caller != d.Delegator {
		return NewWrongCallerError("delegator", caller)
	}
	if err := d.checkUnlocked(now); err != nil {
		return err
	}
	if newDelegate == d.Delegator {
		return NewSelfDelegationError(d.Delegator)
	}

	d.Delegate = newDelegate

	return nil
}

// checkRevocable gates destruction of the record: delegator only, blocked
// while locked. The engine removes the record from its store on success.
func (d *Delegation) checkRevocable(now time.Time, caller common.Address) error {
	if caller != d.Delegator {
		return NewWrongCallerError("delegator", caller)
	}

	return d.checkUnlocked(now)
}

// VoteAsDelegate forwards the delegate's vote to the shared cast routine
// using the delegator's address as the dedup key and the snapshotted power
// as the weight.
func (d *Delegation) VoteAsDelegate(now time.Time, caller common.Address,
	p *Proposal, support types.VoteSupport,
) (VoteReceipt, error) {
	if caller != d.Delegate {
		return VoteReceipt{}, NewWrongCallerError("delegate", caller)
	}
	if p.GovernanceID != d.GovernanceID {
		return VoteReceipt{}, NewTokenScopeError(p.GovernanceID, d.GovernanceID)
	}

	return p.CastDelegatedVote(now, d.Delegator, support, d.Power)
}
