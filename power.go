package govern

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/sdk"
	"github.com/quorumlabs/govern/types"
)

// Voting-power arbitration: validate that a caller's claimed power source is
// authentic (bound to this instance, owned by the caller) and compute the
// weight, before handing off to the proposal's shared tally routine.
//
// The three sources deduplicate on different keys (position id, vault id,
// delegator address), so one real holder can in principle reach a proposal
// through more than one path. That surface is inherited from the source
// design and deliberately left as-is; see DESIGN.md.

// stakePower resolves and validates a stake position for the caller under a
// stake-mode instance, returning the position (its live amount is the vote
// weight).
func (e *Engine) stakePower(g *Governance, caller common.Address, positionID uuid.UUID) (sdk.StakePosition, error) {
	if g.Mode != types.ModeStake {
		return sdk.StakePosition{}, NewSourceBindingError(types.SourceStakePosition,
			"governance is not stake-weighted")
	}

	pos, err := e.stake.Position(positionID)
	if err != nil {
		return sdk.StakePosition{}, NewSourceBindingError(types.SourceStakePosition, err.Error())
	}
	if pos.Owner != caller {
		return sdk.StakePosition{}, NewSourceBindingError(types.SourceStakePosition,
			"position not owned by caller "+caller.String())
	}
	if g.StakePool == nil || pos.Pool != *g.StakePool {
		return sdk.StakePosition{}, NewSourceBindingError(types.SourceStakePosition,
			"position bound to a different pool")
	}

	return pos, nil
}

// collectionPower resolves and validates the caller's locked-collection
// vault under a collection-mode instance. One locked item is one vote.
func (e *Engine) collectionPower(g *Governance, caller common.Address) (sdk.CollectionVault, error) {
	if g.Mode != types.ModeCollection {
		return sdk.CollectionVault{}, NewSourceBindingError(types.SourceCollectionVault,
			"governance is not collection-weighted")
	}

	vault, err := e.collection.Vault(g.ID, caller)
	if err != nil {
		return sdk.CollectionVault{}, NewSourceBindingError(types.SourceCollectionVault, err.Error())
	}
	if vault.GovernanceID != g.ID {
		return sdk.CollectionVault{}, NewSourceBindingError(types.SourceCollectionVault,
			"vault bound to a different governance")
	}
	if vault.Owner != caller {
		return sdk.CollectionVault{}, NewSourceBindingError(types.SourceCollectionVault,
			"vault not owned by caller "+caller.String())
	}

	return vault, nil
}

// proposerPower computes the proposer's current power for the threshold
// check at proposal creation, per the instance's voting mode.
func (e *Engine) proposerPower(g *Governance, proposer common.Address, position *uuid.UUID) (uint64, error) {
	switch g.Mode {
	case types.ModeCollection:
		vault, err := e.collectionPower(g, proposer)
		if err != nil {
			return 0, err
		}

		return vault.Count, nil
	default:
		if position == nil {
			return 0, NewSourceBindingError(types.SourceStakePosition,
				"stake-mode proposals require a stake position reference")
		}
		pos, err := e.stakePower(g, proposer, *position)
		if err != nil {
			return 0, err
		}

		return pos.Amount, nil
	}
}

// totalVotingPower returns the quorum denominator: total staked in the
// bound pool for stake mode. Collection mode uses an absolute quorum vote
// count, so no denominator is needed.
func (e *Engine) totalVotingPower(g *Governance) (uint64, error) {
	if g.Mode != types.ModeStake {
		return 0, nil
	}

	return e.stake.TotalStaked(*g.StakePool)
}
