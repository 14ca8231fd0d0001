package govern

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/types"
)

// MaxProposalActions is the upper bound on actions attached to one proposal.
const MaxProposalActions = 10

// Action is one effect a proposal carries. Actions are immutable once
// attached to a proposal: the list is copied at creation and never exposed
// for mutation.
type Action struct {
	Type      types.ActionType `json:"type" validate:"required"`
	Target    *uuid.UUID       `json:"target,omitempty"`
	TokenType string           `json:"tokenType,omitempty"`
	Amount    uint64           `json:"amount,omitempty"`
	Recipient *common.Address  `json:"recipient,omitempty"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
}

// validActions checks the action list bound and per-action shape.
func validActions(actions []Action) error {
	if len(actions) == 0 || len(actions) > MaxProposalActions {
		return NewActionCountError(len(actions))
	}
	for _, a := range actions {
		if _, ok := types.StringToActionType[string(a.Type)]; !ok {
			return NewConfigBoundError("action type", string(a.Type),
				"treasury-transfer|config-update|custom-transaction|text")
		}
		if a.Type == types.ActionCustomTransaction && a.Target == nil {
			return NewConfigBoundError("action target", "unset",
				"custom-transaction actions require a target")
		}
	}

	return nil
}
