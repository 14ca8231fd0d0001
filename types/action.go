package types

// ActionType is the kind of effect a proposal action has when executed.
type ActionType string

const (
	// ActionTreasuryTransfer moves funds out of the bound treasury.
	ActionTreasuryTransfer ActionType = "treasury-transfer"
	// ActionConfigUpdate applies a governance configuration change.
	ActionConfigUpdate ActionType = "config-update"
	// ActionCustomTransaction targets an external contract; executing it
	// mints a single-use execution authorization for the target.
	ActionCustomTransaction ActionType = "custom-transaction"
	// ActionText carries no on-execution effect.
	ActionText ActionType = "text"
)

// StringToActionType converts a string to an ActionType.
var StringToActionType = map[string]ActionType{
	"treasury-transfer":  ActionTreasuryTransfer,
	"config-update":      ActionConfigUpdate,
	"custom-transaction": ActionCustomTransaction,
	"text":               ActionText,
}
