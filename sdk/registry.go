package sdk

import (
	"github.com/ethereum/go-ethereum/common"
)

// Registry is the platform-level fee and pause registry consulted before
// any governance instance or proposal is created.
type Registry interface {
	// Paused reports whether platform-wide creation is suspended.
	Paused() bool

	// CollectFee charges the creation fee to the payer. Implementations
	// enforce a minimum amount and reject anything below it.
	CollectFee(payer common.Address, amount uint64) error
}
