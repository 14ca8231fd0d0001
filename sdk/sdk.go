// Package sdk defines the interfaces the governance engine consumes from
// its external collaborators: the platform registry, the voting-power
// oracles, and custody targets that redeem execution authorizations.
//
// The engine never implements these; callers inject implementations at
// construction. Reference in-memory implementations for tests live in
// internal/testutils.
package sdk
