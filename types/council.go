package types

// MaxCouncilSize is the upper bound on the council member roster.
const MaxCouncilSize = 11

// MajorityThreshold returns the number of distinct council fast-track votes
// required to accelerate a proposal: strictly more than half the roster.
func MajorityThreshold(size int) int {
	return size/2 + 1
}

// VetoThreshold returns the number of distinct council veto votes required
// to block a succeeded proposal: strictly more than a third of the roster.
func VetoThreshold(size int) int {
	return size/3 + 1
}
