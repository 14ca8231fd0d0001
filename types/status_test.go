package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ProposalStatus_Terminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give ProposalStatus
		want bool
	}{
		{name: "pending is live", give: StatusPending, want: false},
		{name: "active is live", give: StatusActive, want: false},
		{name: "succeeded is live", give: StatusSucceeded, want: false},
		{name: "queued is live", give: StatusQueued, want: false},
		{name: "defeated is terminal", give: StatusDefeated, want: true},
		{name: "executed is terminal", give: StatusExecuted, want: true},
		{name: "expired is terminal", give: StatusExpired, want: true},
		{name: "vetoed is terminal", give: StatusVetoed, want: true},
		{name: "cancelled is terminal", give: StatusCancelled, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.give.Terminal())
		})
	}
}

func Test_StringToProposalStatus(t *testing.T) {
	t.Parallel()

	got, ok := StringToProposalStatus["Queued"]
	assert.True(t, ok)
	assert.Equal(t, StatusQueued, got)

	_, ok = StringToProposalStatus["queued"]
	assert.False(t, ok)
}
