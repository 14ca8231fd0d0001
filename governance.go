package govern

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/quorumlabs/govern/types"
)

// Governance is the per-organization instance: configuration plus admin
// state. It is created once, mutated only through admin- or guardian-gated
// operations, and never deleted.
//
// Exactly one of StakePool / CollectionType is set, matching Mode. The
// binding is fixed at creation.
type Governance struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Mode        types.VotingMode `json:"mode"`
	Config      Config           `json:"config"`

	StakePool      *uuid.UUID `json:"stakePool,omitempty"`
	CollectionType *uuid.UUID `json:"collectionType,omitempty"`

	Paused            bool             `json:"paused"`
	CouncilEnabled    bool             `json:"councilEnabled"`
	CouncilMembers    []common.Address `json:"councilMembers,omitempty"`
	DelegationEnabled bool             `json:"delegationEnabled"`

	Treasury *uuid.UUID      `json:"treasury,omitempty"`
	Guardian *common.Address `json:"guardian,omitempty"`

	ProposalCount uint64 `json:"proposalCount"`

	Origin  types.Origin `json:"origin,omitempty"`
	LinkRef *uuid.UUID   `json:"linkRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// newGovernance builds an instance from validated creation input, binding it
// to exactly one power source per the voting mode.
func newGovernance(in CreateGovernanceInput, now time.Time) (*Governance, error) {
	cfg := in.Config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Governance{
		ID:                uuid.New(),
		Name:              in.Name,
		Description:       in.Description,
		Mode:              in.Mode,
		Config:            cfg,
		DelegationEnabled: in.DelegationEnabled,
		Treasury:          in.Treasury,
		Guardian:          in.Guardian,
		Origin:            in.Origin,
		LinkRef:           in.LinkRef,
		CreatedAt:         now,
	}

	switch in.Mode {
	case types.ModeStake:
		if in.StakePool == nil || in.CollectionType != nil {
			return nil, NewConfigBoundError("stake pool binding", "unset",
				"exactly one of stake pool / collection type")
		}
		pool := *in.StakePool
		g.StakePool = &pool
	case types.ModeCollection:
		if in.CollectionType == nil || in.StakePool != nil {
			return nil, NewConfigBoundError("collection type binding", "unset",
				"exactly one of stake pool / collection type")
		}
		ct := *in.CollectionType
		g.CollectionType = &ct
	default:
		return nil, NewConfigBoundError("voting mode", string(in.Mode), "stake|collection")
	}

	return g, nil
}

// ReadGovernance decodes a governance instance from JSON, fills unset
// config fields with the documented defaults, and validates the result
// against the bound table.
func ReadGovernance(r io.Reader) (*Governance, error) {
	var g Governance
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, err
	}

	g.Config = g.Config.withDefaults()
	if err := g.Config.Validate(); err != nil {
		return nil, err
	}

	return &g, nil
}

// WriteGovernance encodes a governance instance as indented JSON.
func WriteGovernance(w io.Writer, g *Governance) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(g)
}

// UpdateConfig applies a partial configuration change. The token must be
// scoped to this instance, and the merged result must satisfy the bound
// table; otherwise nothing changes. Open proposals are unaffected: their
// windows were frozen at creation.
func (g *Governance) UpdateConfig(token AdminToken, update ConfigUpdate) error {
	if err := token.checkScope(g.ID); err != nil {
		return err
	}

	merged, err := update.apply(g.Config)
	if err != nil {
		return err
	}

	g.Config = merged

	return nil
}

// Pause stops proposal creation on the instance. Admin only.
func (g *Governance) Pause(token AdminToken) error {
	if err := token.checkScope(g.ID); err != nil {
		return err
	}

	g.Paused = true

	return nil
}

// Unpause resumes proposal creation. Admin only: a guardian cannot undo its
// own force-pause, the asymmetry is the emergency-brake design.
func (g *Governance) Unpause(token AdminToken) error {
	if err := token.checkScope(g.ID); err != nil {
		return err
	}

	g.Paused = false

	return nil
}

// GuardianPause force-pauses the instance. Only the configured guardian may
// call it, and it is one-way: there is no guardian unpause.
func (g *Governance) GuardianPause(caller common.Address) error {
	if g.Guardian == nil || *g.Guardian != caller {
		return NewWrongCallerError("guardian", caller)
	}

	g.Paused = true

	return nil
}

// EnableCouncil turns on the council with an initial roster of 1 to 11
// distinct members and mints one seat token per member. It is not
// re-enterable: enabling an already-enabled council fails.
func (g *Governance) EnableCouncil(token AdminToken, members []common.Address) ([]CouncilToken, error) {
	if err := token.checkScope(g.ID); err != nil {
		return nil, err
	}
	if g.CouncilEnabled {
		return nil, NewCouncilStateError("already enabled")
	}
	if len(members) == 0 || len(members) > types.MaxCouncilSize {
		return nil, NewMemberCountError(len(members))
	}

	roster := make([]common.Address, 0, len(members))
	tokens := make([]CouncilToken, 0, len(members))
	for _, m := range members {
		if slices.Contains(roster, m) {
			return nil, NewCouncilStateError("duplicate member " + m.String())
		}
		roster = append(roster, m)
		tokens = append(tokens, CouncilToken{governanceID: g.ID, member: m})
	}

	g.CouncilEnabled = true
	g.CouncilMembers = roster

	return tokens, nil
}

// AddCouncilMember adds a member to an enabled roster, minting the seat
// token, keeping the roster within the 1 to 11 bound.
func (g *Governance) AddCouncilMember(token AdminToken, member common.Address) (CouncilToken, error) {
	if err := token.checkScope(g.ID); err != nil {
		return CouncilToken{}, err
	}
	if !g.CouncilEnabled {
		return CouncilToken{}, NewCouncilStateError("not enabled")
	}
	if slices.Contains(g.CouncilMembers, member) {
		return CouncilToken{}, NewCouncilStateError("member " + member.String() + " already on roster")
	}
	if len(g.CouncilMembers)+1 > types.MaxCouncilSize {
		return CouncilToken{}, NewMemberCountError(len(g.CouncilMembers) + 1)
	}

	g.CouncilMembers = append(g.CouncilMembers, member)

	return CouncilToken{governanceID: g.ID, member: member}, nil
}

// RemoveCouncilMember removes a member from the roster. The last remaining
// member cannot be removed. The member's seat token is burned implicitly:
// council votes re-check the roster, so a removed member's token no longer
// authorizes anything.
func (g *Governance) RemoveCouncilMember(token AdminToken, member common.Address) error {
	if err := token.checkScope(g.ID); err != nil {
		return err
	}
	if !g.CouncilEnabled {
		return NewCouncilStateError("not enabled")
	}

	idx := slices.Index(g.CouncilMembers, member)
	if idx < 0 {
		return NewCouncilStateError("member " + member.String() + " not on roster")
	}
	if len(g.CouncilMembers) == 1 {
		return NewMemberCountError(0)
	}

	g.CouncilMembers = slices.Delete(g.CouncilMembers, idx, idx+1)

	return nil
}

// checkCouncilSeat verifies the token against the live roster: right
// instance, council enabled, member still seated.
func (g *Governance) checkCouncilSeat(token CouncilToken) error {
	if token.governanceID != g.ID {
		return NewTokenScopeError(g.ID, token.governanceID)
	}
	if !g.CouncilEnabled {
		return NewCouncilStateError("not enabled")
	}
	if !slices.Contains(g.CouncilMembers, token.member) {
		return NewCouncilStateError("member " + token.member.String() + " not on roster")
	}

	return nil
}
