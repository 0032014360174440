package availability

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
)

// PlayerAvailability is a player's open/committed state plus the allow-list of
// associations permitted to discover it. One record per player, scoped to
// exactly one region; the region is set at creation and never changes.
type PlayerAvailability struct {
	gorm.Model
	PlayerID            uint                           `json:"player_id" gorm:"uniqueIndex;not null"`
	RegionID            uint                           `json:"region_id" gorm:"index;not null"`
	IsOpen              bool                           `json:"is_open"`
	IsCommitted         bool                           `json:"is_committed" gorm:"default:false"`
	CommittedAt         *time.Time                     `json:"committed_at"`
	Positions           datatypes.JSONSlice[string]    `json:"positions"`
	Levels              datatypes.JSONSlice[string]    `json:"levels"`
	ExpiresAt           *time.Time                     `json:"expires_at"`
	AllowedAssociations []organization.Association     `json:"allowed_associations,omitempty" gorm:"many2many:availability_allowed_associations"`
}

// IsOpenEffective reports the computed visibility state: open, not committed
// and not expired. Expiry is strict: a record expiring exactly now is closed.
func (a *PlayerAvailability) IsOpenEffective(now time.Time) bool {
	if a.IsCommitted {
		return false
	}
	if !a.IsOpen {
		return false
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
		return false
	}
	return true
}

// UpdatePatch carries the fields a player may change on their own record.
// Nil pointers mean "leave unchanged".
type UpdatePatch struct {
	IsOpen      *bool
	IsCommitted *bool
	Positions   *[]string
	Levels      *[]string
	ExpiresAt   *time.Time
}

// Apply mutates the record in place and returns the audit actions the change
// produced. Commitment always wins: whenever the record ends up committed,
// is_open is forced false in the same update regardless of what was requested,
// so a client cannot reopen visibility behind a commitment. Clearing
// commitment does not reopen; the player must do that explicitly.
func (a *PlayerAvailability) Apply(patch UpdatePatch, now time.Time) []string {
	var actions []string

	if patch.IsOpen != nil {
		a.IsOpen = *patch.IsOpen
	}
	if patch.Positions != nil {
		a.Positions = datatypes.NewJSONSlice(*patch.Positions)
	}
	if patch.Levels != nil {
		a.Levels = datatypes.NewJSONSlice(*patch.Levels)
	}
	if patch.ExpiresAt != nil {
		a.ExpiresAt = patch.ExpiresAt
	}

	if patch.IsCommitted != nil && *patch.IsCommitted != a.IsCommitted {
		if *patch.IsCommitted {
			a.IsCommitted = true
			committedAt := now
			a.CommittedAt = &committedAt
			actions = append(actions, audit.ActionCommittedSet)
		} else {
			a.IsCommitted = false
			a.CommittedAt = nil
			actions = append(actions, audit.ActionCommittedCleared)
		}
	}

	if a.IsCommitted {
		a.IsOpen = false
	}
	return actions
}
