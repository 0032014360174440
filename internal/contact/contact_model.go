package contact

import (
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/user"
)

// Contact request lifecycle. Pending transitions exactly once to Approved or
// Declined; both are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ContactRequest is a coach's (or association's) outreach to a player. The
// partial unique indexes enforce at most one pending request per player+team,
// and per player+association for requests that name no team; concurrent
// duplicate creates are decided by the database, not by a check-then-insert.
type ContactRequest struct {
	gorm.Model
	PlayerID                uint       `json:"player_id" gorm:"index;not null;uniqueIndex:idx_pending_request_per_player_team,where:status = 'pending';uniqueIndex:idx_pending_request_per_player_assoc,where:status = 'pending' AND requesting_association_id IS NOT NULL"`
	Player                  *user.User `json:"-" gorm:"foreignKey:PlayerID"`
	RequestingTeamID        *uint      `json:"requesting_team_id" gorm:"uniqueIndex:idx_pending_request_per_player_team"`
	RequestingAssociationID *uint      `json:"requesting_association_id" gorm:"uniqueIndex:idx_pending_request_per_player_assoc"`
	RequestedByID           uint       `json:"requested_by_id" gorm:"index;not null"`
	RegionID                uint       `json:"region_id" gorm:"index;not null"`
	Status                  string     `json:"status" gorm:"default:'pending';index"`
	Message                 string     `json:"message" gorm:"size:500"`
	RespondedAt             *time.Time `json:"responded_at"`
}

// IsPending reports whether the request can still be responded to.
func (cr *ContactRequest) IsPending() bool {
	return cr.Status == StatusPending
}
