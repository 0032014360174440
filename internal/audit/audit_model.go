package audit

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Action codes recorded by the engine. One entry per state transition,
// never zero, never duplicated.
const (
	ActionCommittedSet           = "COMMITTED_SET"
	ActionCommittedCleared       = "COMMITTED_CLEARED"
	ActionContactRequestCreated  = "CONTACT_REQUEST_CREATED"
	ActionContactRequestApproved = "CONTACT_REQUEST_APPROVED"
	ActionContactRequestDeclined = "CONTACT_REQUEST_DECLINED"
	ActionTryoutCreated          = "TRYOUT_CREATED"
	ActionTryoutUpdated          = "TRYOUT_UPDATED"
	ActionTryoutDeactivated      = "TRYOUT_DEACTIVATED"
)

// AuditLog is an append-only fact. Rows are written once and never updated or
// deleted; the repository exposes no mutation beyond Create.
type AuditLog struct {
	gorm.Model
	ActorID    *uint          `json:"actor_id" gorm:"index"` // nullable, system actions have none
	Action     string         `json:"action" gorm:"index;not null"`
	TargetType string         `json:"target_type" gorm:"not null"`
	TargetID   uint           `json:"target_id" gorm:"not null"`
	RegionID   uint           `json:"region_id" gorm:"index;not null"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}
