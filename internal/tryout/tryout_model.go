package tryout

import (
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/organization"
)

// TryoutEvent is an association-hosted tryout announcement, visible to
// authenticated users of its region.
type TryoutEvent struct {
	gorm.Model
	RegionID        uint                      `json:"region_id" gorm:"index;not null"`
	AssociationID   uint                      `json:"association_id" gorm:"index;not null"`
	Association     *organization.Association `json:"association,omitempty" gorm:"foreignKey:AssociationID"`
	TeamID          *uint                     `json:"team_id" gorm:"index"`
	Title           string                    `json:"title" gorm:"not null"`
	Description     string                    `json:"description"`
	Location        string                    `json:"location"`
	StartsAt        time.Time                 `json:"starts_at" gorm:"index;not null"`
	EndsAt          *time.Time                `json:"ends_at"`
	RegistrationURL string                    `json:"registration_url"`
	ContactEmail    string                    `json:"contact_email"`
	IsActive        bool                      `json:"is_active"`
}

// Events must stay within their association's region, same as teams.
func (t *TryoutEvent) BeforeSave(tx *gorm.DB) error {
	if t.AssociationID == 0 || t.RegionID == 0 {
		return nil
	}
	var assoc organization.Association
	if err := tx.Select("region_id").First(&assoc, t.AssociationID).Error; err != nil {
		return err
	}
	if assoc.RegionID != t.RegionID {
		return organization.ErrRegionMismatch
	}
	return nil
}

// IsUpcoming reports whether the event is still worth listing: active and not
// yet finished (or not yet started when no end is set).
func (t *TryoutEvent) IsUpcoming(now time.Time) bool {
	if !t.IsActive {
		return false
	}
	if t.EndsAt != nil {
		return t.EndsAt.After(now)
	}
	return t.StartsAt.After(now)
}
