package organization

import (
	"errors"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/region"
)

// ErrRegionMismatch is returned when a write links entities from different
// regions.
var ErrRegionMismatch = errors.New("region mismatch between linked records")

// Association is an organizational club within a region, owning teams.
type Association struct {
	gorm.Model
	RegionID       uint           `json:"region_id" gorm:"index;not null"`
	Region         *region.Region `json:"-" gorm:"foreignKey:RegionID"`
	Name           string         `json:"name" gorm:"not null"`
	ShortName      string         `json:"short_name"`
	OfficialDomain string         `json:"official_domain"` // used for coach auto-approval
	WebsiteURL     string         `json:"website_url"`
	Description    string         `json:"description"`
	ContactEmail   string         `json:"contact_email"`
	ContactPhone   string         `json:"contact_phone"`
	Address        string         `json:"address"`
	LogoURL        string         `json:"logo_url"`
	IsActive       bool           `json:"is_active"`
}

// Team belongs to exactly one association and must share its region.
type Team struct {
	gorm.Model
	RegionID      uint         `json:"region_id" gorm:"index;not null"`
	AssociationID uint         `json:"association_id" gorm:"index;not null"`
	Association   *Association `json:"association,omitempty" gorm:"foreignKey:AssociationID"`
	Name          string       `json:"name" gorm:"not null"`
	AgeGroup      string       `json:"age_group"`
	Level         string       `json:"level"`
	IsActive      bool         `json:"is_active"`
}

// The team/association region invariant is enforced on every write, not just
// at creation.
func (t *Team) BeforeSave(tx *gorm.DB) error {
	if t.AssociationID == 0 || t.RegionID == 0 {
		return nil
	}
	var assoc Association
	if err := tx.Select("region_id").First(&assoc, t.AssociationID).Error; err != nil {
		return err
	}
	if assoc.RegionID != t.RegionID {
		return ErrRegionMismatch
	}
	return nil
}

// TeamCoach links a coach to a team. The membership is the coach's mandate to
// discover and contact players associated with the team's association.
type TeamCoach struct {
	gorm.Model
	UserID   uint  `json:"user_id" gorm:"index;not null;uniqueIndex:idx_team_coach_user_team"`
	TeamID   uint  `json:"team_id" gorm:"index;not null;uniqueIndex:idx_team_coach_user_team"`
	Team     *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	IsActive bool  `json:"is_active"`
}
