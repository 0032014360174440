package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `gorm:"uniqueIndex;not null" json:"email"`
	Password      string          `json:"-"`
	IsActive      bool            `json:"is_active" gorm:"default:false"` // set true after email verification
	IsSuperuser   bool            `json:"is_superuser" gorm:"default:false"`
	VerifyToken   string          `json:"-" gorm:"index"`
	VerifyExpires *time.Time      `json:"-"`
	Profile       *AccountProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// AccountProfile carries the portal-specific attributes of a principal.
// Exactly one per user, created at registration.
type AccountProfile struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Role            string `json:"role" gorm:"default:'player'"`
	PhoneNumber     string `json:"phone_number"`
	IsCoachApproved bool   `json:"is_coach_approved" gorm:"default:false"`
	AssociationID   *uint  `json:"association_id" gorm:"index"` // home association, coaches only
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
