package profile

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Batting/throwing hands.
const (
	HandRight  = "R"
	HandLeft   = "L"
	HandSwitch = "S"
)

// Profile visibility modes.
const (
	VisibilityAll      = "all"
	VisibilityNone     = "none"
	VisibilitySpecific = "specific"
)

// PlayerProfile is the player-facing scouting card: baseball attributes and
// recruiting links. One per player, created lazily.
type PlayerProfile struct {
	gorm.Model
	UserID               uint                        `json:"user_id" gorm:"uniqueIndex;not null"`
	CurrentAssociationID *uint                       `json:"current_association_id" gorm:"index"`
	DisplayName          string                      `json:"display_name"`
	BirthYear            *int                        `json:"birth_year"`
	Positions            datatypes.JSONSlice[string] `json:"positions"`
	Bats                 string                      `json:"bats"`
	Throws               string                      `json:"throws"`
	ProfileVisibility    string                      `json:"profile_visibility" gorm:"default:'none'"`
	PBRUrl               string                      `json:"pbr_url"`
	PGUrl                string                      `json:"pg_url"`
	YoutubeURL           string                      `json:"youtube_url"`
	InstagramHandle      string                      `json:"instagram_handle"`
	TwitterHandle        string                      `json:"twitter_handle"`
	Bio                  string                      `json:"bio"`
}
