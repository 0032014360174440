package region

import (
	"strings"

	"gorm.io/gorm"
)

// Region is the tenant boundary. Every scoped entity carries a region
// reference; cross-region references are rejected at write time.
type Region struct {
	gorm.Model
	Code     string `json:"code" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"not null"`
	IsActive bool   `json:"is_active"`
}

// Codes are matched case-insensitively, so they are stored lowercase.
func (r *Region) BeforeSave(tx *gorm.DB) error {
	r.Code = strings.ToLower(strings.TrimSpace(r.Code))
	return nil
}
