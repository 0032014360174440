package profile

import (
	"errors"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for player profile data operations
type ProfileRepository interface {
	GetOrCreate(userID uint) (*PlayerProfile, error)
	GetByUserID(userID uint) (*PlayerProfile, error)
	Save(p *PlayerProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetOrCreate(userID uint) (*PlayerProfile, error) {
	existing, err := r.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	record := &PlayerProfile{UserID: userID, ProfileVisibility: VisibilityNone}
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByUserID(userID)
		}
		return nil, err
	}
	return record, nil
}

func (r *profileRepository) GetByUserID(userID uint) (*PlayerProfile, error) {
	var p PlayerProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Save(p *PlayerProfile) error {
	return r.db.Save(p).Error
}
