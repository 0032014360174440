package tryout

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// TryoutRepository defines the interface for tryout event data operations
type TryoutRepository interface {
	Create(event *TryoutEvent) error
	Update(event *TryoutEvent) error
	GetInRegion(id, regionID uint) (*TryoutEvent, error)

	// ListUpcoming returns active events in the region that have not finished
	// yet, soonest first.
	ListUpcoming(regionID uint, now time.Time) ([]TryoutEvent, error)

	// ListByAssociation returns all events of an association in the region,
	// including past and deactivated ones, for admin review.
	ListByAssociation(associationID, regionID uint) ([]TryoutEvent, error)
}

type tryoutRepository struct {
	db *gorm.DB
}

func NewTryoutRepository(db *gorm.DB) TryoutRepository {
	return &tryoutRepository{db: db}
}

func (r *tryoutRepository) Create(event *TryoutEvent) error {
	return r.db.Create(event).Error
}

func (r *tryoutRepository) Update(event *TryoutEvent) error {
	return r.db.Save(event).Error
}

func (r *tryoutRepository) GetInRegion(id, regionID uint) (*TryoutEvent, error) {
	var event TryoutEvent
	err := r.db.Preload("Association").
		Where("id = ? AND region_id = ?", id, regionID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *tryoutRepository) ListUpcoming(regionID uint, now time.Time) ([]TryoutEvent, error) {
	var events []TryoutEvent
	err := r.db.Preload("Association").
		Where("region_id = ? AND is_active = ?", regionID, true).
		Where("(ends_at IS NOT NULL AND ends_at > ?) OR (ends_at IS NULL AND starts_at > ?)", now, now).
		Order("starts_at asc, id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *tryoutRepository) ListByAssociation(associationID, regionID uint) ([]TryoutEvent, error) {
	var events []TryoutEvent
	err := r.db.Where("association_id = ? AND region_id = ?", associationID, regionID).
		Order("starts_at desc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
