package availability

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/organization"
)

// AvailabilityRepository defines the interface for availability data operations
type AvailabilityRepository interface {
	// GetOrCreate materializes the player's record lazily on first access.
	// Concurrent first access is resolved by the unique constraint on the
	// player column; the loser re-reads the winner's row.
	GetOrCreate(playerID, regionID uint) (*PlayerAvailability, bool, error)
	GetByPlayer(playerID uint) (*PlayerAvailability, error)
	GetByPlayerInRegion(playerID, regionID uint) (*PlayerAvailability, error)
	Save(a *PlayerAvailability) error
	ReplaceAllowedAssociations(a *PlayerAvailability, assocs []organization.Association) error
	AllowedAssociationIDs(availabilityID uint) ([]uint, error)
	AllowsAssociation(availabilityID, associationID uint) (bool, error)

	// SearchOpen returns the effectively open records in a region, newest
	// update first. A nil restriction means no allow-list filtering (admin);
	// otherwise rows must allow at least one of the given associations. A
	// non-nil empty restriction matches nothing.
	SearchOpen(regionID uint, allowedAssociationIDs []uint, now time.Time) ([]PlayerAvailability, error)
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) GetOrCreate(playerID, regionID uint) (*PlayerAvailability, bool, error) {
	existing, err := r.GetByPlayer(playerID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	record := &PlayerAvailability{
		PlayerID: playerID,
		RegionID: regionID,
		IsOpen:   true,
	}
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-access race; the other request created the row.
			winner, ferr := r.GetByPlayer(playerID)
			if ferr != nil {
				return nil, false, ferr
			}
			if winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, err
	}
	return record, true, nil
}

func (r *availabilityRepository) GetByPlayer(playerID uint) (*PlayerAvailability, error) {
	var a PlayerAvailability
	err := r.db.Preload("AllowedAssociations").Where("player_id = ?", playerID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *availabilityRepository) GetByPlayerInRegion(playerID, regionID uint) (*PlayerAvailability, error) {
	var a PlayerAvailability
	err := r.db.Preload("AllowedAssociations").
		Where("player_id = ? AND region_id = ?", playerID, regionID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *availabilityRepository) Save(a *PlayerAvailability) error {
	// Omit the association so Save never rewrites the allow-list implicitly;
	// ReplaceAllowedAssociations is the only path that touches it.
	return r.db.Omit("AllowedAssociations").Save(a).Error
}

func (r *availabilityRepository) ReplaceAllowedAssociations(a *PlayerAvailability, assocs []organization.Association) error {
	return r.db.Model(a).Association("AllowedAssociations").Replace(assocs)
}

func (r *availabilityRepository) AllowedAssociationIDs(availabilityID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Table("availability_allowed_associations").
		Where("player_availability_id = ?", availabilityID).
		Pluck("association_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *availabilityRepository) AllowsAssociation(availabilityID, associationID uint) (bool, error) {
	var count int64
	err := r.db.Table("availability_allowed_associations").
		Where("player_availability_id = ? AND association_id = ?", availabilityID, associationID).
		Count(&count).Error
	return count > 0, err
}

func (r *availabilityRepository) SearchOpen(regionID uint, allowedAssociationIDs []uint, now time.Time) ([]PlayerAvailability, error) {
	if allowedAssociationIDs != nil && len(allowedAssociationIDs) == 0 {
		return []PlayerAvailability{}, nil
	}

	query := r.db.Preload("AllowedAssociations").
		Where("region_id = ? AND is_open = ? AND is_committed = ?", regionID, true, false).
		Where("expires_at IS NULL OR expires_at > ?", now)

	if allowedAssociationIDs != nil {
		// Subquery keeps each row unique even when several allowed
		// associations match.
		query = query.Where(
			"id IN (?)",
			r.db.Table("availability_allowed_associations").
				Select("player_availability_id").
				Where("association_id IN ?", allowedAssociationIDs),
		)
	}

	var results []PlayerAvailability
	if err := query.Order("updated_at desc, id asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
