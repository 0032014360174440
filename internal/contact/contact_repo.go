package contact

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrDuplicatePending is returned when a pending request already exists for
// the same player and team (or association). Both the pre-check and the
// storage constraint surface as this error, so a concurrent loser sees the
// same validation failure as a sequential duplicate.
var ErrDuplicatePending = errors.New("a pending contact request already exists for this player")

// ErrAlreadyProcessed is returned when responding to a request that is no
// longer pending.
var ErrAlreadyProcessed = errors.New("contact request has already been processed")

// ContactRepository defines the interface for contact request data operations
type ContactRepository interface {
	Create(cr *ContactRequest) error
	GetByIDInRegion(id, regionID uint) (*ContactRequest, error)
	ListForPlayer(playerID, regionID uint) ([]ContactRequest, error)
	ListForRequester(requesterID, regionID uint) ([]ContactRequest, error)
	HasPendingForTeam(playerID, teamID uint) (bool, error)
	HasPendingForAssociation(playerID, associationID uint) (bool, error)
	HasApprovedRequest(playerID, requesterID, regionID uint) (bool, error)

	// Respond transitions a pending request to the given terminal status.
	// The status guard is part of the UPDATE, so a request processed by a
	// concurrent call yields ErrAlreadyProcessed rather than a double
	// transition.
	Respond(cr *ContactRequest, status string, now time.Time) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(cr *ContactRequest) error {
	if err := r.db.Create(cr).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePending
		}
		return err
	}
	return nil
}

func (r *contactRepository) GetByIDInRegion(id, regionID uint) (*ContactRequest, error) {
	var cr ContactRequest
	err := r.db.Preload("Player").Preload("Player.Profile").
		Where("id = ? AND region_id = ?", id, regionID).First(&cr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cr, nil
}

func (r *contactRepository) ListForPlayer(playerID, regionID uint) ([]ContactRequest, error) {
	var requests []ContactRequest
	err := r.db.Preload("Player").Preload("Player.Profile").
		Where("player_id = ? AND region_id = ?", playerID, regionID).
		Order("created_at desc").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *contactRepository) ListForRequester(requesterID, regionID uint) ([]ContactRequest, error) {
	var requests []ContactRequest
	err := r.db.Preload("Player").Preload("Player.Profile").
		Where("requested_by_id = ? AND region_id = ?", requesterID, regionID).
		Order("created_at desc").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *contactRepository) HasPendingForTeam(playerID, teamID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ContactRequest{}).
		Where("player_id = ? AND requesting_team_id = ? AND status = ?", playerID, teamID, StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *contactRepository) HasPendingForAssociation(playerID, associationID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ContactRequest{}).
		Where("player_id = ? AND requesting_association_id = ? AND status = ?", playerID, associationID, StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *contactRepository) HasApprovedRequest(playerID, requesterID, regionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ContactRequest{}).
		Where("player_id = ? AND requested_by_id = ? AND region_id = ? AND status = ?",
			playerID, requesterID, regionID, StatusApproved).
		Count(&count).Error
	return count > 0, err
}

func (r *contactRepository) Respond(cr *ContactRequest, status string, now time.Time) error {
	result := r.db.Model(&ContactRequest{}).
		Where("id = ? AND status = ?", cr.ID, StatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}
	cr.Status = status
	cr.RespondedAt = &now
	return nil
}
