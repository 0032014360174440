package audit

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Recorder writes audit entries. It deliberately has no update or delete
// operations.
type Recorder interface {
	Record(actorID *uint, action, targetType string, targetID, regionID uint, metadata map[string]interface{}) error
	ListByRegion(regionID uint, limit int) ([]AuditLog, error)
}

type recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) Recorder {
	return &recorder{db: db}
}

func (r *recorder) Record(actorID *uint, action, targetType string, targetID, regionID uint, metadata map[string]interface{}) error {
	entry := AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		RegionID:   regionID,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			log.Error().Err(err).Str("action", action).Msg("audit: metadata not serializable, recording without it")
		} else {
			entry.Metadata = raw
		}
	}
	return r.db.Create(&entry).Error
}

// ListByRegion returns the most recent entries for a region, newest first.
// Read access is admin-only at the transport layer.
func (r *recorder) ListByRegion(regionID uint, limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = 100
	} else if limit > 500 {
		limit = 500
	}
	var entries []AuditLog
	err := r.db.Where("region_id = ?", regionID).
		Order("created_at desc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
