package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AuditLog{}))
	return db
}

func TestRecordWithMetadata(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(db)

	actor := uint(9)
	require.NoError(t, rec.Record(&actor, ActionContactRequestCreated, "ContactRequest", 1, 1,
		map[string]interface{}{"requesting_team_id": 5}))

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, ActionContactRequestCreated, entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, uint(9), *entry.ActorID)
	assert.JSONEq(t, `{"requesting_team_id":5}`, string(entry.Metadata))
}

func TestRecordSystemAction(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(db)

	// System actions have no actor.
	require.NoError(t, rec.Record(nil, ActionTryoutDeactivated, "TryoutEvent", 3, 1, nil))

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Nil(t, entry.ActorID)
	assert.Empty(t, entry.Metadata)
}

func TestListByRegion(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, rec.Record(nil, ActionCommittedSet, "PlayerAvailability", uint(i+1), 1, nil))
	}
	require.NoError(t, rec.Record(nil, ActionCommittedSet, "PlayerAvailability", 99, 2, nil))

	entries, err := rec.ListByRegion(1, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, uint(1), e.RegionID)
	}

	all, err := rec.ListByRegion(1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
