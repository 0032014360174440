package tryout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/region"
)

func setupTestDB(t *testing.T) (*gorm.DB, *region.Region, *organization.Association) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&region.Region{},
		&organization.Association{},
		&TryoutEvent{},
	))

	reg := &region.Region{Code: "bc", Name: "British Columbia", IsActive: true}
	require.NoError(t, db.Create(reg).Error)
	assoc := &organization.Association{RegionID: reg.ID, Name: "North Shore", IsActive: true}
	require.NoError(t, db.Create(assoc).Error)
	return db, reg, assoc
}

func TestTryoutRegionMustMatchAssociation(t *testing.T) {
	db, _, assoc := setupTestDB(t)
	repo := NewTryoutRepository(db)

	other := &region.Region{Code: "ab", Name: "Alberta", IsActive: true}
	require.NoError(t, db.Create(other).Error)

	err := repo.Create(&TryoutEvent{
		RegionID:      other.ID,
		AssociationID: assoc.ID,
		Title:         "Spring Tryouts",
		StartsAt:      time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, organization.ErrRegionMismatch)
}

func TestListUpcoming(t *testing.T) {
	db, reg, assoc := setupTestDB(t)
	repo := NewTryoutRepository(db)
	now := time.Now()

	later := now.Add(48 * time.Hour)
	require.NoError(t, repo.Create(&TryoutEvent{
		RegionID: reg.ID, AssociationID: assoc.ID,
		Title: "Later", StartsAt: later, IsActive: true,
	}))
	soon := now.Add(2 * time.Hour)
	require.NoError(t, repo.Create(&TryoutEvent{
		RegionID: reg.ID, AssociationID: assoc.ID,
		Title: "Soon", StartsAt: soon, IsActive: true,
	}))
	require.NoError(t, repo.Create(&TryoutEvent{
		RegionID: reg.ID, AssociationID: assoc.ID,
		Title: "Past", StartsAt: now.Add(-24 * time.Hour), IsActive: true,
	}))
	require.NoError(t, repo.Create(&TryoutEvent{
		RegionID: reg.ID, AssociationID: assoc.ID,
		Title: "Deactivated", StartsAt: later, IsActive: false,
	}))

	// Started but still running counts as upcoming.
	endsLater := now.Add(3 * time.Hour)
	require.NoError(t, repo.Create(&TryoutEvent{
		RegionID: reg.ID, AssociationID: assoc.ID,
		Title: "Running", StartsAt: now.Add(-time.Hour), EndsAt: &endsLater, IsActive: true,
	}))

	events, err := repo.ListUpcoming(reg.ID, now)
	require.NoError(t, err)
	require.Len(t, events, 3)

	titles := make([]string, 0, len(events))
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	// Soonest start first.
	assert.Equal(t, []string{"Running", "Soon", "Later"}, titles)
}

func TestGetInRegion(t *testing.T) {
	db, reg, assoc := setupTestDB(t)
	repo := NewTryoutRepository(db)

	event := &TryoutEvent{
		RegionID: reg.ID, AssociationID: assoc.ID,
		Title: "Spring Tryouts", StartsAt: time.Now().Add(24 * time.Hour), IsActive: true,
	}
	require.NoError(t, repo.Create(event))

	found, err := repo.GetInRegion(event.ID, reg.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Spring Tryouts", found.Title)

	missing, err := repo.GetInRegion(event.ID, reg.ID+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
