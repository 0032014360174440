package region

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
	require.NoError(t, db.AutoMigrate(&Region{}))
	return db
}

func TestCodeIsNormalizedLowercase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRegionRepository(db)

	require.NoError(t, repo.Create(&Region{Code: "BC", Name: "British Columbia", IsActive: true}))

	found, err := repo.GetActiveByCode("bc")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "bc", found.Code)

	// Lookup is case-insensitive too.
	found, err = repo.GetActiveByCode("Bc")
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestGetActiveByCodeSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRegionRepository(db)

	require.NoError(t, repo.Create(&Region{Code: "ab", Name: "Alberta", IsActive: false}))

	found, err := repo.GetActiveByCode("ab")
	require.NoError(t, err)
	assert.Nil(t, found)

	missing, err := repo.GetActiveByCode("sk")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDuplicateCodeRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRegionRepository(db)

	require.NoError(t, repo.Create(&Region{Code: "bc", Name: "British Columbia", IsActive: true}))
	err := repo.Create(&Region{Code: "BC", Name: "Duplicate", IsActive: true})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
