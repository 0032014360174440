package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/transferportal/internal/region"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&region.Region{},
		&Association{},
		&Team{},
		&TeamCoach{},
	))
	return db
}

func seedRegion(t *testing.T, db *gorm.DB, code string) *region.Region {
	t.Helper()
	r := &region.Region{Code: code, Name: code, IsActive: true}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedAssociation(t *testing.T, repo OrganizationRepository, regionID uint, name string) *Association {
	t.Helper()
	a := &Association{RegionID: regionID, Name: name, IsActive: true}
	require.NoError(t, repo.CreateAssociation(a))
	return a
}

func seedTeam(t *testing.T, repo OrganizationRepository, regionID, associationID uint, name string) *Team {
	t.Helper()
	team := &Team{RegionID: regionID, AssociationID: associationID, Name: name, IsActive: true}
	require.NoError(t, repo.CreateTeam(team))
	return team
}

func TestTeamRegionMustMatchAssociation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	bc := seedRegion(t, db, "bc")
	ab := seedRegion(t, db, "ab")
	assoc := seedAssociation(t, repo, bc.ID, "North Shore")

	err := repo.CreateTeam(&Team{RegionID: ab.ID, AssociationID: assoc.ID, Name: "Stray"})
	assert.ErrorIs(t, err, ErrRegionMismatch)

	// And the invariant holds on updates too.
	team := seedTeam(t, repo, bc.ID, assoc.ID, "Twins")
	team.RegionID = ab.ID
	assert.ErrorIs(t, repo.UpdateTeam(team), ErrRegionMismatch)
}

func TestUpsertMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	bc := seedRegion(t, db, "bc")
	assoc := seedAssociation(t, repo, bc.ID, "North Shore")
	team := seedTeam(t, repo, bc.ID, assoc.ID, "Twins")

	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: 9, TeamID: team.ID, IsActive: true}))

	active, err := repo.HasActiveMembership(9, team.ID)
	require.NoError(t, err)
	assert.True(t, active)

	// Upserting the same pair flips the flag instead of erroring.
	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: 9, TeamID: team.ID, IsActive: false}))

	active, err = repo.HasActiveMembership(9, team.ID)
	require.NoError(t, err)
	assert.False(t, active)

	var count int64
	require.NoError(t, db.Model(&TeamCoach{}).Where("user_id = ? AND team_id = ?", 9, team.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A membership created inactive from the start is stored inactive.
	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: 10, TeamID: team.ID, IsActive: false}))
	active, err = repo.HasActiveMembership(10, team.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestAuthorizedAssociationIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	bc := seedRegion(t, db, "bc")
	ab := seedRegion(t, db, "ab")

	a := seedAssociation(t, repo, bc.ID, "North Shore")
	b := seedAssociation(t, repo, bc.ID, "Fraser Valley")
	home := seedAssociation(t, repo, bc.ID, "Island")
	foreign := seedAssociation(t, repo, ab.ID, "Calgary")

	teamA1 := seedTeam(t, repo, bc.ID, a.ID, "Twins")
	teamA2 := seedTeam(t, repo, bc.ID, a.ID, "Giants")
	teamB := seedTeam(t, repo, bc.ID, b.ID, "Canadians")
	foreignTeam := seedTeam(t, repo, ab.ID, foreign.ID, "Cardinals")

	coachID := uint(9)
	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: coachID, TeamID: teamA1.ID, IsActive: true}))
	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: coachID, TeamID: teamA2.ID, IsActive: true}))
	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: coachID, TeamID: teamB.ID, IsActive: false}))
	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: coachID, TeamID: foreignTeam.ID, IsActive: true}))

	// Two teams of the same association dedupe to one id; the inactive
	// membership and the out-of-region team contribute nothing; the home
	// association is added on top.
	ids, err := repo.AuthorizedAssociationIDs(coachID, bc.ID, home.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, home.ID}, ids)
}

func TestAuthorizedAssociationIDsHomeOutOfRegion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	bc := seedRegion(t, db, "bc")
	ab := seedRegion(t, db, "ab")
	foreignHome := seedAssociation(t, repo, ab.ID, "Calgary")

	ids, err := repo.AuthorizedAssociationIDs(9, bc.ID, foreignHome.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAuthorizedAssociationIDsHomeAlreadyCovered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	bc := seedRegion(t, db, "bc")
	a := seedAssociation(t, repo, bc.ID, "North Shore")
	team := seedTeam(t, repo, bc.ID, a.ID, "Twins")

	require.NoError(t, repo.UpsertMembership(&TeamCoach{UserID: 9, TeamID: team.ID, IsActive: true}))

	ids, err := repo.AuthorizedAssociationIDs(9, bc.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, ids)
}

func TestGetActiveAssociationScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	bc := seedRegion(t, db, "bc")
	ab := seedRegion(t, db, "ab")
	assoc := seedAssociation(t, repo, bc.ID, "North Shore")

	found, err := repo.GetActiveAssociation(assoc.ID, bc.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	wrongRegion, err := repo.GetActiveAssociation(assoc.ID, ab.ID)
	require.NoError(t, err)
	assert.Nil(t, wrongRegion)

	assoc.IsActive = false
	require.NoError(t, repo.UpdateAssociation(assoc))
	inactive, err := repo.GetActiveAssociation(assoc.ID, bc.ID)
	require.NoError(t, err)
	assert.Nil(t, inactive)
}
