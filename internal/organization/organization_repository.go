package organization

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrganizationRepository defines the interface for association, team and
// coach-membership data operations
type OrganizationRepository interface {
	// Association operations
	CreateAssociation(assoc *Association) error
	UpdateAssociation(assoc *Association) error
	GetAssociationByID(id uint) (*Association, error)
	GetActiveAssociation(id, regionID uint) (*Association, error)
	ListAssociationsByRegion(regionID uint) ([]Association, error)

	// Team operations
	CreateTeam(team *Team) error
	UpdateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamInRegion(id, regionID uint) (*Team, error)
	ListTeamsByRegion(regionID uint) ([]Team, error)
	ListTeamsByAssociation(associationID uint) ([]Team, error)

	// TeamCoach operations
	UpsertMembership(membership *TeamCoach) error
	GetMembership(userID, teamID uint) (*TeamCoach, error)
	HasActiveMembership(userID, teamID uint) (bool, error)
	ListActiveMemberships(userID, regionID uint) ([]TeamCoach, error)
	AuthorizedAssociationIDs(userID, regionID, homeAssociationID uint) ([]uint, error)
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

// --- Association Operations ---

func (r *organizationRepository) CreateAssociation(assoc *Association) error {
	return r.db.Create(assoc).Error
}

func (r *organizationRepository) UpdateAssociation(assoc *Association) error {
	return r.db.Save(assoc).Error
}

func (r *organizationRepository) GetAssociationByID(id uint) (*Association, error) {
	var assoc Association
	if err := r.db.First(&assoc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assoc, nil
}

func (r *organizationRepository) GetActiveAssociation(id, regionID uint) (*Association, error) {
	var assoc Association
	err := r.db.Where("id = ? AND region_id = ? AND is_active = ?", id, regionID, true).First(&assoc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assoc, nil
}

func (r *organizationRepository) ListAssociationsByRegion(regionID uint) ([]Association, error) {
	var assocs []Association
	err := r.db.Where("region_id = ? AND is_active = ?", regionID, true).Order("name asc").Find(&assocs).Error
	if err != nil {
		return nil, err
	}
	return assocs, nil
}

// --- Team Operations ---

func (r *organizationRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *organizationRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *organizationRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.Preload("Association").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *organizationRepository) GetTeamInRegion(id, regionID uint) (*Team, error) {
	var team Team
	err := r.db.Preload("Association").
		Where("id = ? AND region_id = ?", id, regionID).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *organizationRepository) ListTeamsByRegion(regionID uint) ([]Team, error) {
	var teams []Team
	err := r.db.Preload("Association").
		Where("region_id = ? AND is_active = ?", regionID, true).Order("name asc").Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *organizationRepository) ListTeamsByAssociation(associationID uint) ([]Team, error) {
	var teams []Team
	err := r.db.Where("association_id = ? AND is_active = ?", associationID, true).
		Order("name asc").Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// --- TeamCoach Operations ---

func (r *organizationRepository) UpsertMembership(membership *TeamCoach) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
	}).Create(membership).Error
}

func (r *organizationRepository) GetMembership(userID, teamID uint) (*TeamCoach, error) {
	var membership TeamCoach
	err := r.db.Where("user_id = ? AND team_id = ?", userID, teamID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

func (r *organizationRepository) HasActiveMembership(userID, teamID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamCoach{}).
		Where("user_id = ? AND team_id = ? AND is_active = ?", userID, teamID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *organizationRepository) ListActiveMemberships(userID, regionID uint) ([]TeamCoach, error) {
	var memberships []TeamCoach
	err := r.db.Preload("Team").Preload("Team.Association").
		Joins("JOIN teams ON teams.id = team_coaches.team_id").
		Where("team_coaches.user_id = ? AND team_coaches.is_active = ? AND teams.region_id = ?", userID, true, regionID).
		Order("teams.name asc").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// AuthorizedAssociationIDs computes the coach's mandate within a region: the
// associations of every team the coach actively represents there, plus the
// home association when it belongs to the same region.
func (r *organizationRepository) AuthorizedAssociationIDs(userID, regionID, homeAssociationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&TeamCoach{}).
		Joins("JOIN teams ON teams.id = team_coaches.team_id").
		Where("team_coaches.user_id = ? AND team_coaches.is_active = ? AND teams.region_id = ?", userID, true, regionID).
		Distinct().
		Pluck("teams.association_id", &ids).Error
	if err != nil {
		return nil, err
	}

	if homeAssociationID != 0 {
		home, err := r.GetActiveAssociation(homeAssociationID, regionID)
		if err != nil {
			return nil, err
		}
		if home != nil {
			seen := false
			for _, id := range ids {
				if id == home.ID {
					seen = true
					break
				}
			}
			if !seen {
				ids = append(ids, home.ID)
			}
		}
	}
	return ids, nil
}
