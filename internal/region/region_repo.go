package region

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// RegionRepository defines the interface for region data operations
type RegionRepository interface {
	Create(region *Region) error
	Update(region *Region) error
	GetByID(id uint) (*Region, error)
	GetActiveByCode(code string) (*Region, error)
	ListActive() ([]Region, error)
	List() ([]Region, error)
}

type regionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &regionRepository{db: db}
}

func (r *regionRepository) Create(region *Region) error {
	return r.db.Create(region).Error
}

func (r *regionRepository) Update(region *Region) error {
	return r.db.Save(region).Error
}

func (r *regionRepository) GetByID(id uint) (*Region, error) {
	var region Region
	if err := r.db.First(&region, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &region, nil
}

// GetActiveByCode returns the active region with the given code, or nil when
// no such region exists. Matching is case-insensitive.
func (r *regionRepository) GetActiveByCode(code string) (*Region, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	var region Region
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&region).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &region, nil
}

func (r *regionRepository) ListActive() ([]Region, error) {
	var regions []Region
	if err := r.db.Where("is_active = ?", true).Order("code asc").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *regionRepository) List() ([]Region, error) {
	var regions []Region
	if err := r.db.Order("code asc").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}
