package persistent

import (
	"rentdesk/pkg/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetByTenant(tenantID string) (*models.TenantProfile, error)
	Create(profile *models.TenantProfile) error
	Save(profile *models.TenantProfile) error
	ListLeases(tenantID string) ([]models.Lease, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByTenant(tenantID string) (*models.TenantProfile, error) {
	var profile models.TenantProfile
	err := r.db.Where("tenant_id = ?", tenantID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(profile *models.TenantProfile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) Save(profile *models.TenantProfile) error {
	// Save writes every column so cleared fields stick
	return r.db.Save(profile).Error
}

func (r *profileRepository) ListLeases(tenantID string) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.db.Where("tenant_id = ?", tenantID).
		Preload("Property").
		Order("start_date DESC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}
