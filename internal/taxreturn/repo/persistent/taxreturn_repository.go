package persistent

import (
	"rentdesk/pkg/models"

	"gorm.io/gorm"
)

type TaxReturnRepository interface {
	Create(taxReturn *models.TaxReturn) error
	GetByLandlord(landlordID, taxReturnID string) (*models.TaxReturn, error)
	ListByLandlord(landlordID string, limit, offset int) ([]models.TaxReturn, int64, error)
	ExistsForYear(landlordID string, taxYear int) (bool, error)
	Save(taxReturn *models.TaxReturn) error
	Delete(landlordID, taxReturnID string) error
}

type taxReturnRepository struct {
	db *gorm.DB
}

func NewTaxReturnRepository(db *gorm.DB) TaxReturnRepository {
	return &taxReturnRepository{db: db}
}

func (r *taxReturnRepository) Create(taxReturn *models.TaxReturn) error {
	return r.db.Create(taxReturn).Error
}

func (r *taxReturnRepository) GetByLandlord(landlordID, taxReturnID string) (*models.TaxReturn, error) {
	var taxReturn models.TaxReturn
	err := r.db.Where("id = ? AND landlord_id = ?", taxReturnID, landlordID).First(&taxReturn).Error
	if err != nil {
		return nil, err
	}
	return &taxReturn, nil
}

func (r *taxReturnRepository) ListByLandlord(landlordID string, limit, offset int) ([]models.TaxReturn, int64, error) {
	query := r.db.Model(&models.TaxReturn{}).Where("landlord_id = ?", landlordID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var taxReturns []models.TaxReturn
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&taxReturns).Error; err != nil {
		return nil, 0, err
	}
	return taxReturns, total, nil
}

func (r *taxReturnRepository) ExistsForYear(landlordID string, taxYear int) (bool, error) {
	var count int64
	err := r.db.Model(&models.TaxReturn{}).
		Where("landlord_id = ? AND tax_year = ?", landlordID, taxYear).
		Count(&count).Error
	return count > 0, err
}

func (r *taxReturnRepository) Save(taxReturn *models.TaxReturn) error {
	return r.db.Save(taxReturn).Error
}

func (r *taxReturnRepository) Delete(landlordID, taxReturnID string) error {
	result := r.db.Where("id = ? AND landlord_id = ?", taxReturnID, landlordID).
		Delete(&models.TaxReturn{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
