package persistent

import (
	"rentdesk/pkg/models"

	"gorm.io/gorm"
)

// PaymentStat is one row of the grouped status aggregation.
type PaymentStat struct {
	Status models.PaymentStatus `json:"status"`
	Count  int64                `json:"count"`
	Total  float64              `json:"total"`
}

type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(paymentID string) (*models.Payment, error)
	ListByTenant(tenantID string, limit, offset int) ([]models.Payment, int64, error)
	Update(payment *models.Payment) error
	StatsByTenant(tenantID string) ([]PaymentStat, error)
	GetLease(leaseID string) (*models.Lease, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return err
	}
	// Return the joined lease/property the caller needs immediately
	return r.db.Preload("Lease.Property").First(payment, "id = ?", payment.ID).Error
}

func (r *paymentRepository) GetByID(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Lease.Property").First(&payment, "id = ?", paymentID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByTenant(tenantID string, limit, offset int) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := query.Preload("Lease.Property").
		Order("due_date DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	// Save writes every column, including a cleared paid_date
	return r.db.Save(payment).Error
}

// StatsByTenant is a single grouped query: per-status count and sum.
func (r *paymentRepository) StatsByTenant(tenantID string) ([]PaymentStat, error) {
	var stats []PaymentStat
	err := r.db.Model(&models.Payment{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *paymentRepository) GetLease(leaseID string) (*models.Lease, error) {
	var lease models.Lease
	err := r.db.Preload("Property").First(&lease, "id = ?", leaseID).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}
