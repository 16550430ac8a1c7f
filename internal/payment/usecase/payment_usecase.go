package usecase

import (
	"errors"
	"time"

	"rentdesk/internal/payment/repo/persistent"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/queue"

	"gorm.io/gorm"
)

type CreatePaymentInput struct {
	TenantID      string
	LeaseID       string
	Amount        float64
	DueDate       time.Time
	PaymentMethod string
	Reference     string
	Notes         string
}

type PaymentUseCase interface {
	Create(input CreatePaymentInput) (*models.Payment, error)
	ListByTenant(tenantID string, limit, offset int) ([]models.Payment, int64, error)
	UpdateStatus(actorID, role, paymentID string, status models.PaymentStatus, paidDate *time.Time) (*models.Payment, error)
	StatsByTenant(tenantID string) ([]persistent.PaymentStat, error)
}

type paymentUseCase struct {
	paymentRepo persistent.PaymentRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPaymentUseCase(paymentRepo persistent.PaymentRepository, queueClient *queue.Client, logger *logger.Logger) PaymentUseCase {
	return &paymentUseCase{
		paymentRepo: paymentRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *paymentUseCase) Create(input CreatePaymentInput) (*models.Payment, error) {
	if input.TenantID == "" {
		return nil, apperr.Validation("tenant_id is required")
	}
	if input.LeaseID == "" {
		return nil, apperr.Validation("lease_id is required")
	}
	if input.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if input.DueDate.IsZero() {
		return nil, apperr.Validation("due_date is required")
	}
	if input.PaymentMethod == "" {
		return nil, apperr.Validation("payment_method is required")
	}

	lease, err := uc.paymentRepo.GetLease(input.LeaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("lease does not exist")
		}
		return nil, err
	}
	if lease.TenantID != input.TenantID {
		return nil, apperr.Validation("lease does not belong to tenant")
	}

	payment := &models.Payment{
		TenantID:      input.TenantID,
		LeaseID:       input.LeaseID,
		Amount:        input.Amount,
		DueDate:       input.DueDate,
		PaymentMethod: input.PaymentMethod,
		Status:        models.PaymentPending,
		Reference:     input.Reference,
		Notes:         input.Notes,
	}

	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	uc.publishEvent(queue.EventPaymentRecorded, map[string]interface{}{
		"payment_id": payment.ID,
		"tenant_id":  payment.TenantID,
		"amount":     payment.Amount,
	})

	uc.logger.Info("Payment %s created for tenant %s (amount %.2f)", payment.ID, payment.TenantID, payment.Amount)
	return payment, nil
}

func (uc *paymentUseCase) ListByTenant(tenantID string, limit, offset int) ([]models.Payment, int64, error) {
	return uc.paymentRepo.ListByTenant(tenantID, limit, offset)
}

// UpdateStatus applies the paid-date rule: moving to "paid" without an
// explicit paid date stamps the current time, moving away clears it, so
// status == "paid" and paid_date != nil always hold together.
func (uc *paymentUseCase) UpdateStatus(actorID, role, paymentID string, status models.PaymentStatus, paidDate *time.Time) (*models.Payment, error) {
	if status == "" {
		return nil, apperr.Validation("status is required")
	}

	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	// Tenants can only touch their own payments; a guessed id belonging
	// to someone else looks like a missing row.
	if role != string(models.RoleLandlord) && payment.TenantID != actorID {
		return nil, apperr.NotFound("payment not found")
	}

	payment.Status = status
	if status == models.PaymentPaid {
		if paidDate != nil {
			payment.PaidDate = paidDate
		} else if payment.PaidDate == nil {
			now := time.Now()
			payment.PaidDate = &now
		}
	} else {
		payment.PaidDate = nil
	}

	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	uc.publishEvent(queue.EventPaymentStatusChanged, map[string]interface{}{
		"payment_id": payment.ID,
		"tenant_id":  payment.TenantID,
		"status":     string(payment.Status),
	})

	return payment, nil
}

func (uc *paymentUseCase) StatsByTenant(tenantID string) ([]persistent.PaymentStat, error) {
	return uc.paymentRepo.StatsByTenant(tenantID)
}

func (uc *paymentUseCase) publishEvent(eventType string, payload map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishEvent(eventType, payload); err != nil {
		// Event delivery is best effort; the write already succeeded
		uc.logger.Warn("Failed to publish %s event: %v", eventType, err)
	}
}
