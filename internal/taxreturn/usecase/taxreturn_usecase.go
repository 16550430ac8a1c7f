package usecase

import (
	"errors"
	"time"

	"rentdesk/internal/taxreturn/repo/persistent"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/queue"

	"gorm.io/gorm"
)

type CreateTaxReturnInput struct {
	LandlordID    string
	TaxYear       int
	TotalIncome   float64
	TotalExpenses float64
	Notes         string
}

// UpdateTaxReturnInput is a partial update; nil fields are left alone.
type UpdateTaxReturnInput struct {
	TotalIncome   *float64
	TotalExpenses *float64
	Notes         *string
}

type TaxReturnUseCase interface {
	Create(input CreateTaxReturnInput) (*models.TaxReturn, error)
	List(landlordID string, limit, offset int) ([]models.TaxReturn, int64, error)
	Get(landlordID, taxReturnID string) (*models.TaxReturn, error)
	Update(landlordID, taxReturnID string, input UpdateTaxReturnInput) (*models.TaxReturn, error)
	Submit(landlordID, taxReturnID string) (*models.TaxReturn, error)
	AttachDocument(landlordID, taxReturnID, documentURL string) (*models.TaxReturn, error)
	Delete(landlordID, taxReturnID string) error
}

type taxReturnUseCase struct {
	taxReturnRepo persistent.TaxReturnRepository
	queueClient   *queue.Client
	logger        *logger.Logger
}

func NewTaxReturnUseCase(taxReturnRepo persistent.TaxReturnRepository, queueClient *queue.Client, logger *logger.Logger) TaxReturnUseCase {
	return &taxReturnUseCase{
		taxReturnRepo: taxReturnRepo,
		queueClient:   queueClient,
		logger:        logger,
	}
}

func (uc *taxReturnUseCase) Create(input CreateTaxReturnInput) (*models.TaxReturn, error) {
	if input.LandlordID == "" {
		return nil, apperr.Validation("landlord_id is required")
	}
	if input.TaxYear < 2000 || input.TaxYear > time.Now().Year() {
		return nil, apperr.Validation("tax_year is out of range")
	}
	if input.TotalIncome < 0 || input.TotalExpenses < 0 {
		return nil, apperr.Validation("amounts cannot be negative")
	}

	exists, err := uc.taxReturnRepo.ExistsForYear(input.LandlordID, input.TaxYear)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("a tax return for this year already exists")
	}

	taxReturn := &models.TaxReturn{
		LandlordID:    input.LandlordID,
		TaxYear:       input.TaxYear,
		Status:        models.TaxReturnDraft,
		TotalIncome:   input.TotalIncome,
		TotalExpenses: input.TotalExpenses,
		Notes:         input.Notes,
	}

	if err := uc.taxReturnRepo.Create(taxReturn); err != nil {
		return nil, err
	}

	uc.logger.Info("Tax return %s created for landlord %s (year %d)", taxReturn.ID, taxReturn.LandlordID, taxReturn.TaxYear)
	return taxReturn, nil
}

func (uc *taxReturnUseCase) List(landlordID string, limit, offset int) ([]models.TaxReturn, int64, error) {
	return uc.taxReturnRepo.ListByLandlord(landlordID, limit, offset)
}

func (uc *taxReturnUseCase) Get(landlordID, taxReturnID string) (*models.TaxReturn, error) {
	taxReturn, err := uc.taxReturnRepo.GetByLandlord(landlordID, taxReturnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tax return not found")
		}
		return nil, err
	}
	return taxReturn, nil
}

func (uc *taxReturnUseCase) Update(landlordID, taxReturnID string, input UpdateTaxReturnInput) (*models.TaxReturn, error) {
	taxReturn, err := uc.Get(landlordID, taxReturnID)
	if err != nil {
		return nil, err
	}
	if !taxReturn.Editable() {
		return nil, apperr.Conflict("tax return can no longer be edited")
	}

	if input.TotalIncome != nil {
		if *input.TotalIncome < 0 {
			return nil, apperr.Validation("total_income cannot be negative")
		}
		taxReturn.TotalIncome = *input.TotalIncome
	}
	if input.TotalExpenses != nil {
		if *input.TotalExpenses < 0 {
			return nil, apperr.Validation("total_expenses cannot be negative")
		}
		taxReturn.TotalExpenses = *input.TotalExpenses
	}
	if input.Notes != nil {
		taxReturn.Notes = *input.Notes
	}

	if err := uc.taxReturnRepo.Save(taxReturn); err != nil {
		return nil, err
	}
	return taxReturn, nil
}

// Submit moves a draft to submitted and stamps the submission time. A
// rejected return goes back through the same door after corrections.
func (uc *taxReturnUseCase) Submit(landlordID, taxReturnID string) (*models.TaxReturn, error) {
	taxReturn, err := uc.Get(landlordID, taxReturnID)
	if err != nil {
		return nil, err
	}
	if !taxReturn.Editable() {
		return nil, apperr.Conflict("tax return has already been submitted")
	}

	now := time.Now()
	taxReturn.Status = models.TaxReturnSubmitted
	taxReturn.SubmittedAt = &now

	if err := uc.taxReturnRepo.Save(taxReturn); err != nil {
		return nil, err
	}

	uc.publishEvent(queue.EventTaxReturnSubmitted, map[string]interface{}{
		"tax_return_id": taxReturn.ID,
		"landlord_id":   taxReturn.LandlordID,
		"tax_year":      taxReturn.TaxYear,
	})

	uc.logger.Info("Tax return %s submitted by landlord %s", taxReturn.ID, taxReturn.LandlordID)
	return taxReturn, nil
}

func (uc *taxReturnUseCase) AttachDocument(landlordID, taxReturnID, documentURL string) (*models.TaxReturn, error) {
	taxReturn, err := uc.Get(landlordID, taxReturnID)
	if err != nil {
		return nil, err
	}
	if !taxReturn.Editable() {
		return nil, apperr.Conflict("tax return can no longer be edited")
	}

	taxReturn.DocumentURL = documentURL
	if err := uc.taxReturnRepo.Save(taxReturn); err != nil {
		return nil, err
	}
	return taxReturn, nil
}

func (uc *taxReturnUseCase) Delete(landlordID, taxReturnID string) error {
	taxReturn, err := uc.Get(landlordID, taxReturnID)
	if err != nil {
		return err
	}
	if taxReturn.Status != models.TaxReturnDraft {
		return apperr.Conflict("only draft tax returns can be deleted")
	}
	return uc.taxReturnRepo.Delete(landlordID, taxReturnID)
}

func (uc *taxReturnUseCase) publishEvent(eventType string, payload map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishEvent(eventType, payload); err != nil {
		uc.logger.Warn("Failed to publish %s event: %v", eventType, err)
	}
}
