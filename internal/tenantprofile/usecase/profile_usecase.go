package usecase

import (
	"errors"
	"time"

	"rentdesk/internal/tenantprofile/repo/persistent"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"

	"gorm.io/gorm"
)

// UpdateProfileInput carries a partial update; nil fields are left alone.
// Anything not listed here cannot be written through the API, which keeps
// profile_completed and the server-assigned fields out of reach.
type UpdateProfileInput struct {
	EmergencyContactName     *string
	EmergencyContactPhone    *string
	EmergencyContactRelation *string
	MaxRent                  *float64
	PreferredAreas           *string
	PetsAllowed              *bool
	Smoker                   *bool
	EmploymentStatus         *string
	MonthlyIncome            *float64
	CurrentProperty          *string
	MoveInDate               *time.Time
	PreviousAddress          *string
	PreferredPaymentMethod   *string
	AutoPayEnabled           *bool
}

type ProfileUseCase interface {
	Get(tenantID string) (*models.TenantProfile, []models.Lease, error)
	GetOrCreate(tenantID string) (*models.TenantProfile, error)
	Update(tenantID string, input UpdateProfileInput) (*models.TenantProfile, error)
	RecomputeCompleteness(tenantID string) (*models.TenantProfile, error)
}

type profileUseCase struct {
	profileRepo persistent.ProfileRepository
	logger      *logger.Logger
}

func NewProfileUseCase(profileRepo persistent.ProfileRepository, logger *logger.Logger) ProfileUseCase {
	return &profileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (uc *profileUseCase) Get(tenantID string) (*models.TenantProfile, []models.Lease, error) {
	profile, err := uc.profileRepo.GetByTenant(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("tenant profile not found")
		}
		return nil, nil, err
	}

	leases, err := uc.profileRepo.ListLeases(tenantID)
	if err != nil {
		return nil, nil, err
	}

	return profile, leases, nil
}

func (uc *profileUseCase) GetOrCreate(tenantID string) (*models.TenantProfile, error) {
	if tenantID == "" {
		return nil, apperr.Validation("tenant_id is required")
	}

	profile, err := uc.profileRepo.GetByTenant(tenantID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &models.TenantProfile{TenantID: tenantID}
	if err := uc.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	uc.logger.Info("Created tenant profile for tenant %s", tenantID)
	return profile, nil
}

// Update applies the recognized fields and recomputes profile_completed in
// the same write, so the cached flag can never go stale on a mutation.
func (uc *profileUseCase) Update(tenantID string, input UpdateProfileInput) (*models.TenantProfile, error) {
	profile, err := uc.profileRepo.GetByTenant(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tenant profile not found")
		}
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	applyBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	applyString(&profile.EmergencyContactName, input.EmergencyContactName)
	applyString(&profile.EmergencyContactPhone, input.EmergencyContactPhone)
	applyString(&profile.EmergencyContactRelation, input.EmergencyContactRelation)
	applyFloat(&profile.MaxRent, input.MaxRent)
	applyString(&profile.PreferredAreas, input.PreferredAreas)
	applyBool(&profile.PetsAllowed, input.PetsAllowed)
	applyBool(&profile.Smoker, input.Smoker)
	applyString(&profile.EmploymentStatus, input.EmploymentStatus)
	applyFloat(&profile.MonthlyIncome, input.MonthlyIncome)
	applyString(&profile.CurrentProperty, input.CurrentProperty)
	if input.MoveInDate != nil {
		profile.MoveInDate = input.MoveInDate
	}
	applyString(&profile.PreviousAddress, input.PreviousAddress)
	applyString(&profile.PreferredPaymentMethod, input.PreferredPaymentMethod)
	applyBool(&profile.AutoPayEnabled, input.AutoPayEnabled)

	profile.ProfileCompleted = profile.ComputeCompleted()

	if err := uc.profileRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RecomputeCompleteness re-derives the flag from the source fields. The
// write is skipped when nothing changed, so the call is idempotent.
func (uc *profileUseCase) RecomputeCompleteness(tenantID string) (*models.TenantProfile, error) {
	profile, err := uc.profileRepo.GetByTenant(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tenant profile not found")
		}
		return nil, err
	}

	completed := profile.ComputeCompleted()
	if completed == profile.ProfileCompleted {
		return profile, nil
	}

	profile.ProfileCompleted = completed
	if err := uc.profileRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
