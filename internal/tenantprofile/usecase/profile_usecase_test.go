package usecase

import (
	"testing"
	"time"

	"rentdesk/internal/tenantprofile/repo/persistent"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/response"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProfileUseCase(t *testing.T) (ProfileUseCase, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.TenantProfile{}, &models.Property{}, &models.Lease{}))

	repo := persistent.NewProfileRepository(db)
	return NewProfileUseCase(repo, logger.New()), db
}

func strPtr(s string) *string { return &s }

func TestGetOrCreate(t *testing.T) {
	uc, _ := setupProfileUseCase(t)

	profile, err := uc.GetOrCreate("t1")
	assert.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.False(t, profile.ProfileCompleted)

	// Second call returns the same profile
	again, err := uc.GetOrCreate("t1")
	assert.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestGet_MissingProfileIsNotFound(t *testing.T) {
	uc, _ := setupProfileUseCase(t)

	_, _, err := uc.Get("nobody")
	assert.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, apperr.Classify(err).Code)
}

func TestGet_IncludesLeases(t *testing.T) {
	uc, db := setupProfileUseCase(t)
	_, err := uc.GetOrCreate("t1")
	assert.NoError(t, err)

	property := &models.Property{LandlordID: "landlord-1", Name: "Oak House", Address: "12 Oak Street"}
	assert.NoError(t, db.Create(property).Error)
	assert.NoError(t, db.Create(&models.Lease{
		TenantID:    "t1",
		PropertyID:  property.ID,
		StartDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 500,
	}).Error)

	_, leases, err := uc.Get("t1")
	assert.NoError(t, err)
	assert.Len(t, leases, 1)
	assert.NotNil(t, leases[0].Property)
	assert.Equal(t, "Oak House", leases[0].Property.Name)
}

func TestUpdate_RecomputesCompleteness(t *testing.T) {
	uc, _ := setupProfileUseCase(t)
	_, err := uc.GetOrCreate("t1")
	assert.NoError(t, err)

	profile, err := uc.Update("t1", UpdateProfileInput{
		EmergencyContactName:  strPtr("Jane Doe"),
		EmergencyContactPhone: strPtr("555-0100"),
	})
	assert.NoError(t, err)
	assert.False(t, profile.ProfileCompleted)

	profile, err = uc.Update("t1", UpdateProfileInput{
		EmploymentStatus:       strPtr("employed"),
		PreferredPaymentMethod: strPtr("bank"),
	})
	assert.NoError(t, err)
	assert.True(t, profile.ProfileCompleted)

	// Clearing a required field drops the flag again
	profile, err = uc.Update("t1", UpdateProfileInput{
		EmergencyContactName: strPtr(""),
	})
	assert.NoError(t, err)
	assert.False(t, profile.ProfileCompleted)
}

func TestUpdate_LeavesUntouchedFieldsAlone(t *testing.T) {
	uc, _ := setupProfileUseCase(t)
	_, err := uc.GetOrCreate("t1")
	assert.NoError(t, err)

	_, err = uc.Update("t1", UpdateProfileInput{
		EmergencyContactName: strPtr("Jane Doe"),
		PreferredAreas:       strPtr("downtown"),
	})
	assert.NoError(t, err)

	profile, err := uc.Update("t1", UpdateProfileInput{
		EmergencyContactPhone: strPtr("555-0100"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.EmergencyContactName)
	assert.Equal(t, "downtown", profile.PreferredAreas)
}

func TestRecomputeCompleteness_Idempotent(t *testing.T) {
	uc, _ := setupProfileUseCase(t)
	_, err := uc.GetOrCreate("t1")
	assert.NoError(t, err)

	_, err = uc.Update("t1", UpdateProfileInput{
		EmergencyContactName:   strPtr("Jane Doe"),
		EmergencyContactPhone:  strPtr("555-0100"),
		EmploymentStatus:       strPtr("employed"),
		PreferredPaymentMethod: strPtr("bank"),
	})
	assert.NoError(t, err)

	first, err := uc.RecomputeCompleteness("t1")
	assert.NoError(t, err)
	second, err := uc.RecomputeCompleteness("t1")
	assert.NoError(t, err)
	assert.Equal(t, first.ProfileCompleted, second.ProfileCompleted)
	assert.True(t, second.ProfileCompleted)
}

func TestRecomputeCompleteness_MissingProfile(t *testing.T) {
	uc, _ := setupProfileUseCase(t)

	_, err := uc.RecomputeCompleteness("nobody")
	assert.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, apperr.Classify(err).Code)
}
