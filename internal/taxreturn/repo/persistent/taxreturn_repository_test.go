package persistent

import (
	"errors"
	"testing"
	"time"

	"rentdesk/pkg/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaxReturnRepo(t *testing.T) TaxReturnRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.TaxReturn{}))
	return NewTaxReturnRepository(db)
}

func TestListByLandlord_NewestFirst(t *testing.T) {
	repo := setupTaxReturnRepo(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, year := range []int{2021, 2022, 2023} {
		assert.NoError(t, repo.Create(&models.TaxReturn{
			LandlordID: "landlord-1",
			TaxYear:    year,
			Status:     models.TaxReturnDraft,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	taxReturns, total, err := repo.ListByLandlord("landlord-1", 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, taxReturns, 3)
	assert.Equal(t, 2023, taxReturns[0].TaxYear)
	assert.Equal(t, 2021, taxReturns[2].TaxYear)
}

func TestListByLandlord_Scoped(t *testing.T) {
	repo := setupTaxReturnRepo(t)

	assert.NoError(t, repo.Create(&models.TaxReturn{LandlordID: "landlord-1", TaxYear: 2023}))
	assert.NoError(t, repo.Create(&models.TaxReturn{LandlordID: "landlord-2", TaxYear: 2023}))

	taxReturns, total, err := repo.ListByLandlord("landlord-1", 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "landlord-1", taxReturns[0].LandlordID)
}

func TestGetByLandlord_ForeignOwnerIsNotFound(t *testing.T) {
	repo := setupTaxReturnRepo(t)

	taxReturn := &models.TaxReturn{LandlordID: "landlord-1", TaxYear: 2023}
	assert.NoError(t, repo.Create(taxReturn))

	_, err := repo.GetByLandlord("landlord-2", taxReturn.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	found, err := repo.GetByLandlord("landlord-1", taxReturn.ID)
	assert.NoError(t, err)
	assert.Equal(t, taxReturn.ID, found.ID)
}

func TestExistsForYear(t *testing.T) {
	repo := setupTaxReturnRepo(t)

	assert.NoError(t, repo.Create(&models.TaxReturn{LandlordID: "landlord-1", TaxYear: 2023}))

	exists, err := repo.ExistsForYear("landlord-1", 2023)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForYear("landlord-1", 2022)
	assert.NoError(t, err)
	assert.False(t, exists)

	// Another landlord's return for the same year does not count
	exists, err = repo.ExistsForYear("landlord-2", 2023)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete_Scoped(t *testing.T) {
	repo := setupTaxReturnRepo(t)

	taxReturn := &models.TaxReturn{LandlordID: "landlord-1", TaxYear: 2023}
	assert.NoError(t, repo.Create(taxReturn))

	err := repo.Delete("landlord-2", taxReturn.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.NoError(t, repo.Delete("landlord-1", taxReturn.ID))

	_, err = repo.GetByLandlord("landlord-1", taxReturn.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
