package persistent

import (
	"testing"
	"time"

	"rentdesk/pkg/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Property{}, &models.Lease{}, &models.Payment{}))
	return db
}

func seedLease(t *testing.T, db *gorm.DB, tenantID string) *models.Lease {
	property := &models.Property{
		LandlordID: "landlord-1",
		Name:       "Oak House",
		Address:    "12 Oak Street",
	}
	assert.NoError(t, db.Create(property).Error)

	lease := &models.Lease{
		TenantID:    tenantID,
		PropertyID:  property.ID,
		StartDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 500,
		Status:      models.LeaseActive,
	}
	assert.NoError(t, db.Create(lease).Error)
	return lease
}

func TestCreate_ReturnsJoinedLeaseAndProperty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	lease := seedLease(t, db, "t1")

	payment := &models.Payment{
		TenantID:      "t1",
		LeaseID:       lease.ID,
		Amount:        500,
		DueDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "bank",
		Status:        models.PaymentPending,
	}
	assert.NoError(t, repo.Create(payment))

	assert.NotEmpty(t, payment.ID)
	assert.NotNil(t, payment.Lease)
	assert.NotNil(t, payment.Lease.Property)
	assert.Equal(t, "Oak House", payment.Lease.Property.Name)
	assert.Nil(t, payment.PaidDate)
}

func TestListByTenant_OrderedByDueDateDesc(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	lease := seedLease(t, db, "t1")

	for _, month := range []time.Month{time.January, time.March, time.February} {
		payment := &models.Payment{
			TenantID:      "t1",
			LeaseID:       lease.ID,
			Amount:        500,
			DueDate:       time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "bank",
			Status:        models.PaymentPending,
		}
		assert.NoError(t, repo.Create(payment))
	}

	payments, total, err := repo.ListByTenant("t1", 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, payments, 3)
	assert.Equal(t, time.March, payments[0].DueDate.Month())
	assert.Equal(t, time.February, payments[1].DueDate.Month())
	assert.Equal(t, time.January, payments[2].DueDate.Month())
}

func TestListByTenant_ScopedToTenant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	leaseA := seedLease(t, db, "t1")
	leaseB := seedLease(t, db, "t2")

	assert.NoError(t, repo.Create(&models.Payment{
		TenantID: "t1", LeaseID: leaseA.ID, Amount: 500,
		DueDate: time.Now(), PaymentMethod: "bank", Status: models.PaymentPending,
	}))
	assert.NoError(t, repo.Create(&models.Payment{
		TenantID: "t2", LeaseID: leaseB.ID, Amount: 700,
		DueDate: time.Now(), PaymentMethod: "card", Status: models.PaymentPending,
	}))

	payments, total, err := repo.ListByTenant("t1", 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "t1", payments[0].TenantID)
}

func TestStatsByTenant_GroupedCountAndSum(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	lease := seedLease(t, db, "t1")

	now := time.Now()
	rows := []struct {
		amount float64
		status models.PaymentStatus
		paid   bool
	}{
		{500, models.PaymentPaid, true},
		{500, models.PaymentPaid, true},
		{600, models.PaymentPending, false},
	}
	for _, row := range rows {
		payment := &models.Payment{
			TenantID: "t1", LeaseID: lease.ID, Amount: row.amount,
			DueDate: now, PaymentMethod: "bank", Status: row.status,
		}
		if row.paid {
			payment.PaidDate = &now
		}
		assert.NoError(t, repo.Create(payment))
	}

	stats, err := repo.StatsByTenant("t1")
	assert.NoError(t, err)
	assert.Len(t, stats, 2)

	byStatus := map[models.PaymentStatus]PaymentStat{}
	for _, s := range stats {
		byStatus[s.Status] = s
	}
	assert.Equal(t, int64(2), byStatus[models.PaymentPaid].Count)
	assert.Equal(t, float64(1000), byStatus[models.PaymentPaid].Total)
	assert.Equal(t, int64(1), byStatus[models.PaymentPending].Count)
	assert.Equal(t, float64(600), byStatus[models.PaymentPending].Total)
}

func TestGetLease_MissingIsRecordNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)

	_, err := repo.GetLease("no-such-lease")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
