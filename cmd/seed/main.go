package main

import (
	"fmt"
	"time"

	"rentdesk/pkg/config"
	"rentdesk/pkg/database"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo landlord with two tenants, a property each and a few
// payments, so the API has something to show right after a fresh migrate.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	landlord, err := upsertUser(db, log, "landlord@test.com", "Laura Landlord", models.RoleLandlord)
	if err != nil {
		return err
	}

	tenantNames := []struct {
		email string
		name  string
	}{
		{"tenant1@test.com", "Tom Tenant"},
		{"tenant2@test.com", "Tina Tenant"},
	}

	for i, t := range tenantNames {
		tenant, err := upsertUser(db, log, t.email, t.name, models.RoleTenant)
		if err != nil {
			return err
		}

		property := &models.Property{
			LandlordID: landlord.ID,
			Name:       fmt.Sprintf("Maple Court %d", i+1),
			Address:    fmt.Sprintf("%d Maple Court", 10+i),
			City:       "Springfield",
		}
		if err := db.Create(property).Error; err != nil {
			return fmt.Errorf("failed to create property: %w", err)
		}

		lease := &models.Lease{
			TenantID:    tenant.ID,
			PropertyID:  property.ID,
			StartDate:   time.Now().AddDate(-1, 0, 0),
			MonthlyRent: 950 + float64(i)*150,
			Status:      models.LeaseActive,
		}
		if err := db.Create(lease).Error; err != nil {
			return fmt.Errorf("failed to create lease: %w", err)
		}

		// One settled payment, one outstanding
		paid := time.Now().AddDate(0, -1, 0)
		payments := []*models.Payment{
			{
				TenantID:      tenant.ID,
				LeaseID:       lease.ID,
				Amount:        lease.MonthlyRent,
				DueDate:       time.Now().AddDate(0, -1, 0),
				PaidDate:      &paid,
				PaymentMethod: "bank",
				Status:        models.PaymentPaid,
			},
			{
				TenantID:      tenant.ID,
				LeaseID:       lease.ID,
				Amount:        lease.MonthlyRent,
				DueDate:       time.Now().AddDate(0, 0, 7),
				PaymentMethod: "bank",
				Status:        models.PaymentPending,
			},
		}
		for _, payment := range payments {
			if err := db.Create(payment).Error; err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}
		}

		notification := &models.Notification{
			UserID:   tenant.ID,
			Type:     "system",
			Title:    "Welcome",
			Message:  "Welcome to your tenant portal",
			Priority: models.PriorityNormal,
		}
		if err := db.Create(notification).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		log.Info("Seeded tenant %s with lease on %s", tenant.Email, property.Name)
	}

	return nil
}

func upsertUser(db *gorm.DB, log *logger.Logger, email, name string, role models.UserRole) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Info("User %s already exists, skipping", email)
		return &existing, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}

	log.Info("Created user: %s (%s)", user.Email, user.Role)
	return user, nil
}
