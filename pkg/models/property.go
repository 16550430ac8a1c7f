package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	LandlordID string    `gorm:"type:uuid;not null;index" json:"landlord_id"`
	Name       string    `gorm:"not null" json:"name"`
	Address    string    `gorm:"not null" json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	ZipCode    string    `json:"zip_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LeaseStatus string

const (
	LeaseActive LeaseStatus = "active"
	LeaseEnded  LeaseStatus = "ended"
)

type Lease struct {
	ID          string      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    string      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PropertyID  string      `gorm:"type:uuid;not null;index" json:"property_id"`
	Property    *Property   `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	StartDate   time.Time   `gorm:"not null" json:"start_date"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	MonthlyRent float64     `gorm:"type:decimal(10,2)" json:"monthly_rent"`
	Status      LeaseStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
