package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus is an open enumeration; unknown statuses are stored as-is.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

type Payment struct {
	ID            string        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      string        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	LeaseID       string        `gorm:"type:uuid;not null;index" json:"lease_id"`
	Lease         *Lease        `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	Amount        float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate       time.Time     `gorm:"not null;index" json:"due_date"`
	PaidDate      *time.Time    `json:"paid_date"`
	PaymentMethod string        `gorm:"type:varchar(30)" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Reference     string        `json:"reference,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
