package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxReturnStatus string

const (
	TaxReturnDraft     TaxReturnStatus = "draft"
	TaxReturnSubmitted TaxReturnStatus = "submitted"
	TaxReturnAccepted  TaxReturnStatus = "accepted"
	TaxReturnRejected  TaxReturnStatus = "rejected"
)

type TaxReturn struct {
	ID            string          `gorm:"type:uuid;primary_key" json:"id"`
	LandlordID    string          `gorm:"type:uuid;not null;index" json:"landlord_id"`
	TaxYear       int             `gorm:"not null" json:"tax_year"`
	Status        TaxReturnStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	TotalIncome   float64         `gorm:"type:decimal(12,2)" json:"total_income"`
	TotalExpenses float64         `gorm:"type:decimal(12,2)" json:"total_expenses"`
	Notes         string          `json:"notes,omitempty"`
	DocumentURL   string          `json:"document_url,omitempty"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (t *TaxReturn) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// Editable reports whether the return can still be modified by the landlord.
func (t *TaxReturn) Editable() bool {
	return t.Status == TaxReturnDraft || t.Status == TaxReturnRejected
}
