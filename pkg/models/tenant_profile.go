package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantProfile struct {
	ID       string `gorm:"type:uuid;primary_key" json:"id"`
	TenantID string `gorm:"type:uuid;uniqueIndex;not null" json:"tenant_id"`

	// Emergency contact
	EmergencyContactName     string `json:"emergency_contact_name"`
	EmergencyContactPhone    string `json:"emergency_contact_phone"`
	EmergencyContactRelation string `json:"emergency_contact_relation"`

	// Rental preferences
	MaxRent        float64 `gorm:"type:decimal(10,2)" json:"max_rent"`
	PreferredAreas string  `json:"preferred_areas"`
	PetsAllowed    bool    `json:"pets_allowed"`
	Smoker         bool    `json:"smoker"`

	// Rental history
	EmploymentStatus string     `gorm:"type:varchar(30)" json:"employment_status"`
	MonthlyIncome    float64    `gorm:"type:decimal(10,2)" json:"monthly_income"`
	CurrentProperty  string     `json:"current_property"`
	MoveInDate       *time.Time `json:"move_in_date,omitempty"`
	PreviousAddress  string     `json:"previous_address"`

	// Payment preferences
	PreferredPaymentMethod string `gorm:"type:varchar(30)" json:"preferred_payment_method"`
	AutoPayEnabled         bool   `json:"auto_pay_enabled"`

	// Derived from the four required fields; never set by callers.
	ProfileCompleted bool `gorm:"default:false" json:"profile_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *TenantProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ComputeCompleted reports whether all four required fields are present.
func (p *TenantProfile) ComputeCompleted() bool {
	return p.EmergencyContactName != "" &&
		p.EmergencyContactPhone != "" &&
		p.EmploymentStatus != "" &&
		p.PreferredPaymentMethod != ""
}
