package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// JSONMap stores loosely structured notification payloads as JSON.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}
}

type Notification struct {
	ID        string               `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string               `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string               `gorm:"type:varchar(50);not null;index" json:"type"`
	Title     string               `gorm:"not null" json:"title"`
	Message   string               `gorm:"not null" json:"message"`
	Link      string               `json:"link,omitempty"`
	Priority  NotificationPriority `gorm:"type:varchar(20);default:'normal'" json:"priority"`
	Data      JSONMap              `gorm:"type:jsonb" json:"data,omitempty"`
	Read      bool                 `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time            `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
