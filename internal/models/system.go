package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemType is the closed set of supported system kinds.
type SystemType string

const (
	SystemTypeSalesforce SystemType = "SALESFORCE"
	SystemTypeZendesk    SystemType = "ZENDESK"
)

// ParseSystemType validates a raw value at the boundary, before it can
// reach storage.
func ParseSystemType(raw string) (SystemType, error) {
	switch SystemType(raw) {
	case SystemTypeSalesforce, SystemTypeZendesk:
		return SystemType(raw), nil
	default:
		return "", fmt.Errorf("invalid system type %q, must be one of ['SALESFORCE', 'ZENDESK']", raw)
	}
}

// System is an external system registered for synchronization.
type System struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null;index" json:"name"`
	Type      SystemType `gorm:"size:50;not null" json:"type"`
	CreatedAt time.Time  `gorm:"type:timestamptz;not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"type:timestamptz;not null" json:"updated_at"`
	UpdatedBy *string    `gorm:"size:255" json:"updated_by"`
}

// BeforeCreate assigns the id before the row hits the database so the
// caller always gets it back without a second round trip.
func (s *System) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
