package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Survey is a catalog entry users can attempt. Catalog rows are
// effectively immutable once published; operators only toggle IsActive
// and the CommonlyIncorrectDQ quality flag.
type Survey struct {
	ID               string `gorm:"primaryKey" json:"id"` // UUID
	Title            string `gorm:"not null" json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Points           int    `json:"points"`
	EstimatedMinutes int    `gorm:"not null" json:"estimatedMinutes"`
	IsActive         bool   `gorm:"index" json:"isActive"`

	// CommonlyIncorrectDQ marks surveys with a known high false-disqualification
	// rate. Set by operators, read by the appeal analyzer.
	CommonlyIncorrectDQ bool `json:"commonlyIncorrectDQ"`

	// AverageCompletionSeconds is a rolling quality metric, 0 when unknown.
	AverageCompletionSeconds int `json:"averageCompletionSeconds"`

	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (s *Survey) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
