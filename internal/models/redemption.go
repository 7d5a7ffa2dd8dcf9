package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Redemption statuses.
const (
	RedemptionPending    = "pending"
	RedemptionProcessing = "processing"
	RedemptionCompleted  = "completed"
	RedemptionRejected   = "rejected"
)

// Redemption is a user request to cash out earned points.
type Redemption struct {
	ID     string `gorm:"primaryKey" json:"id"` // UUID
	UserID string `gorm:"index;not null" json:"userId"`

	Amount         float64 `json:"amount"` // payout value in account currency
	PointsUsed     int     `json:"pointsUsed"`
	Method         string  `json:"method"` // e.g. "paypal", "gift_card"
	AccountDetails string  `json:"accountDetails"`

	Status      string     `gorm:"index" json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

func (r *Redemption) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
