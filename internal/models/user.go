package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a survey participant.
// Aggregate counters are maintained by the survey service on every
// submission/disqualification; the qualification rate itself is always
// derived from attempt history, never stored.
type User struct {
	ID    string `gorm:"primaryKey" json:"id"` // UUID
	Name  string `json:"name"`
	Email string `gorm:"uniqueIndex" json:"email"`
	Role  string `json:"role"` // "user" or "admin"

	// Quality metrics
	FraudFlags            int `json:"fraudFlags"`
	TotalSurveysAttempted int `json:"totalSurveysAttempted"`
	TotalSurveysCompleted int `json:"totalSurveysCompleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that generates a new UUID for the user
// if the ID has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return
}

// DisplayName returns the name used to sign appeal letters:
// name, then email, then a generic fallback.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Survey Participant"
}
