package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt statuses.
const (
	AttemptCompleted    = "completed"
	AttemptPending      = "pending"
	AttemptRejected     = "rejected"
	AttemptDisqualified = "disqualified"
)

// Answer is one question/answer pair recorded during an attempt.
// The answer is kept as a string; rating answers are stored in decimal form.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// SurveyAttempt is one user's interaction with one catalog survey.
// Immutable after creation except for appeal linkage.
type SurveyAttempt struct {
	ID       string `gorm:"primaryKey" json:"id"` // UUID
	UserID   string `gorm:"index;not null" json:"userId"`
	SurveyID string `gorm:"index;not null" json:"surveyId"`

	// Title and PointsEarned are denormalized from the catalog row at
	// creation time so history survives catalog edits.
	Title        string `json:"title"`
	PointsEarned int    `json:"pointsEarned"`

	Status           string     `gorm:"index;not null" json:"status"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	DisqualifiedAt   *time.Time `json:"disqualifiedAt,omitempty"`
	TimeSpentSeconds int        `json:"timeSpentSeconds"`

	Answers datatypes.JSONType[[]Answer] `json:"answers"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *SurveyAttempt) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// AnswerCount returns the number of recorded answers.
func (a *SurveyAttempt) AnswerCount() int {
	return len(a.Answers.Data())
}
