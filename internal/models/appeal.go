package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Appeal ticket statuses.
const (
	AppealOpen        = "Open"
	AppealUnderReview = "Under Review"
	AppealApproved    = "Approved"
	AppealDenied      = "Denied"
	AppealClosed      = "Closed"
)

// AppealTicket records one disqualification appeal. At most one ticket may
// exist per (user, attempt) pair; the composite unique index enforces this
// at the database so two concurrent submissions cannot both land.
type AppealTicket struct {
	ID        string `gorm:"primaryKey" json:"id"` // UUID
	UserID    string `gorm:"index;uniqueIndex:idx_appeal_user_attempt;not null" json:"userId"`
	UserEmail string `json:"userEmail"`

	SurveyID        string `gorm:"index" json:"surveyId"`
	SurveyTitle     string `json:"surveyTitle"`
	SurveyAttemptID string `gorm:"uniqueIndex:idx_appeal_user_attempt;not null" json:"surveyAttemptId"`

	TicketType string `json:"ticketType"`
	Status     string `gorm:"index" json:"status"`
	Priority   string `json:"priority"`

	// AI analysis snapshot taken at submission time.
	AIReasoning  string `gorm:"type:text" json:"aiReasoning"`
	AIConfidence int    `json:"aiConfidence"` // 0-100

	AppealMessage string `gorm:"type:text" json:"appealMessage"`

	// Copied through from the attempt.
	DisqualificationTime time.Time `json:"disqualificationTime"`
	TimeSpentBeforeDQ    int       `json:"timeSpentBeforeDQ"`

	// Resolution fields, set later by the reviewer flow.
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
	ResolutionMessage string     `json:"resolutionMessage,omitempty"`
	PointsAwarded     int        `json:"pointsAwarded,omitempty"`

	Tags pq.StringArray `gorm:"type:text[]" json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *AppealTicket) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}
