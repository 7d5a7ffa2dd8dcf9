// Package appeal provides the core logic for disqualification appeals:
// scoring whether an appeal should be offered, composing the appeal letter,
// and recording the resulting ticket.
package appeal

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"paidvine/backend/internal/analysis"
	"paidvine/backend/internal/config"
	"paidvine/backend/internal/models"
	"paidvine/backend/internal/storage"
)

var (
	// ErrNotFound covers a missing attempt, a missing survey, a missing
	// ticket, or one owned by a different user. Callers get no hint which.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateAppeal is returned when a ticket already exists for the
	// (user, attempt) pair.
	ErrDuplicateAppeal = errors.New("an appeal for this survey has already been submitted")
)

// Notifier receives new-ticket notifications. Implementations must not
// block; a nil Notifier disables notifications.
type Notifier interface {
	NotifyNewAppeal(ticket *models.AppealTicket)
}

// AnalysisResult is the analyzer's verdict for one disqualified attempt.
type AnalysisResult struct {
	ShouldAppeal          bool             `json:"shouldAppeal"`
	IsUncertain           bool             `json:"isUncertain"`
	ConfidenceScore       int              `json:"confidenceScore"`
	Reasoning             string           `json:"reasoning"`
	Factors               analysis.Signals `json:"factors"`
	UserQualificationRate float64          `json:"userQualificationRate"`
	TimeSpent             int              `json:"timeSpent"`
	SurveyTitle           string           `json:"surveyTitle"`
}

// Service handles the business logic for appeals.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier

	now func() time.Time
}

// NewService creates a new appeal service. notifier may be nil.
func NewService(s storage.Storage, notifier Notifier) *Service {
	return &Service{
		Storage:  s,
		Notifier: notifier,
		now:      time.Now,
	}
}

// loadContext resolves the attempt, its survey, the owning user and the
// rules input shared by Analyze, ComposeMessage and Submit.
func (s *Service) loadContext(attemptID, userID string) (*models.User, *models.SurveyAttempt, *models.Survey, analysis.Input, error) {
	var in analysis.Input

	attempt, err := s.Storage.GetAttemptByID(attemptID)
	if err != nil {
		return nil, nil, nil, in, err
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, nil, nil, in, ErrNotFound
	}

	survey, err := s.Storage.GetSurveyByID(attempt.SurveyID)
	if err != nil {
		return nil, nil, nil, in, err
	}
	if survey == nil {
		return nil, nil, nil, in, ErrNotFound
	}

	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return nil, nil, nil, in, err
	}
	if user == nil {
		return nil, nil, nil, in, ErrNotFound
	}

	history, err := s.Storage.ListAttemptsForUser(userID)
	if err != nil {
		return nil, nil, nil, in, err
	}
	completed := 0
	for _, a := range history {
		if a.Status == models.AttemptCompleted {
			completed++
		}
	}

	in = analysis.Input{
		TimeSpentSeconds:    attempt.TimeSpentSeconds,
		EstimatedMinutes:    survey.EstimatedMinutes,
		QualificationRate:   analysis.QualificationRate(completed, len(history)),
		FraudFlags:          user.FraudFlags,
		CommonlyIncorrectDQ: survey.CommonlyIncorrectDQ,
		AnswerCount:         attempt.AnswerCount(),
		SurveyTitle:         survey.Title,
	}
	return user, attempt, survey, in, nil
}

// Analyze scores a disqualified attempt and decides whether an appeal
// should be offered. Read-only; safe to call repeatedly.
func (s *Service) Analyze(attemptID, userID string) (*AnalysisResult, error) {
	_, _, survey, in, err := s.loadContext(attemptID, userID)
	if err != nil {
		return nil, err
	}

	signals := analysis.Compute(in)
	score := analysis.Score(signals)

	return &AnalysisResult{
		ShouldAppeal:          analysis.ShouldAppeal(score),
		IsUncertain:           analysis.IsUncertain(score),
		ConfidenceScore:       score,
		Reasoning:             strings.Join(analysis.Reasoning(signals, in), " "),
		Factors:               signals,
		UserQualificationRate: in.QualificationRate,
		TimeSpent:             in.TimeSpentSeconds,
		SurveyTitle:           survey.Title,
	}, nil
}

// ComposeMessage renders the first-person appeal letter for an attempt.
// It shares the signal computation with Analyze, so the letter always
// lists exactly the reasoning the analyzer scored.
func (s *Service) ComposeMessage(attemptID, userID string) (string, error) {
	user, attempt, survey, in, err := s.loadContext(attemptID, userID)
	if err != nil {
		return "", err
	}

	signals := analysis.Compute(in)
	reasoning := strings.Join(analysis.Reasoning(signals, in), " ")

	disqualifiedAt := s.now()
	if attempt.DisqualifiedAt != nil {
		disqualifiedAt = *attempt.DisqualifiedAt
	}

	message := fmt.Sprintf(`Hello,

I would like to request a review of a disqualification I received.

Survey Information:
- Survey Title: %s
- Date/Time of Attempt: %s
- Time Spent Before Disqualification: %d minutes %d seconds

Why This Disqualification May Be Incorrect:
%s

User Profile Match:
- I have a qualification rate of %.1f%%, demonstrating that I typically meet survey requirements.
- My account has no history of fraudulent or low-quality responses.
- I completed the pre-screening questions honestly and thoroughly.

I kindly request a reevaluation of this disqualification. I believe there may have been a technical issue or error in the screening process.

Thank you for your time and cooperation.

Best regards,
%s`,
		survey.Title,
		disqualifiedAt.Format("January 2, 2006 3:04 PM"),
		attempt.TimeSpentSeconds/60,
		attempt.TimeSpentSeconds%60,
		reasoning,
		in.QualificationRate,
		user.DisplayName(),
	)

	return message, nil
}

// Submit files the appeal ticket for an attempt. At most one ticket may
// exist per (user, attempt); the lookup catches the common duplicate and
// the storage unique constraint closes the race between concurrent calls.
func (s *Service) Submit(attemptID, appealMessage, aiReasoning string, aiConfidence int, userID string) (string, error) {
	user, attempt, survey, _, err := s.loadContext(attemptID, userID)
	if err != nil {
		return "", err
	}

	existing, err := s.Storage.FindAppealForAttempt(userID, attemptID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrDuplicateAppeal
	}

	disqualifiedAt := s.now()
	if attempt.DisqualifiedAt != nil {
		disqualifiedAt = *attempt.DisqualifiedAt
	}

	email := user.Email
	if email == "" {
		email = "no-email@provided.com"
	}

	ticket := &models.AppealTicket{
		UserID:               userID,
		UserEmail:            email,
		SurveyID:             attempt.SurveyID,
		SurveyTitle:          survey.Title,
		SurveyAttemptID:      attemptID,
		TicketType:           config.AppealTicketType,
		Status:               config.AppealDefaultStatus,
		Priority:             config.AppealDefaultPriority,
		AIReasoning:          aiReasoning,
		AIConfidence:         aiConfidence,
		AppealMessage:        appealMessage,
		DisqualificationTime: disqualifiedAt,
		TimeSpentBeforeDQ:    attempt.TimeSpentSeconds,
		Tags:                 config.AppealTags,
	}

	if err := s.Storage.CreateAppeal(ticket); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return "", ErrDuplicateAppeal
		}
		return "", err
	}

	if err := s.Storage.PublishEvent(models.ActivityEvent{
		UserID:      userID,
		Type:        models.EventAppealSubmitted,
		Title:       "Appeal Submitted",
		Description: "Appeal filed for survey: " + survey.Title,
		Timestamp:   s.now().UnixMilli(),
	}); err != nil {
		log.Printf("WARNING: Could not publish appeal event for user %s: %v", userID, err)
	}

	if s.Notifier != nil {
		s.Notifier.NotifyNewAppeal(ticket)
	}

	return ticket.ID, nil
}

// ListForUser returns the caller's tickets, most recent first.
func (s *Service) ListForUser(userID string) ([]models.AppealTicket, error) {
	return s.Storage.ListAppealsForUser(userID)
}

// GetByID returns one ticket after an ownership check.
func (s *Service) GetByID(appealID, userID string) (*models.AppealTicket, error) {
	ticket, err := s.Storage.GetAppealByID(appealID)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.UserID != userID {
		return nil, ErrNotFound
	}
	return ticket, nil
}
