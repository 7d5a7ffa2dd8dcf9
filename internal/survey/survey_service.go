// Package survey handles the survey-taking flows: catalog listing,
// attempt submission, disqualification recording, history and stats.
package survey

import (
	"errors"
	"log"
	"time"

	"paidvine/backend/internal/models"
	"paidvine/backend/internal/storage"

	"gorm.io/datatypes"
)

// ErrNotFound is returned when the referenced catalog survey does not exist.
var ErrNotFound = errors.New("survey not found")

// Stats summarizes a user's attempt history.
type Stats struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	TotalPoints int `json:"totalPoints"`
}

// Service handles the business logic for survey attempts.
type Service struct {
	Storage storage.Storage

	now func() time.Time
}

// NewService creates a new survey service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s, now: time.Now}
}

// ListAvailable returns the active catalog.
func (s *Service) ListAvailable() ([]models.Survey, error) {
	return s.Storage.ListActiveSurveys()
}

// GetByID returns one catalog survey.
func (s *Service) GetByID(surveyID string) (*models.Survey, error) {
	survey, err := s.Storage.GetSurveyByID(surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrNotFound
	}
	return survey, nil
}

// History returns the caller's attempts, newest first.
func (s *Service) History(userID string) ([]models.SurveyAttempt, error) {
	return s.Storage.ListAttemptsForUser(userID)
}

// GetStats aggregates the caller's attempt history.
func (s *Service) GetStats(userID string) (*Stats, error) {
	attempts, err := s.Storage.ListAttemptsForUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: len(attempts)}
	for _, a := range attempts {
		if a.Status == models.AttemptCompleted {
			stats.Completed++
			stats.TotalPoints += a.PointsEarned
		}
	}
	return stats, nil
}

// SubmitAttempt records a completed attempt, awards the survey's points,
// bumps the user's counters and refreshes their leaderboard score.
func (s *Service) SubmitAttempt(surveyID, userID string, answers []models.Answer, timeSpentSeconds int) (string, error) {
	survey, user, err := s.loadSurveyAndUser(surveyID, userID)
	if err != nil {
		return "", err
	}

	now := s.now()
	attempt := &models.SurveyAttempt{
		UserID:           userID,
		SurveyID:         surveyID,
		Title:            survey.Title,
		PointsEarned:     survey.Points,
		Status:           models.AttemptCompleted,
		CompletedAt:      &now,
		TimeSpentSeconds: timeSpentSeconds,
		Answers:          datatypes.NewJSONType(answers),
	}
	if err := s.Storage.CreateAttempt(attempt); err != nil {
		return "", err
	}

	user.TotalSurveysAttempted++
	user.TotalSurveysCompleted++
	if err := s.Storage.SaveUser(user); err != nil {
		return "", err
	}

	s.refreshLeaderboard(userID)
	s.publish(models.ActivityEvent{
		UserID:      userID,
		Type:        models.EventSurveyCompleted,
		Title:       "Points Earned",
		Description: "Completed survey: " + survey.Title,
		Points:      survey.Points,
		Timestamp:   now.UnixMilli(),
	})

	return attempt.ID, nil
}

// RecordDisqualification records a terminated attempt. No points are
// awarded and only the attempted counter moves.
func (s *Service) RecordDisqualification(surveyID, userID string, answers []models.Answer, timeSpentSeconds int) (string, error) {
	survey, user, err := s.loadSurveyAndUser(surveyID, userID)
	if err != nil {
		return "", err
	}

	now := s.now()
	attempt := &models.SurveyAttempt{
		UserID:           userID,
		SurveyID:         surveyID,
		Title:            survey.Title,
		PointsEarned:     0,
		Status:           models.AttemptDisqualified,
		DisqualifiedAt:   &now,
		TimeSpentSeconds: timeSpentSeconds,
		Answers:          datatypes.NewJSONType(answers),
	}
	if err := s.Storage.CreateAttempt(attempt); err != nil {
		return "", err
	}

	user.TotalSurveysAttempted++
	if err := s.Storage.SaveUser(user); err != nil {
		return "", err
	}

	s.publish(models.ActivityEvent{
		UserID:      userID,
		Type:        models.EventSurveyDisqualified,
		Title:       "Survey Disqualified",
		Description: "Disqualified from survey: " + survey.Title,
		Timestamp:   now.UnixMilli(),
	})

	return attempt.ID, nil
}

func (s *Service) loadSurveyAndUser(surveyID, userID string) (*models.Survey, *models.User, error) {
	survey, err := s.Storage.GetSurveyByID(surveyID)
	if err != nil {
		return nil, nil, err
	}
	if survey == nil {
		return nil, nil, ErrNotFound
	}

	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}
	return survey, user, nil
}

// refreshLeaderboard recomputes the user's completed-point total and
// writes it to the Redis sorted set. Best effort.
func (s *Service) refreshLeaderboard(userID string) {
	total, err := s.Storage.SumPointsEarned(userID)
	if err != nil {
		log.Printf("WARNING: Could not sum points for user %s: %v", userID, err)
		return
	}
	if err := s.Storage.SetLeaderboardScore(userID, total); err != nil {
		log.Printf("WARNING: Could not update leaderboard for user %s: %v", userID, err)
	}
}

func (s *Service) publish(event models.ActivityEvent) {
	if err := s.Storage.PublishEvent(event); err != nil {
		log.Printf("WARNING: Could not publish %s event for user %s: %v", event.Type, event.UserID, err)
	}
}
