package survey_test

import (
	"testing"

	"paidvine/backend/internal/models"
	"paidvine/backend/internal/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogSurvey() *models.Survey {
	return &models.Survey{
		ID:               "survey-1",
		Title:            "Shopping Habits Survey",
		Points:           200,
		EstimatedMinutes: 8,
		IsActive:         true,
	}
}

func TestSubmitAttempt_AwardsPointsAndBumpsCounters(t *testing.T) {
	storageMock := new(MockStorage)
	user := &models.User{ID: "user-1", TotalSurveysAttempted: 4, TotalSurveysCompleted: 3}

	storageMock.On("GetSurveyByID", "survey-1").Return(newCatalogSurvey(), nil)
	storageMock.On("GetUserByID", "user-1").Return(user, nil)

	var created *models.SurveyAttempt
	storageMock.On("CreateAttempt", mock.AnythingOfType("*models.SurveyAttempt")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.SurveyAttempt)
			created.ID = "attempt-1"
		}).
		Return(nil)
	storageMock.On("SaveUser", user).Return(nil)
	storageMock.On("SumPointsEarned", "user-1").Return(800, nil)
	storageMock.On("SetLeaderboardScore", "user-1", 800).Return(nil)
	storageMock.On("PublishEvent", mock.AnythingOfType("models.ActivityEvent")).Return(nil)

	svc := survey.NewService(storageMock)
	answers := []models.Answer{{QuestionID: "q1", Answer: "yes"}}
	attemptID, err := svc.SubmitAttempt("survey-1", "user-1", answers, 300)
	require.NoError(t, err)
	assert.Equal(t, "attempt-1", attemptID)

	require.NotNil(t, created)
	assert.Equal(t, models.AttemptCompleted, created.Status)
	assert.Equal(t, 200, created.PointsEarned)
	assert.Equal(t, 300, created.TimeSpentSeconds)
	assert.NotNil(t, created.CompletedAt)
	assert.Nil(t, created.DisqualifiedAt)
	assert.Equal(t, 1, created.AnswerCount())

	assert.Equal(t, 5, user.TotalSurveysAttempted)
	assert.Equal(t, 4, user.TotalSurveysCompleted)
	storageMock.AssertExpectations(t)
}

func TestRecordDisqualification_NoPoints(t *testing.T) {
	storageMock := new(MockStorage)
	user := &models.User{ID: "user-1", TotalSurveysAttempted: 4, TotalSurveysCompleted: 3}

	storageMock.On("GetSurveyByID", "survey-1").Return(newCatalogSurvey(), nil)
	storageMock.On("GetUserByID", "user-1").Return(user, nil)

	var created *models.SurveyAttempt
	storageMock.On("CreateAttempt", mock.AnythingOfType("*models.SurveyAttempt")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.SurveyAttempt)
		}).
		Return(nil)
	storageMock.On("SaveUser", user).Return(nil)
	storageMock.On("PublishEvent", mock.AnythingOfType("models.ActivityEvent")).Return(nil)

	svc := survey.NewService(storageMock)
	_, err := svc.RecordDisqualification("survey-1", "user-1", nil, 22)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, models.AttemptDisqualified, created.Status)
	assert.Equal(t, 0, created.PointsEarned)
	assert.NotNil(t, created.DisqualifiedAt)
	assert.Nil(t, created.CompletedAt)

	// Only the attempted counter moves, and the leaderboard is untouched.
	assert.Equal(t, 5, user.TotalSurveysAttempted)
	assert.Equal(t, 3, user.TotalSurveysCompleted)
	storageMock.AssertNotCalled(t, "SetLeaderboardScore", mock.Anything, mock.Anything)
}

func TestSubmitAttempt_SurveyMissing(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetSurveyByID", "gone").Return(nil, nil)

	svc := survey.NewService(storageMock)
	_, err := svc.SubmitAttempt("gone", "user-1", nil, 60)
	assert.ErrorIs(t, err, survey.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetSurveyByID", "survey-1").Return(newCatalogSurvey(), nil)
	storageMock.On("GetSurveyByID", "gone").Return(nil, nil)

	svc := survey.NewService(storageMock)
	got, err := svc.GetByID("survey-1")
	require.NoError(t, err)
	assert.Equal(t, "Shopping Habits Survey", got.Title)

	_, err = svc.GetByID("gone")
	assert.ErrorIs(t, err, survey.ErrNotFound)
}

func TestGetStats(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("ListAttemptsForUser", "user-1").Return([]models.SurveyAttempt{
		{Status: models.AttemptCompleted, PointsEarned: 200},
		{Status: models.AttemptCompleted, PointsEarned: 150},
		{Status: models.AttemptDisqualified},
		{Status: models.AttemptPending, PointsEarned: 400},
	}, nil)

	svc := survey.NewService(storageMock)
	stats, err := svc.GetStats("user-1")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 350, stats.TotalPoints)
}
