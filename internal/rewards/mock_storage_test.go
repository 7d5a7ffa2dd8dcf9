package rewards_test

import (
	"paidvine/backend/internal/models"
	"paidvine/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetSurveyByID(id string) (*models.Survey, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockStorage) ListActiveSurveys() ([]models.Survey, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Survey), args.Error(1)
}

func (m *MockStorage) GetAttemptByID(id string) (*models.SurveyAttempt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SurveyAttempt), args.Error(1)
}

func (m *MockStorage) ListAttemptsForUser(userID string) ([]models.SurveyAttempt, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SurveyAttempt), args.Error(1)
}

func (m *MockStorage) CreateAttempt(attempt *models.SurveyAttempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockStorage) FindAppealForAttempt(userID, attemptID string) (*models.AppealTicket, error) {
	args := m.Called(userID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppealTicket), args.Error(1)
}

func (m *MockStorage) CreateAppeal(ticket *models.AppealTicket) error {
	args := m.Called(ticket)
	return args.Error(0)
}

func (m *MockStorage) ListAppealsForUser(userID string) ([]models.AppealTicket, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppealTicket), args.Error(1)
}

func (m *MockStorage) GetAppealByID(id string) (*models.AppealTicket, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppealTicket), args.Error(1)
}

func (m *MockStorage) CreateRedemption(redemption *models.Redemption) error {
	args := m.Called(redemption)
	return args.Error(0)
}

func (m *MockStorage) ListRedemptionsForUser(userID string) ([]models.Redemption, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Redemption), args.Error(1)
}

func (m *MockStorage) SumPointsRedeemed(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) SumPointsEarned(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) CompletedPointsByUser() ([]storage.MemberScore, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.MemberScore), args.Error(1)
}

func (m *MockStorage) SetLeaderboardScore(userID string, points int) error {
	args := m.Called(userID, points)
	return args.Error(0)
}

func (m *MockStorage) LeaderboardTop(limit int) ([]storage.MemberScore, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.MemberScore), args.Error(1)
}

func (m *MockStorage) LeaderboardRank(userID string) (int64, int, bool, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Int(1), args.Bool(2), args.Error(3)
}

func (m *MockStorage) LeaderboardSize() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) PublishEvent(event models.ActivityEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
