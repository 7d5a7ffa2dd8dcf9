package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"paidvine/backend/internal/config"
	"paidvine/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned by Create methods when a uniqueness
// constraint rejects the row.
var ErrDuplicateKey = errors.New("duplicate key")

// MemberScore is one leaderboard entry as stored in the Redis sorted set.
type MemberScore struct {
	UserID string
	Points int
}

// Storage is the persistence boundary used by the services. Lookup methods
// return (nil, nil) when the row does not exist; callers translate that
// into their own not-found errors.
type Storage interface {
	// Users
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	SaveUser(user *models.User) error

	// Survey catalog
	GetSurveyByID(id string) (*models.Survey, error)
	ListActiveSurveys() ([]models.Survey, error)

	// Attempts
	GetAttemptByID(id string) (*models.SurveyAttempt, error)
	ListAttemptsForUser(userID string) ([]models.SurveyAttempt, error)
	CreateAttempt(attempt *models.SurveyAttempt) error

	// Appeal tickets
	FindAppealForAttempt(userID, attemptID string) (*models.AppealTicket, error)
	CreateAppeal(ticket *models.AppealTicket) error
	ListAppealsForUser(userID string) ([]models.AppealTicket, error)
	GetAppealByID(id string) (*models.AppealTicket, error)

	// Redemptions
	CreateRedemption(redemption *models.Redemption) error
	ListRedemptionsForUser(userID string) ([]models.Redemption, error)
	SumPointsRedeemed(userID string) (int, error)

	// Aggregates
	SumPointsEarned(userID string) (int, error)
	CompletedPointsByUser() ([]MemberScore, error)

	// Leaderboard cache (Redis sorted set)
	SetLeaderboardScore(userID string, points int) error
	LeaderboardTop(limit int) ([]MemberScore, error)
	LeaderboardRank(userID string) (rank int64, points int, found bool, err error)
	LeaderboardSize() (int64, error)

	// Activity feed
	PublishEvent(event models.ActivityEvent) error
}

// Service implements Storage on PostgreSQL (gorm) plus Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// GetUserByID loads a user from PostgreSQL.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads a user by their unique email.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUser upserts a user row.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetSurveyByID(id string) (*models.Survey, error) {
	var survey models.Survey
	err := s.DB.First(&survey, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// ListActiveSurveys returns the live catalog, newest first.
func (s *Service) ListActiveSurveys() ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.DB.Where("is_active = ?", true).
		Order("created_at desc").
		Find(&surveys).Error
	if err != nil {
		log.Printf("ERROR: Failed to list active surveys: %v", err)
		return nil, err
	}
	return surveys, nil
}

func (s *Service) GetAttemptByID(id string) (*models.SurveyAttempt, error) {
	var attempt models.SurveyAttempt
	err := s.DB.First(&attempt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListAttemptsForUser returns the user's full attempt history, newest first.
func (s *Service) ListAttemptsForUser(userID string) ([]models.SurveyAttempt, error) {
	var attempts []models.SurveyAttempt
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&attempts).Error
	if err != nil {
		log.Printf("ERROR: Failed to list attempts for user %s: %v", userID, err)
		return nil, err
	}
	return attempts, nil
}

func (s *Service) CreateAttempt(attempt *models.SurveyAttempt) error {
	if err := s.DB.Create(attempt).Error; err != nil {
		log.Printf("ERROR: Failed to save attempt for survey %s: %v", attempt.SurveyID, err)
		return err
	}
	return nil
}

// FindAppealForAttempt returns the existing appeal ticket for the pair,
// or (nil, nil) when none has been filed.
func (s *Service) FindAppealForAttempt(userID, attemptID string) (*models.AppealTicket, error) {
	var ticket models.AppealTicket
	err := s.DB.Where("user_id = ? AND survey_attempt_id = ?", userID, attemptID).
		First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateAppeal inserts a new ticket. The composite unique index on
// (user_id, survey_attempt_id) makes concurrent double-submission
// impossible; constraint violations surface as ErrDuplicateKey.
func (s *Service) CreateAppeal(ticket *models.AppealTicket) error {
	err := s.DB.Create(ticket).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if err != nil {
		log.Printf("ERROR: Failed to save appeal for attempt %s: %v", ticket.SurveyAttemptID, err)
		return err
	}
	return nil
}

func (s *Service) ListAppealsForUser(userID string) ([]models.AppealTicket, error) {
	var tickets []models.AppealTicket
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&tickets).Error
	if err != nil {
		log.Printf("ERROR: Failed to list appeals for user %s: %v", userID, err)
		return nil, err
	}
	return tickets, nil
}

func (s *Service) GetAppealByID(id string) (*models.AppealTicket, error) {
	var ticket models.AppealTicket
	err := s.DB.First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *Service) CreateRedemption(redemption *models.Redemption) error {
	if err := s.DB.Create(redemption).Error; err != nil {
		log.Printf("ERROR: Failed to save redemption for user %s: %v", redemption.UserID, err)
		return err
	}
	return nil
}

func (s *Service) ListRedemptionsForUser(userID string) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := s.DB.Where("user_id = ?", userID).
		Order("requested_at desc").
		Find(&redemptions).Error
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}

// SumPointsRedeemed totals the points consumed by the user's redemption
// requests. Rejected requests give the points back.
func (s *Service) SumPointsRedeemed(userID string) (int, error) {
	var total int
	err := s.DB.Model(&models.Redemption{}).
		Where("user_id = ? AND status <> ?", userID, models.RedemptionRejected).
		Select("COALESCE(SUM(points_used), 0)").
		Scan(&total).Error
	return total, err
}

// SumPointsEarned totals the points from the user's completed attempts.
func (s *Service) SumPointsEarned(userID string) (int, error) {
	var total int
	err := s.DB.Model(&models.SurveyAttempt{}).
		Where("user_id = ? AND status = ?", userID, models.AttemptCompleted).
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&total).Error
	return total, err
}

// CompletedPointsByUser aggregates completed-attempt points for every
// user, zero-point users included, so a leaderboard rebuild seeds the
// whole member base.
func (s *Service) CompletedPointsByUser() ([]MemberScore, error) {
	var rows []struct {
		UserID string
		Total  int
	}
	err := s.DB.Model(&models.User{}).
		Select("users.id as user_id, COALESCE(SUM(survey_attempts.points_earned), 0) as total").
		Joins("LEFT JOIN survey_attempts ON survey_attempts.user_id = users.id AND survey_attempts.status = ?", models.AttemptCompleted).
		Group("users.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scores := make([]MemberScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, MemberScore{UserID: row.UserID, Points: row.Total})
	}
	return scores, nil
}

// SetLeaderboardScore writes a user's absolute point total into the
// leaderboard sorted set.
func (s *Service) SetLeaderboardScore(userID string, points int) error {
	return s.Redis.ZAdd(s.Ctx, config.LeaderboardKey, redis.Z{
		Score:  float64(points),
		Member: userID,
	}).Err()
}

// LeaderboardTop returns the highest-scoring members, best first.
func (s *Service) LeaderboardTop(limit int) ([]MemberScore, error) {
	entries, err := s.Redis.ZRevRangeWithScores(s.Ctx, config.LeaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]MemberScore, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, MemberScore{UserID: member, Points: int(z.Score)})
	}
	return scores, nil
}

// LeaderboardRank returns a user's zero-based rank and score in the
// sorted set. found is false when the user has no entry.
func (s *Service) LeaderboardRank(userID string) (int64, int, bool, error) {
	rank, err := s.Redis.ZRevRank(s.Ctx, config.LeaderboardKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}

	score, err := s.Redis.ZScore(s.Ctx, config.LeaderboardKey, userID).Result()
	if err != nil {
		return 0, 0, false, err
	}
	return rank, int(score), true, nil
}

// LeaderboardSize returns the number of members in the sorted set.
func (s *Service) LeaderboardSize() (int64, error) {
	return s.Redis.ZCard(s.Ctx, config.LeaderboardKey).Result()
}

// PublishEvent pushes an activity event onto the owner's Redis channel
// for websocket fan-out.
func (s *Service) PublishEvent(event models.ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, "activity:"+event.UserID, string(payload)).Err(); err != nil {
		log.Printf("ERROR: Failed to publish activity event for user %s: %v", event.UserID, err)
		return err
	}
	return nil
}

// SubscribeToActivity subscribes to every user activity channel.
func (s *Service) SubscribeToActivity() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "activity:*")
}
