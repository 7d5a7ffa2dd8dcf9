// Package rewards covers the points economy: redemption requests, the
// leaderboard and the dashboard aggregates.
package rewards

import (
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"paidvine/backend/internal/config"
	"paidvine/backend/internal/models"
	"paidvine/backend/internal/storage"
)

// ErrInsufficientPoints rejects a redemption that spends more points than
// the user's current balance.
var ErrInsufficientPoints = errors.New("not enough points for this redemption")

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	UserID           string `json:"userId"`
	Name             string `json:"name"`
	TotalPoints      int    `json:"totalPoints"`
	CompletedSurveys int    `json:"completedSurveys"`
	Rank             int    `json:"rank"`
	IsCurrentUser    bool   `json:"isCurrentUser"`
}

// LeaderboardResult is the full leaderboard payload.
type LeaderboardResult struct {
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	CurrentUserRank *LeaderboardEntry  `json:"currentUserRank"`
	TotalUsers      int                `json:"totalUsers"`
}

// DashboardStats backs the dashboard stat cards.
type DashboardStats struct {
	PointsEarned     int `json:"pointsEarned"`
	PointsRedeemed   int `json:"pointsRedeemed"`
	Balance          int `json:"balance"`
	SurveysCompleted int `json:"surveysCompleted"`
}

// Service handles the business logic for the points economy.
type Service struct {
	Storage storage.Storage

	now func() time.Time
}

// NewService creates a new rewards service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s, now: time.Now}
}

// Balance returns earned minus redeemed points.
func (s *Service) Balance(userID string) (int, error) {
	earned, err := s.Storage.SumPointsEarned(userID)
	if err != nil {
		return 0, err
	}
	redeemed, err := s.Storage.SumPointsRedeemed(userID)
	if err != nil {
		return 0, err
	}
	return earned - redeemed, nil
}

// RequestRedemption files a pending cash-out request after checking the
// caller's point balance covers it.
func (s *Service) RequestRedemption(userID string, amount float64, pointsUsed int, method, accountDetails string) (string, error) {
	balance, err := s.Balance(userID)
	if err != nil {
		return "", err
	}
	if pointsUsed > balance {
		return "", ErrInsufficientPoints
	}

	redemption := &models.Redemption{
		UserID:         userID,
		Amount:         amount,
		PointsUsed:     pointsUsed,
		Method:         method,
		AccountDetails: accountDetails,
		Status:         models.RedemptionPending,
		RequestedAt:    s.now(),
	}
	if err := s.Storage.CreateRedemption(redemption); err != nil {
		return "", err
	}

	if err := s.Storage.PublishEvent(models.ActivityEvent{
		UserID:      userID,
		Type:        models.EventRedemptionRequested,
		Title:       "Reward Redeemed",
		Description: "Redemption requested via " + method,
		Points:      pointsUsed,
		Timestamp:   s.now().UnixMilli(),
	}); err != nil {
		log.Printf("WARNING: Could not publish redemption event for user %s: %v", userID, err)
	}

	return redemption.ID, nil
}

// ListRedemptions returns the caller's requests, newest first.
func (s *Service) ListRedemptions(userID string) ([]models.Redemption, error) {
	return s.Storage.ListRedemptionsForUser(userID)
}

// Leaderboard returns the ranked top scorers with the caller flagged.
// Scores come from the Redis sorted set; an empty set is rebuilt from the
// database aggregate first. TotalUsers counts the whole member base, and
// a caller ranked below the returned slice still gets their own entry
// through a direct rank lookup.
func (s *Service) Leaderboard(currentUserID string) (*LeaderboardResult, error) {
	size, err := s.Storage.LeaderboardSize()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		if err := s.rebuild(); err != nil {
			return nil, err
		}
		if size, err = s.Storage.LeaderboardSize(); err != nil {
			return nil, err
		}
	}

	scores, err := s.Storage.LeaderboardTop(config.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	result := &LeaderboardResult{
		Leaderboard: make([]LeaderboardEntry, 0, len(scores)),
		TotalUsers:  int(size),
	}
	for i, score := range scores {
		entry, err := s.rankedEntry(score.UserID, score.Points, i+1, currentUserID)
		if err != nil {
			return nil, err
		}
		result.Leaderboard = append(result.Leaderboard, entry)
		if entry.IsCurrentUser {
			ranked := entry
			result.CurrentUserRank = &ranked
		}
	}

	if result.CurrentUserRank == nil {
		rank, points, found, err := s.Storage.LeaderboardRank(currentUserID)
		if err != nil {
			return nil, err
		}
		if found {
			entry, err := s.rankedEntry(currentUserID, points, int(rank)+1, currentUserID)
			if err != nil {
				return nil, err
			}
			result.CurrentUserRank = &entry
		}
	}
	return result, nil
}

// rankedEntry resolves the display name and counters for one row.
func (s *Service) rankedEntry(userID string, points, rank int, currentUserID string) (LeaderboardEntry, error) {
	entry := LeaderboardEntry{
		UserID:        userID,
		Name:          "Anonymous",
		TotalPoints:   points,
		Rank:          rank,
		IsCurrentUser: userID == currentUserID,
	}

	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return entry, err
	}
	if user != nil {
		entry.CompletedSurveys = user.TotalSurveysCompleted
		if user.Name != "" {
			entry.Name = user.Name
		} else if user.Email != "" {
			entry.Name = strings.SplitN(user.Email, "@", 2)[0]
		}
	}
	return entry, nil
}

// rebuild repopulates the sorted set from the completed-attempt aggregate.
func (s *Service) rebuild() error {
	scores, err := s.Storage.CompletedPointsByUser()
	if err != nil {
		return err
	}
	for _, score := range scores {
		if err := s.Storage.SetLeaderboardScore(score.UserID, score.Points); err != nil {
			return err
		}
	}
	return nil
}

// GetDashboardStats computes the stat-card numbers from real rows.
func (s *Service) GetDashboardStats(userID string) (*DashboardStats, error) {
	earned, err := s.Storage.SumPointsEarned(userID)
	if err != nil {
		return nil, err
	}
	redeemed, err := s.Storage.SumPointsRedeemed(userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		PointsEarned:   earned,
		PointsRedeemed: redeemed,
		Balance:        earned - redeemed,
	}
	if user, err := s.Storage.GetUserByID(userID); err != nil {
		return nil, err
	} else if user != nil {
		stats.SurveysCompleted = user.TotalSurveysCompleted
	}
	return stats, nil
}

// RecentActivity merges the caller's attempts, redemptions and appeals
// into one feed, newest first, capped at limit entries.
func (s *Service) RecentActivity(userID string, limit int) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent

	attempts, err := s.Storage.ListAttemptsForUser(userID)
	if err != nil {
		return nil, err
	}
	for _, a := range attempts {
		switch a.Status {
		case models.AttemptCompleted:
			events = append(events, models.ActivityEvent{
				UserID:      userID,
				Type:        models.EventSurveyCompleted,
				Title:       "Points Earned",
				Description: "Completed survey: " + a.Title,
				Points:      a.PointsEarned,
				Timestamp:   a.CreatedAt.UnixMilli(),
			})
		case models.AttemptDisqualified:
			events = append(events, models.ActivityEvent{
				UserID:      userID,
				Type:        models.EventSurveyDisqualified,
				Title:       "Survey Disqualified",
				Description: "Disqualified from survey: " + a.Title,
				Timestamp:   a.CreatedAt.UnixMilli(),
			})
		}
	}

	redemptions, err := s.Storage.ListRedemptionsForUser(userID)
	if err != nil {
		return nil, err
	}
	for _, r := range redemptions {
		events = append(events, models.ActivityEvent{
			UserID:      userID,
			Type:        models.EventRedemptionRequested,
			Title:       "Reward Redeemed",
			Description: "Redemption requested via " + r.Method,
			Points:      r.PointsUsed,
			Timestamp:   r.RequestedAt.UnixMilli(),
		})
	}

	appeals, err := s.Storage.ListAppealsForUser(userID)
	if err != nil {
		return nil, err
	}
	for _, t := range appeals {
		events = append(events, models.ActivityEvent{
			UserID:      userID,
			Type:        models.EventAppealSubmitted,
			Title:       "Appeal Submitted",
			Description: "Appeal filed for survey: " + t.SurveyTitle,
			Timestamp:   t.CreatedAt.UnixMilli(),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
