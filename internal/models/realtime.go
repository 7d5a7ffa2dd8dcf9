package models

// Activity event types pushed over the websocket feed.
const (
	EventSurveyCompleted     = "survey_completed"
	EventSurveyDisqualified  = "survey_disqualified"
	EventAppealSubmitted     = "appeal_submitted"
	EventRedemptionRequested = "redemption_requested"
)

// ActivityEvent is one entry in a user's live activity feed. Events are
// published to Redis on the "activity:<userID>" channel and fanned out to
// that user's websocket connections.
type ActivityEvent struct {
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points,omitempty"`
	Timestamp   int64  `json:"timestamp"` // unix millis
}
