package config

const (
	// Appeal decision thresholds (confidence score, 0-100)
	AppealThreshold    = 50
	UncertainThreshold = 30

	// Signal cutoffs
	InstantDQSeconds     = 30
	GoodHistoryRate      = 60.0
	ExpectedMinTimeRatio = 0.1

	// Ticket defaults
	AppealTicketType      = "Disqualification Appeal"
	AppealDefaultStatus   = "Open"
	AppealDefaultPriority = "Medium"

	// Auth
	TokenTTLHours = 72
	TokenIssuer   = "paidvine-service"

	// Leaderboard
	LeaderboardKey  = "leaderboard:points"
	LeaderboardSize = 100
)

// SignalWeights maps each scored appeal signal to its contribution to the
// confidence score. hasAnswers is intentionally absent: it is reported to
// the client but never scored.
var SignalWeights = map[string]int{
	"instantDQ":           30,
	"unusuallyFast":       20,
	"goodHistory":         25,
	"noFraudFlags":        15,
	"commonlyIncorrectDQ": 10,
}

// AppealTags are attached to every auto-generated appeal ticket.
var AppealTags = []string{"Possible False Disqualification", "AI Generated"}
