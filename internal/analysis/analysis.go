// Package analysis implements the disqualification-appeal decision rules.
// It evaluates a fixed set of boolean signals over a user's history and a
// survey attempt, converts them into an additive confidence score, and
// renders the per-signal reasoning sentences. Both the appeal analyzer and
// the appeal message composer consume this package, so the two can never
// disagree on which signals fired.
package analysis

import (
	"fmt"

	"paidvine/backend/internal/config"
)

// Input carries everything the rules need. It is assembled by the appeal
// service from the attempt, its survey and the owner's history.
type Input struct {
	TimeSpentSeconds    int
	EstimatedMinutes    int
	QualificationRate   float64 // percentage, 0-100
	FraudFlags          int
	CommonlyIncorrectDQ bool
	AnswerCount         int
	SurveyTitle         string
}

// Signals holds the six boolean decision factors. HasAnswers is reported
// to the client but carries no weight and no reasoning sentence.
type Signals struct {
	InstantDQ           bool `json:"instantDQ"`
	UnusuallyFast       bool `json:"unusuallyFast"`
	GoodHistory         bool `json:"goodHistory"`
	NoFraudFlags        bool `json:"noFraudFlags"`
	CommonlyIncorrectDQ bool `json:"commonlyIncorrectDQ"`
	HasAnswers          bool `json:"hasAnswers"`
}

// QualificationRate returns 100 * completed / total, or 0 when the user
// has no prior attempts.
func QualificationRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// ExpectedMinTimeSeconds is the floor below which a disqualification counts
// as unusually fast: 10% of the survey's estimated completion time.
func ExpectedMinTimeSeconds(estimatedMinutes int) float64 {
	return float64(estimatedMinutes*60) * config.ExpectedMinTimeRatio
}

// Compute evaluates all six signals for the given input.
func Compute(in Input) Signals {
	return Signals{
		InstantDQ:           in.TimeSpentSeconds < config.InstantDQSeconds,
		UnusuallyFast:       float64(in.TimeSpentSeconds) < ExpectedMinTimeSeconds(in.EstimatedMinutes),
		GoodHistory:         in.QualificationRate > config.GoodHistoryRate,
		NoFraudFlags:        in.FraudFlags == 0,
		CommonlyIncorrectDQ: in.CommonlyIncorrectDQ,
		HasAnswers:          in.AnswerCount > 0,
	}
}

// scoredSignal ties one scored factor to its weight lookup key and its
// reasoning sentence. Table order defines sentence order in the output.
type scoredSignal struct {
	name     string
	active   func(Signals) bool
	sentence func(Input) string
}

var scoredSignals = []scoredSignal{
	{
		name:   "instantDQ",
		active: func(s Signals) bool { return s.InstantDQ },
		sentence: func(Input) string {
			return "The disqualification occurred within 30 seconds, which often indicates a technical glitch rather than a legitimate screening failure."
		},
	},
	{
		name:   "unusuallyFast",
		active: func(s Signals) bool { return s.UnusuallyFast },
		sentence: func(Input) string {
			return "The disqualification happened unusually fast compared to the survey's estimated completion time."
		},
	},
	{
		name:   "goodHistory",
		active: func(s Signals) bool { return s.GoodHistory },
		sentence: func(in Input) string {
			return fmt.Sprintf("You have a strong qualification rate of %.1f%%, indicating you typically meet survey requirements.", in.QualificationRate)
		},
	},
	{
		name:   "noFraudFlags",
		active: func(s Signals) bool { return s.NoFraudFlags },
		sentence: func(Input) string {
			return "Your account has no history of fraudulent or low-quality responses."
		},
	},
	{
		name:   "commonlyIncorrectDQ",
		active: func(s Signals) bool { return s.CommonlyIncorrectDQ },
		sentence: func(Input) string {
			return "This survey has a history of incorrectly disqualifying qualified participants."
		},
	},
}

// Score sums the weights of the active scored signals. The result is
// always within [0, 100].
func Score(s Signals) int {
	total := 0
	for _, sig := range scoredSignals {
		if sig.active(s) {
			total += config.SignalWeights[sig.name]
		}
	}
	return total
}

// Reasoning returns one sentence per active scored signal, in table order.
func Reasoning(s Signals, in Input) []string {
	var out []string
	for _, sig := range scoredSignals {
		if sig.active(s) {
			out = append(out, sig.sentence(in))
		}
	}
	return out
}

// ShouldAppeal reports whether the score clears the appeal threshold.
func ShouldAppeal(score int) bool {
	return score >= config.AppealThreshold
}

// IsUncertain reports whether the score lands in the gray zone where the
// client should present the appeal option with a caveat.
func IsUncertain(score int) bool {
	return score >= config.UncertainThreshold && score < config.AppealThreshold
}
