package matchevent

import (
	"strings"
)

const (
	TypeGoal        = "GOAL"
	TypePenaltyGoal = "PENALTY_GOAL"
	TypeOwnGoal     = "OWN_GOAL"
)

// Event is one row of the match-events table.
type Event struct {
	Competition string
	Edition     string
	MatchID     string
	EventID     string
	Type        string
	Team        string
	Player      string
	Assist      string
	Minute      string
	Period      string
	Round       string
	Opponent    string
	Note        string
}

func normalizeCode(value string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(code)
}

// IsGoalType reports whether the event type credits the scorer with a goal.
// Penalty goals count; own goals do not.
func IsGoalType(eventType string) bool {
	switch normalizeCode(eventType) {
	case TypeGoal, TypePenaltyGoal, "PK", "PEN", "PENALTY", "PK_GOAL":
		return true
	default:
		return false
	}
}

// IsShootoutPeriod reports whether the period is a penalty shootout.
func IsShootoutPeriod(period string) bool {
	switch normalizeCode(period) {
	case "PSO", "PK", "SO", "SHOOTOUT", "PENALTIES", "PENALTY_SHOOTOUT":
		return true
	default:
		return false
	}
}

// IsGoal reports whether the event counts toward scoring aggregates.
// Shootout kicks never do.
func (e Event) IsGoal() bool {
	return IsGoalType(e.Type) && !IsShootoutPeriod(e.Period)
}

// InEdition reports whether the event belongs to the competition edition.
func (e Event) InEdition(competition, edition string) bool {
	return e.Competition == competition && e.Edition == edition
}
