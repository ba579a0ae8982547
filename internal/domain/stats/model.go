package stats

// Tally is the scoring record of one player for one team.
type Tally struct {
	Player  string `json:"player"`
	Team    string `json:"team"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
}

// GoalsAssists is derived on read and never stored.
func (t Tally) GoalsAssists() int {
	return t.Goals + t.Assists
}

// Ranked is a tally with its competition rank.
type Ranked struct {
	Rank int `json:"rank"`
	Tally
}

// EditionLine accumulates goals and assists for one competition edition.
type EditionLine struct {
	Competition string `json:"competition"`
	Edition     string `json:"edition"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
}

func (l EditionLine) GoalsAssists() int {
	return l.Goals + l.Assists
}

// Metric selects the score a ranking sorts by.
type Metric func(Tally) int

var (
	MetricGoals        Metric = func(t Tally) int { return t.Goals }
	MetricAssists      Metric = func(t Tally) int { return t.Assists }
	MetricGoalsAssists Metric = Tally.GoalsAssists
)
