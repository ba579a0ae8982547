// Package stats aggregates match events into rankings and subtotals.
// Shootout kicks are excluded from every aggregate.
package stats

import (
	"sort"

	"github.com/football-archive/pipeline/internal/domain/matchevent"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

// AssignCompetitionRanks returns standard competition ranks (1,2,2,4) for
// scores already sorted in descending order.
func AssignCompetitionRanks(scores []int) []int {
	ranks := make([]int, len(scores))
	for i, score := range scores {
		if i > 0 && score == scores[i-1] {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}

// Tallies counts goals and assists per (player, team) over the events
// accepted by filter. Assists are read from the assist field of goal
// events. Output follows first appearance.
func Tallies(events []matchevent.Event, filter func(matchevent.Event) bool) []Tally {
	type tallyKey struct{ player, team string }
	index := make(map[tallyKey]int)
	var out []Tally

	credit := func(playerName, team string, goals, assists int) {
		playerName = textnorm.Text(playerName)
		if playerName == "" {
			return
		}
		team = textnorm.Text(team)
		key := tallyKey{player: playerName, team: team}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Tally{Player: playerName, Team: team})
		}
		out[i].Goals += goals
		out[i].Assists += assists
	}

	for _, e := range events {
		if filter != nil && !filter(e) {
			continue
		}
		if !e.IsGoal() {
			continue
		}
		credit(e.Player, e.Team, 1, 0)
		credit(e.Assist, e.Team, 0, 1)
	}
	return out
}

// Rank sorts tallies by metric, drops zero scores and assigns competition
// ranks. Ties are ordered by player then team name.
func Rank(tallies []Tally, metric Metric) []Ranked {
	rows := make([]Tally, 0, len(tallies))
	for _, t := range tallies {
		if metric(t) > 0 {
			rows = append(rows, t)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := metric(rows[i]), metric(rows[j])
		if si != sj {
			return si > sj
		}
		if rows[i].Player != rows[j].Player {
			return rows[i].Player < rows[j].Player
		}
		return rows[i].Team < rows[j].Team
	})

	scores := make([]int, len(rows))
	for i, t := range rows {
		scores[i] = metric(t)
	}
	ranks := AssignCompetitionRanks(scores)

	out := make([]Ranked, len(rows))
	for i, t := range rows {
		out[i] = Ranked{Rank: ranks[i], Tally: t}
	}
	return out
}

func editionFilter(competition, edition string) func(matchevent.Event) bool {
	return func(e matchevent.Event) bool { return e.InEdition(competition, edition) }
}

// GoalRanking ranks scorers of one competition edition.
func GoalRanking(events []matchevent.Event, competition, edition string) []Ranked {
	return Rank(Tallies(events, editionFilter(competition, edition)), MetricGoals)
}

// AssistRanking ranks assist providers of one competition edition.
func AssistRanking(events []matchevent.Event, competition, edition string) []Ranked {
	return Rank(Tallies(events, editionFilter(competition, edition)), MetricAssists)
}

// GoalsAssistsRanking ranks by goals plus assists.
func GoalsAssistsRanking(events []matchevent.Event, competition, edition string) []Ranked {
	return Rank(Tallies(events, editionFilter(competition, edition)), MetricGoalsAssists)
}

// TeamScorers ranks every scorer for team across all editions. An empty
// competition spans every competition.
func TeamScorers(events []matchevent.Event, team, competition string) []Ranked {
	team = textnorm.Text(team)
	filter := func(e matchevent.Event) bool {
		if competition != "" && e.Competition != competition {
			return false
		}
		return textnorm.Text(e.Team) == team
	}
	return Rank(Tallies(events, filter), MetricGoals)
}
