package stats

import (
	"sort"

	"github.com/football-archive/pipeline/internal/domain/matchevent"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

type editionKey struct{ competition, edition string }

type editionAccumulator struct {
	index map[editionKey]int
	lines []EditionLine
}

func newEditionAccumulator() *editionAccumulator {
	return &editionAccumulator{index: make(map[editionKey]int)}
}

func (a *editionAccumulator) add(e matchevent.Event, goals, assists int) {
	key := editionKey{competition: e.Competition, edition: e.Edition}
	i, ok := a.index[key]
	if !ok {
		i = len(a.lines)
		a.index[key] = i
		a.lines = append(a.lines, EditionLine{Competition: e.Competition, Edition: e.Edition})
	}
	a.lines[i].Goals += goals
	a.lines[i].Assists += assists
}

func (a *editionAccumulator) sorted() []EditionLine {
	out := append([]EditionLine(nil), a.lines...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Competition != out[j].Competition {
			return out[i].Competition < out[j].Competition
		}
		return out[i].Edition < out[j].Edition
	})
	return out
}

// PlayerCareer returns a player's goals and assists per competition edition,
// sorted by competition then edition.
func PlayerCareer(events []matchevent.Event, playerName string) []EditionLine {
	playerName = textnorm.Text(playerName)
	if playerName == "" {
		return nil
	}

	acc := newEditionAccumulator()
	for _, e := range events {
		if !e.IsGoal() {
			continue
		}
		if textnorm.Text(e.Player) == playerName {
			acc.add(e, 1, 0)
		}
		if textnorm.Text(e.Assist) == playerName {
			acc.add(e, 0, 1)
		}
	}
	return acc.sorted()
}

// EditionTotals returns the goal and assist totals of every edition of a
// competition. An empty competition spans every competition.
func EditionTotals(events []matchevent.Event, competition string) []EditionLine {
	acc := newEditionAccumulator()
	for _, e := range events {
		if competition != "" && e.Competition != competition {
			continue
		}
		if !e.IsGoal() {
			continue
		}
		assists := 0
		if textnorm.Text(e.Assist) != "" {
			assists = 1
		}
		acc.add(e, 1, assists)
	}
	return acc.sorted()
}

// CareerTotal sums edition lines.
func CareerTotal(lines []EditionLine) EditionLine {
	var total EditionLine
	for _, l := range lines {
		total.Goals += l.Goals
		total.Assists += l.Assists
	}
	return total
}
