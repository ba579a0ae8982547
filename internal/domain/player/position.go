package player

import (
	"strings"
	"unicode"

	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

// Position is the four-way role category shown on squad and call-up pages.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MF"
	PositionForward    Position = "FW"
)

type positionTerms struct {
	position Position
	codes    []string
	terms    []string
}

// Checked in order: some labels contain terms of more than one category
// ("wing-back", "attacking midfield") and the first category wins.
var positionTable = []positionTerms{
	{
		position: PositionGoalkeeper,
		codes:    []string{"gk"},
		terms: []string{
			"goalkeeper", "goal keeper", "keeper", "goalie",
			"ゴールキーパー", "キーパー", "gardien", "portero", "torwart", "portiere", "goleiro",
		},
	},
	{
		position: PositionForward,
		codes:    []string{"fw", "st", "cf", "lw", "rw"},
		terms: []string{
			"forward", "striker", "winger", "attacker",
			"フォワード", "ストライカー", "ウインガー", "ウィンガー",
			"delantero", "attaquant", "stürmer", "attaccante", "atacante",
		},
	},
	{
		position: PositionMidfielder,
		codes:    []string{"mf", "cm", "dm", "am", "cdm", "cam", "lm", "rm", "dmf", "omf"},
		terms: []string{
			"midfield", "ミッドフィルダー", "ボランチ", "ハーフ",
			"milieu", "centrocampista", "mittelfeld", "mediocampista", "volante",
		},
	},
	{
		position: PositionDefender,
		codes:    []string{"df", "cb", "lb", "rb", "lwb", "rwb"},
		terms: []string{
			"defender", "defence", "defense", "back",
			"ディフェンダー", "バック", "défenseur", "defensa", "verteidiger", "difensore", "zagueiro", "lateral",
		},
	},
}

// NormalizePosition maps a free-text position label to GK, DF, MF or FW, or
// returns "" when nothing matches.
func NormalizePosition(label string) Position {
	folded := textnorm.FoldKey(label)
	if folded == "" {
		return ""
	}

	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, row := range positionTable {
		for _, token := range tokens {
			for _, code := range row.codes {
				if token == code {
					return row.position
				}
			}
		}
		for _, term := range row.terms {
			if strings.Contains(folded, term) {
				return row.position
			}
		}
	}
	return ""
}
