package callup

import (
	"github.com/football-archive/pipeline/internal/domain/player"
)

// Entry is one national-team call-up for a competition edition.
type Entry struct {
	Competition         string
	Edition             string
	Confederation       string
	ConfederationBucket string
	Country             string
	ShirtNo             string
	Position            player.Position
	NameEN              string
	BirthDate           string
	HeightCM            string
	CurrentClub         string
	CurrentClubKey      string
	SnapshotDate        string
	NameJA              string
	NationalDebut       string
	Source              string
	Notes               string
}

func (e Entry) Key() player.Key {
	return player.Key{Name: e.NameEN, BirthDate: e.BirthDate}
}

// GroupKey identifies the squad a call-up belongs to.
func (e Entry) GroupKey() string {
	return e.Competition + "\x1f" + e.Edition + "\x1f" + e.Country
}
