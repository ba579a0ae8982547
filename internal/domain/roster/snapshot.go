// Package roster holds the row-stream transforms applied to squad and
// call-up tables: latest-snapshot selection and multi-row block merging.
package roster

import (
	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

// SnapshotKeys extracts the grouping inputs LatestSnapshots needs from a row.
type SnapshotKeys[T any] struct {
	Group  func(T) string
	Player func(T) string
	Date   func(T) string
}

// LatestSnapshots keeps, for every (group, player) pair, the row with the
// most recent snapshot date. Rows without a parseable date are dropped when
// any row of the same group is dated. On equal dates the later row wins.
// Survivors keep their input order. A row whose player key is empty is
// never merged with another row.
func LatestSnapshots[T any](rows []T, keys SnapshotKeys[T]) []T {
	type slot struct {
		group  string
		player string
		date   string
	}

	slots := make([]slot, len(rows))
	datedGroups := make(map[string]bool)
	for i, row := range rows {
		s := slot{
			group:  keys.Group(row),
			player: keys.Player(row),
			date:   textnorm.CompactDate(keys.Date(row)),
		}
		slots[i] = s
		if s.date != "" {
			datedGroups[s.group] = true
		}
	}

	type pairKey struct{ group, player string }
	winner := make(map[pairKey]int)
	keep := make([]bool, len(rows))
	for i, s := range slots {
		if s.date == "" && datedGroups[s.group] {
			continue
		}
		if s.player == "" {
			keep[i] = true
			continue
		}

		pk := pairKey{group: s.group, player: s.player}
		prev, ok := winner[pk]
		if ok && slots[prev].date > s.date {
			continue
		}
		if ok {
			keep[prev] = false
		}
		winner[pk] = i
		keep[i] = true
	}

	out := make([]T, 0, len(winner))
	for i, row := range rows {
		if keep[i] {
			out = append(out, row)
		}
	}
	return out
}

// PlayerKey returns the identity key used to group snapshots. Unkeyable
// players fall back to their folded display names.
func PlayerKey(key player.Key, nameEN, nameJA string) string {
	if key.Valid() {
		return key.String()
	}
	en := textnorm.FoldKey(nameEN)
	ja := textnorm.FoldKey(nameJA)
	if en == "" && ja == "" {
		return ""
	}
	return "raw:" + en + "|" + ja
}
