package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/football-archive/pipeline/internal/domain/callup"
	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/tabular"
)

var callupKeys = SnapshotKeys[callup.Entry]{
	Group: callup.Entry.GroupKey,
	Player: func(e callup.Entry) string {
		return PlayerKey(e.Key(), e.NameEN, e.NameJA)
	},
	Date: func(e callup.Entry) string { return e.SnapshotDate },
}

func TestLatestSnapshots_KeepsMostRecentPerPlayer(t *testing.T) {
	t.Parallel()

	rows := []callup.Entry{
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "X", BirthDate: "2000-01-01", SnapshotDate: "2025-10-01", ShirtNo: "9"},
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "X", BirthDate: "2000-01-01", SnapshotDate: "2025-11-01", ShirtNo: "10"},
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "X", BirthDate: "2000-01-01", SnapshotDate: ""},
	}

	got := LatestSnapshots(rows, callupKeys)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-11-01", got[0].SnapshotDate)
	assert.Equal(t, "10", got[0].ShirtNo)
}

func TestLatestSnapshots_GroupsAreIndependent(t *testing.T) {
	t.Parallel()

	rows := []callup.Entry{
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "A", BirthDate: "2000-01-01", SnapshotDate: "2025/11/1"},
		{Competition: "WC", Edition: "2026", Country: "Korea", NameEN: "B", BirthDate: "2001-01-01"},
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "C", BirthDate: "2002-01-01", SnapshotDate: "2025-11-01"},
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "D", BirthDate: "2003-01-01", SnapshotDate: "2025-10-01"},
		{Competition: "WC", Edition: "2026", Country: "Korea", NameEN: "E", BirthDate: "2004-01-01"},
	}

	got := LatestSnapshots(rows, callupKeys)
	names := make([]string, 0, len(got))
	for _, e := range got {
		names = append(names, e.NameEN)
	}
	// Undated Korea rows survive because nothing in their group is dated;
	// D keeps its older snapshot because the key is per player.
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
}

func TestLatestSnapshots_TieKeepsLaterRowAndUnkeyedFallback(t *testing.T) {
	t.Parallel()

	rows := []callup.Entry{
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "Kubo", SnapshotDate: "2025-11-01", Notes: "first"},
		{Competition: "WC", Edition: "2026", Country: "Japan", NameEN: "KUBO", SnapshotDate: "2025-11-01", Notes: "second"},
		{Competition: "WC", Edition: "2026", Country: "Japan", SnapshotDate: "2025-11-01", Notes: "anonymous 1"},
		{Competition: "WC", Edition: "2026", Country: "Japan", SnapshotDate: "2025-11-01", Notes: "anonymous 2"},
	}

	got := LatestSnapshots(rows, callupKeys)
	require.Len(t, got, 3)
	assert.Equal(t, "second", got[0].Notes)
	assert.Equal(t, "anonymous 1", got[1].Notes)
	assert.Equal(t, "anonymous 2", got[2].Notes)
}

func TestPlayerKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A B|2000-01-01", PlayerKey(player.NewKey("A  B", "2000/1/1"), "A  B", ""))
	assert.Equal(t, "raw:a b|エー", PlayerKey(player.NewKey("A B", ""), "A B", "エー"))
	assert.Equal(t, "", PlayerKey(player.Key{}, " ", ""))
}

func TestIsStartToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell string
		want bool
	}{
		{cell: "7", want: true},
		{cell: " 23 ", want: true},
		{cell: "#10", want: true},
		{cell: "No.4", want: true},
		{cell: "１０", want: true},
		{cell: "-", want: true},
		{cell: "なし", want: true},
		{cell: "N/A", want: true},
		{cell: "", want: false},
		{cell: "GK", want: false},
		{cell: "1234", want: false},
		{cell: "Goalkeepers", want: false},
	}
	for _, tt := range tests {
		if got := IsStartToken(tt.cell); got != tt.want {
			t.Fatalf("IsStartToken(%q)=%v want=%v", tt.cell, got, tt.want)
		}
	}

	assert.Equal(t, "10", ShirtNumber("#10"))
	assert.Equal(t, "7", ShirtNumber("07"))
	assert.Equal(t, "", ShirtNumber("-"))
}

func blockConfig() BlockConfig {
	return BlockConfig{
		StartColumn: "no",
		Fields: []FieldRule{
			{Name: "shirt_no", Columns: []string{"no"}},
			{Name: "name_ja", Columns: []string{"name"}},
			{Name: "name_en", Columns: []string{"name_en", "detail"}},
			{Name: "birth_date", Columns: []string{"birth"}},
			{Name: "nationality", Columns: []string{"nation"}, Collect: true},
		},
		PositionSkipColumns: []string{"name", "name_en"},
	}
}

func TestMergeBlocks(t *testing.T) {
	t.Parallel()

	csv := "no,name,name_en,detail,birth,nation\n" +
		"Goalkeepers,,,,,\n" +
		"1,権田修一,Shuichi Gonda,,1989-03-03,Japan\n" +
		",,,,,\n" +
		"Defenders,,,,,\n" +
		"22,吉田麻也,,,1988-08-24,Japan\n" +
		",,,Maya Yoshida,,\n" +
		"-,テスト選手,,Centre-Back,,Japan\n" +
		",,,,,Brazil\n" +
		",,,,,Japan\n" +
		"Midfield,,,,,\n" +
		"10,南野拓実,Takumi Minamino,Forward,1995-01-16,Japan\n"

	blocks := MergeBlocks(tabular.Parse([]byte(csv)), blockConfig())
	require.Len(t, blocks, 4)

	gk := blocks[0]
	assert.Equal(t, "1", gk.Get("shirt_no"))
	assert.Equal(t, "Shuichi Gonda", gk.Get("name_en"))
	assert.Equal(t, player.PositionGoalkeeper, gk.Position, "section fallback")
	assert.Equal(t, "Goalkeepers", gk.Section)

	yoshida := blocks[1]
	assert.Equal(t, "Maya Yoshida", yoshida.Get("name_en"), "first non-empty across rows and columns")
	assert.Equal(t, "1988-08-24", yoshida.Get("birth_date"))
	assert.Len(t, yoshida.Rows, 2)
	assert.Equal(t, player.PositionDefender, yoshida.Position)

	unnumbered := blocks[2]
	assert.Equal(t, "-", unnumbered.Get("shirt_no"))
	assert.Equal(t, "Japan / Brazil", unnumbered.Get("nationality"))
	assert.Equal(t, player.PositionDefender, unnumbered.Position, "found in a shifted column")

	minamino := blocks[3]
	assert.Equal(t, player.PositionForward, minamino.Position, "cell label beats section")
	assert.Equal(t, "Midfield", minamino.Section)
}

func TestBlockMerger_IgnoresRowsBeforeFirstStart(t *testing.T) {
	t.Parallel()

	header := []string{"no", "name", "name_en", "detail", "birth", "nation"}
	merger := NewBlockMerger(header, blockConfig())

	_, ok := merger.Push(tabular.Row{"name": "stray", "nation": "Japan"})
	assert.False(t, ok)
	_, ok = merger.Flush()
	assert.False(t, ok, "nothing open")

	_, ok = merger.Push(tabular.Row{"no": "5", "name": "五"})
	assert.False(t, ok)
	block, ok := merger.Push(tabular.Row{"no": "6", "name": "六"})
	require.True(t, ok)
	assert.Equal(t, "五", block.Get("name_ja"))
	assert.Empty(t, block.Get("nationality"))

	block, ok = merger.Flush()
	require.True(t, ok)
	assert.Equal(t, "六", block.Get("name_ja"))
}

func TestMergeBlocks_PositionLabelUnderStartColumn(t *testing.T) {
	t.Parallel()

	csv := "no,name,name_en,detail,birth,nation\n" +
		"7,堂安律,Ritsu Doan,,1998-06-16,Japan\n" +
		"MF,,,,,\n" +
		"Forwards,,,,,\n" +
		"9,上田綺世,Ayase Ueda,,1998-08-28,Japan\n" +
		"CF,,,,,\n"
	table := tabular.Parse([]byte(csv))

	blocks := MergeBlocks(table, blockConfig())
	require.Len(t, blocks, 2)

	doan := blocks[0]
	assert.Len(t, doan.Rows, 2, "position label continues the block")
	assert.Equal(t, player.PositionMidfielder, doan.Position)
	assert.Empty(t, doan.Section)

	ueda := blocks[1]
	assert.Equal(t, "Forwards", ueda.Section, "heading still closes the block")
	assert.Equal(t, player.PositionForward, ueda.Position)
	assert.Len(t, ueda.Rows, 2)

	cfg := blockConfig()
	cfg.SectionLabels = []string{}
	blocks = MergeBlocks(table, cfg)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Rows, 3, "without headings every position label is a continuation")
	assert.Empty(t, blocks[1].Section)
}

func TestBlockMerger_NonPositionLabelClosesBlock(t *testing.T) {
	t.Parallel()

	header := []string{"no", "name", "name_en", "detail", "birth", "nation"}
	merger := NewBlockMerger(header, blockConfig())

	_, ok := merger.Push(tabular.Row{"no": "3", "name": "三"})
	require.False(t, ok)
	block, ok := merger.Push(tabular.Row{"no": "Staff"})
	require.True(t, ok)
	assert.Equal(t, "三", block.Get("name_ja"))

	_, ok = merger.Flush()
	assert.False(t, ok, "section marker leaves nothing open")
}
