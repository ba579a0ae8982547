package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/football-archive/pipeline/internal/domain/club"
	"github.com/football-archive/pipeline/internal/domain/namemap"
	"github.com/football-archive/pipeline/internal/domain/roster"
	"github.com/football-archive/pipeline/internal/domain/squad"
	"github.com/football-archive/pipeline/internal/platform/logging"
	"github.com/football-archive/pipeline/internal/platform/tabular"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

// DefaultSquadLayout reads the block export produced by the squad
// spreadsheets: a shirt number column opening each player, with the
// Japanese and English names, birth date and the rest spread over the
// following rows.
func DefaultSquadLayout() roster.BlockConfig {
	return roster.BlockConfig{
		StartColumn: "no",
		Fields: []roster.FieldRule{
			{Name: "shirt_no", Columns: []string{"no"}},
			{Name: "name_ja", Columns: []string{"name", "name_ja"}},
			{Name: "name_en", Columns: []string{"name_en", "english"}},
			{Name: "birth_date", Columns: []string{"birth", "birth_date", "dob"}},
			{Name: "height", Columns: []string{"height", "height_cm"}},
			{Name: "nationality", Columns: []string{"nation", "nationality"}, Collect: true},
			{Name: "foot", Columns: []string{"foot"}},
			{Name: "join_date", Columns: []string{"joined", "join_date"}},
			{Name: "prev_club", Columns: []string{"prev_club", "from"}},
			{Name: "contract_until", Columns: []string{"contract", "contract_until"}},
			{Name: "notes", Columns: []string{"notes"}, Collect: true},
		},
		Separator:           roster.DefaultCollectSeparator,
		PositionSkipColumns: []string{"name", "name_ja", "name_en", "english", "notes"},
	}
}

type SquadImportConfig struct {
	Strict bool
	Layout roster.BlockConfig
	// SquadsPath is the squad table the imported rows are appended to.
	SquadsPath string
}

type SquadImportInput struct {
	SourcePath   string
	Season       string
	Window       string
	League       string
	Club         string
	SnapshotDate string
	Source       string
	DryRun       bool
}

type SquadImportResult struct {
	Blocks     int                   `json:"blocks"`
	Imported   int                   `json:"imported"`
	Skipped    int                   `json:"skipped"`
	NamesFound int                   `json:"names_found"`
	ClubKey    string                `json:"club_key"`
	LeagueKey  string                `json:"league_key"`
	Unresolved []club.UnresolvedPair `json:"unresolved,omitempty"`
	Total      int                   `json:"total"`
	DryRun     bool                  `json:"dry_run"`
}

type SquadImportService struct {
	tables TableStore
	clubs  club.Repository
	names  namemap.Repository
	cfg    SquadImportConfig
	logger *logging.Logger
}

func NewSquadImportService(
	tables TableStore,
	clubs club.Repository,
	names namemap.Repository,
	cfg SquadImportConfig,
	logger *logging.Logger,
) *SquadImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Layout.StartColumn == "" {
		cfg.Layout = DefaultSquadLayout()
	}
	return &SquadImportService{
		tables: tables,
		clubs:  clubs,
		names:  names,
		cfg:    cfg,
		logger: logger,
	}
}

// Import merges a block-format export into squad entries for one club and
// appends them to the squad table. Existing rows and columns the pipeline
// does not model are written back untouched. Older snapshots are kept; the
// snapshot date decides which one is current.
func (s *SquadImportService) Import(ctx context.Context, input SquadImportInput) (SquadImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadImportService.Import")
	defer span.End()

	if s.tables == nil || s.clubs == nil || strings.TrimSpace(s.cfg.SquadsPath) == "" {
		return SquadImportResult{}, fmt.Errorf("%w: squad import is not fully configured", ErrDependencyUnavailable)
	}
	input.SourcePath = strings.TrimSpace(input.SourcePath)
	input.Season = textnorm.Text(input.Season)
	input.Club = textnorm.Text(input.Club)
	if input.SourcePath == "" || input.Season == "" || input.Club == "" {
		return SquadImportResult{}, fmt.Errorf("%w: source path, season and club are required", ErrInvalidInput)
	}
	snapshot := ""
	if input.SnapshotDate != "" {
		snapshot = textnorm.Date(input.SnapshotDate)
		if snapshot == "" {
			return SquadImportResult{}, fmt.Errorf("%w: snapshot date %q is not a date", ErrInvalidInput, input.SnapshotDate)
		}
	}

	table, found, err := s.tables.LoadTable(ctx, input.SourcePath)
	if err != nil {
		return SquadImportResult{}, fmt.Errorf("load squad export: %w", err)
	}
	if !found {
		return SquadImportResult{}, fmt.Errorf("%w: squad export %s", ErrNotFound, input.SourcePath)
	}
	if !table.HasColumn(s.cfg.Layout.StartColumn) {
		return SquadImportResult{}, fmt.Errorf("%w: squad export has no %q column", ErrInvalidInput, s.cfg.Layout.StartColumn)
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return SquadImportResult{}, err
	}
	names, err := s.loadNames(ctx)
	if err != nil {
		return SquadImportResult{}, err
	}

	result := SquadImportResult{DryRun: input.DryRun}
	unresolved := club.NewUnresolvedSet()
	clubKey, leagueKey := "", ""
	if res, ok := resolver.Resolve(input.League, input.Club); ok {
		clubKey, leagueKey = res.ClubKey, res.LeagueKey
	} else {
		unresolved.Add(input.League, input.Club)
	}
	result.ClubKey, result.LeagueKey = clubKey, leagueKey

	blocks := roster.MergeBlocks(table, s.cfg.Layout)
	result.Blocks = len(blocks)

	imported := make([]squad.Entry, 0, len(blocks))
	for _, block := range blocks {
		entry, ok := entryFromBlock(block, input, snapshot)
		if !ok {
			result.Skipped++
			s.logger.DebugContext(ctx, "squad block without a name skipped", "shirt_no", block.Get("shirt_no"), "section", block.Section)
			continue
		}
		entry.ClubKey, entry.LeagueKey = clubKey, leagueKey
		imported = append(imported, entry)
	}

	before := countNamed(imported)
	imported = applyNamesToSquads(imported, names)
	result.NamesFound = countNamed(imported) - before
	result.Imported = len(imported)
	result.Unresolved = unresolved.Pairs()

	existing, _, err := s.tables.LoadTable(ctx, s.cfg.SquadsPath)
	if err != nil {
		return result, fmt.Errorf("load squads: %w", err)
	}
	merged := appendSquadRows(existing, imported)
	result.Total = len(merged.Rows)

	if !input.DryRun {
		if err := s.tables.SaveTable(ctx, s.cfg.SquadsPath, merged); err != nil {
			return result, fmt.Errorf("save squads: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "squad import finished",
		"club", input.Club,
		"club_key", clubKey,
		"blocks", result.Blocks,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"names_found", result.NamesFound,
		"dry_run", input.DryRun,
	)
	if clubKey == "" {
		s.logger.WarnContext(ctx, "imported club is not in the club master", "league", input.League, "club", input.Club)
	}
	return result, nil
}

func (s *SquadImportService) loadResolver(ctx context.Context) (*club.Resolver, error) {
	rows, err := s.clubs.ListClubs(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: club master: %v", ErrRequiredFileMissing, err)
		}
		return nil, fmt.Errorf("load club master: %w", err)
	}
	leagues, err := s.clubs.ListLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("load league master: %w", err)
	}
	mode := club.KeyModeLenient
	if s.cfg.Strict {
		mode = club.KeyModeStrict
	}
	resolver, err := club.NewResolver(rows, leagues, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: club master: %v", ErrInvalidInput, err)
	}
	return resolver, nil
}

func (s *SquadImportService) loadNames(ctx context.Context) (*namemap.Store, error) {
	store := namemap.NewStore(namemap.Options{Strict: s.cfg.Strict})
	if s.names == nil {
		return store, nil
	}
	entries, err := s.names.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load name map: %w", err)
	}
	if _, err := store.Load(entries, nil); err != nil {
		return nil, fmt.Errorf("%w: name map: %v", ErrInvalidInput, err)
	}
	return store, nil
}

func entryFromBlock(block roster.Block, input SquadImportInput, snapshot string) (squad.Entry, bool) {
	nameEN := textnorm.Text(block.Get("name_en"))
	nameJA := textnorm.Text(block.Get("name_ja"))
	if nameEN == "" && nameJA == "" {
		return squad.Entry{}, false
	}
	return squad.Entry{
		Season:        input.Season,
		Window:        textnorm.Text(input.Window),
		League:        textnorm.Text(input.League),
		Club:          input.Club,
		ShirtNo:       roster.ShirtNumber(block.Get("shirt_no")),
		Position:      block.Position,
		NameEN:        nameEN,
		NameJA:        nameJA,
		BirthDate:     textnorm.Date(block.Get("birth_date")),
		HeightCM:      textnorm.Height(block.Get("height")),
		SnapshotDate:  snapshot,
		Nationality:   textnorm.Text(block.Get("nationality")),
		Foot:          textnorm.Text(block.Get("foot")),
		JoinDate:      textnorm.Date(block.Get("join_date")),
		PrevClub:      textnorm.Text(block.Get("prev_club")),
		ContractUntil: textnorm.Date(block.Get("contract_until")),
		Source:        textnorm.Text(input.Source),
		Notes:         textnorm.Text(block.Get("notes")),
	}, true
}

// appendSquadRows returns a copy of table with the entries added as rows.
// Squad columns missing from the header are appended to it; existing rows
// keep their values and leave the new columns blank.
func appendSquadRows(table tabular.Table, entries []squad.Entry) tabular.Table {
	header := append([]string(nil), table.Header...)
	for _, col := range squad.Columns {
		if !table.HasColumn(col) {
			header = append(header, col)
		}
	}

	rows := make([]tabular.Row, 0, len(table.Rows)+len(entries))
	rows = append(rows, table.Rows...)
	for _, e := range entries {
		rows = append(rows, e.Row())
	}
	return tabular.Table{Header: header, Rows: rows}
}

func countNamed(entries []squad.Entry) int {
	n := 0
	for _, e := range entries {
		if e.NameJA != "" {
			n++
		}
	}
	return n
}
