package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/football-archive/pipeline/internal/domain/namemap"
	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/logging"
	"github.com/football-archive/pipeline/internal/platform/tabular"
)

const (
	defaultEnrichmentWorkers = 4
	maxEnrichmentWorkers     = 32

	columnNameEN    = "name_en"
	columnBirthDate = "birth_date"
	columnNameJA    = "name_ja"
)

// TableStore reads and rewrites whole tables, keeping unknown columns.
type TableStore interface {
	LoadTable(ctx context.Context, path string) (tabular.Table, bool, error)
	SaveTable(ctx context.Context, path string, table tabular.Table) error
}

type EnrichmentConfig struct {
	Workers  int
	Cooldown time.Duration
	Strict   bool
	Source   string
	// Targets are the tables whose empty name_ja cells are filled.
	Targets []string
}

type EnrichInput struct {
	// DryRun performs the lookups but writes nothing.
	DryRun bool
	// Limit caps the number of lookups; zero means no cap.
	Limit int
}

type EnrichResult struct {
	Targets         int                    `json:"targets"`
	Rows            int                    `json:"rows"`
	Unkeyable       int                    `json:"unkeyable"`
	Known           int                    `json:"known"`
	CoolingDown     int                    `json:"cooling_down"`
	Candidates      int                    `json:"candidates"`
	LookedUp        int                    `json:"looked_up"`
	Resolved        int                    `json:"resolved"`
	Conflicts       int                    `json:"conflicts"`
	Failures        map[namemap.Reason]int `json:"failures"`
	RowsFilled      int                    `json:"rows_filled"`
	TablesRewritten int                    `json:"tables_rewritten"`
	WorkerCount     int                    `json:"worker_count"`
	DryRun          bool                   `json:"dry_run"`
}

type EnrichmentService struct {
	names  namemap.Repository
	lookup namemap.Lookup
	tables TableStore
	cfg    EnrichmentConfig
	logger *logging.Logger
	now    func() time.Time
}

func NewEnrichmentService(
	names namemap.Repository,
	lookup namemap.Lookup,
	tables TableStore,
	cfg EnrichmentConfig,
	logger *logging.Logger,
) *EnrichmentService {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.Source) == "" {
		cfg.Source = "lookup"
	}
	return &EnrichmentService{
		names:  names,
		lookup: lookup,
		tables: tables,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

type enrichTarget struct {
	path  string
	table tabular.Table
}

type lookupResult struct {
	key    player.Key
	nameJA string
	reason namemap.Reason
	ok     bool
}

// Run looks up localized names for every keyed target row that the name
// map cannot answer, merges the outcomes once all lookups finish and
// rewrites the name map, the failure cache and the targets.
func (s *EnrichmentService) Run(ctx context.Context, input EnrichInput) (EnrichResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.Run")
	defer span.End()

	if s.names == nil || s.lookup == nil || s.tables == nil {
		return EnrichResult{}, fmt.Errorf("%w: enrichment is not fully configured", ErrDependencyUnavailable)
	}
	if input.Limit < 0 {
		return EnrichResult{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	store, err := s.loadStore(ctx)
	if err != nil {
		return EnrichResult{}, err
	}
	targets, err := s.loadTargets(ctx)
	if err != nil {
		return EnrichResult{}, err
	}

	result := EnrichResult{
		Targets:  len(targets),
		Failures: make(map[namemap.Reason]int),
		DryRun:   input.DryRun,
	}

	now := s.now()
	keys := s.collectCandidates(targets, store, now, &result)
	if input.Limit > 0 && len(keys) > input.Limit {
		keys = keys[:input.Limit]
	}

	results, workerCount, err := s.lookupAll(ctx, keys)
	if err != nil {
		return EnrichResult{}, err
	}
	result.LookedUp = len(keys)
	result.WorkerCount = workerCount

	for _, r := range results {
		if !r.ok {
			store.RecordFailure(r.key, r.reason, now)
			result.Failures[r.reason]++
			continue
		}
		upsertErr := store.Upsert(namemap.Entry{
			NameEN:    r.key.Name,
			BirthDate: r.key.BirthDate,
			NameJA:    r.nameJA,
			Source:    s.cfg.Source,
			UpdatedAt: now,
		})
		if upsertErr != nil {
			result.Conflicts++
			s.logger.WarnContext(ctx, "name map upsert rejected", "key", r.key.String(), "error", upsertErr)
			continue
		}
		result.Resolved++
	}

	for i := range targets {
		filled := fillNames(targets[i].table, store)
		result.RowsFilled += filled
		if filled == 0 || input.DryRun {
			continue
		}
		if err := s.tables.SaveTable(ctx, targets[i].path, targets[i].table); err != nil {
			return result, fmt.Errorf("rewrite %s: %w", targets[i].path, err)
		}
		result.TablesRewritten++
	}

	if !input.DryRun {
		if err := s.names.SaveEntries(ctx, store.Entries()); err != nil {
			return result, fmt.Errorf("save name map: %w", err)
		}
		if err := s.names.SaveFailures(ctx, store.Failures()); err != nil {
			return result, fmt.Errorf("save name map failures: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "name enrichment finished",
		"candidates", result.Candidates,
		"looked_up", result.LookedUp,
		"resolved", result.Resolved,
		"notfound", result.Failures[namemap.ReasonNotFound],
		"ambiguous", result.Failures[namemap.ReasonAmbiguous],
		"no_ja", result.Failures[namemap.ReasonNoJA],
		"api_error", result.Failures[namemap.ReasonAPIError],
		"rows_filled", result.RowsFilled,
		"dry_run", input.DryRun,
	)
	return result, nil
}

func (s *EnrichmentService) loadStore(ctx context.Context) (*namemap.Store, error) {
	entries, err := s.names.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load name map: %w", err)
	}
	failures, err := s.names.ListFailures(ctx)
	if err != nil {
		return nil, fmt.Errorf("load name map failures: %w", err)
	}

	store := namemap.NewStore(namemap.Options{Strict: s.cfg.Strict})
	skipped, err := store.Load(entries, failures)
	if err != nil {
		return nil, fmt.Errorf("%w: name map: %v", ErrInvalidInput, err)
	}
	if skipped > 0 {
		s.logger.WarnContext(ctx, "name map rows skipped", "count", skipped)
	}
	return store, nil
}

func (s *EnrichmentService) loadTargets(ctx context.Context) ([]enrichTarget, error) {
	out := make([]enrichTarget, 0, len(s.cfg.Targets))
	for _, path := range s.cfg.Targets {
		table, found, err := s.tables.LoadTable(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load target %s: %w", path, err)
		}
		if !found {
			s.logger.DebugContext(ctx, "enrichment target missing", "path", path)
			continue
		}
		if !table.HasColumn(columnNameEN) || !table.HasColumn(columnBirthDate) {
			s.logger.WarnContext(ctx, "enrichment target lacks identity columns", "path", path)
			continue
		}
		if !table.HasColumn(columnNameJA) {
			table.Header = append(table.Header, columnNameJA)
		}
		out = append(out, enrichTarget{path: path, table: table})
	}
	return out, nil
}

// collectCandidates returns the keys that need a lookup, in first appearance
// order. Keys sharing an alias variant are looked up once.
func (s *EnrichmentService) collectCandidates(targets []enrichTarget, store *namemap.Store, now time.Time, result *EnrichResult) []player.Key {
	seen := make(map[string]struct{})
	var keys []player.Key
	for _, target := range targets {
		for _, row := range target.table.Rows {
			result.Rows++
			if strings.TrimSpace(row.Get(columnNameJA)) != "" {
				continue
			}
			key := player.NewKey(row.Get(columnNameEN), row.Get(columnBirthDate))
			if !key.Valid() {
				result.Unkeyable++
				continue
			}
			if seenAny(seen, key.Variants()) {
				continue
			}
			for _, variant := range key.Variants() {
				seen[variant] = struct{}{}
			}

			if _, ok := store.Lookup(key.Name, key.BirthDate); ok {
				result.Known++
				continue
			}
			if store.ShouldSkip(key, now, s.cfg.Cooldown) {
				result.CoolingDown++
				continue
			}
			keys = append(keys, key)
		}
	}
	result.Candidates = len(keys)
	return keys
}

// lookupAll runs the lookups on a bounded pool. Each task writes only its
// own slot, so no shared map is touched until the caller merges.
func (s *EnrichmentService) lookupAll(ctx context.Context, keys []player.Key) ([]lookupResult, int, error) {
	if len(keys) == 0 {
		return nil, 0, nil
	}

	workerCount := normalizeWorkerCount(s.cfg.Workers, len(keys))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]lookupResult, len(keys))
	var workers sync.WaitGroup
	for i, key := range keys {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[i] = s.lookupOne(ctx, key)
		}); err != nil {
			workers.Done()
			results[i] = lookupResult{key: key, reason: namemap.ReasonAPIError}
			s.logger.WarnContext(ctx, "submit lookup to worker pool failed", "key", key.String(), "error", err)
		}
	}
	workers.Wait()

	sort.SliceStable(results, func(i, j int) bool { return results[i].key.String() < results[j].key.String() })
	return results, workerCount, nil
}

func (s *EnrichmentService) lookupOne(ctx context.Context, key player.Key) lookupResult {
	candidates, err := s.lookup.LookupPlayer(ctx, key.Name, key.BirthDate)
	if err != nil {
		s.logger.DebugContext(ctx, "name lookup failed", "key", key.String(), "error", err)
		return lookupResult{key: key, reason: namemap.ReasonAPIError}
	}
	nameJA, reason, ok := namemap.Classify(candidates)
	return lookupResult{key: key, nameJA: nameJA, reason: reason, ok: ok}
}

// fillNames writes name map hits into empty name_ja cells and returns the
// number of rows changed.
func fillNames(table tabular.Table, store *namemap.Store) int {
	filled := 0
	for _, row := range table.Rows {
		if strings.TrimSpace(row.Get(columnNameJA)) != "" {
			continue
		}
		entry, ok := store.Lookup(row.Get(columnNameEN), row.Get(columnBirthDate))
		if !ok {
			continue
		}
		row[columnNameJA] = entry.NameJA
		filled++
	}
	return filled
}

func seenAny(seen map[string]struct{}, variants []string) bool {
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			return true
		}
	}
	return false
}

func normalizeWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultEnrichmentWorkers
	}
	if workers > maxEnrichmentWorkers {
		workers = maxEnrichmentWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	return workers
}
