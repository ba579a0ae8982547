package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sourcegraph/conc/pool"

	"github.com/football-archive/pipeline/internal/domain/callup"
	"github.com/football-archive/pipeline/internal/domain/club"
	"github.com/football-archive/pipeline/internal/domain/matchevent"
	"github.com/football-archive/pipeline/internal/domain/namemap"
	"github.com/football-archive/pipeline/internal/domain/roster"
	"github.com/football-archive/pipeline/internal/domain/squad"
	"github.com/football-archive/pipeline/internal/domain/transfer"
	"github.com/football-archive/pipeline/internal/platform/logging"
)

// Catalog is the normalized, cross-referenced view of every archive table
// handed to the site generator.
type Catalog struct {
	Resolver   *club.Resolver
	Names      *namemap.Store
	Squads     []squad.Entry
	Callups    []callup.Entry
	Transfers  []transfer.View
	Events     []matchevent.Event
	Unresolved []club.UnresolvedPair
}

type CatalogConfig struct {
	Strict bool
}

type CatalogRepositories struct {
	Clubs     club.Repository
	Squads    squad.Repository
	Callups   callup.Repository
	Transfers transfer.Repository
	Events    matchevent.Repository
	Names     namemap.Repository
}

type CatalogService struct {
	repos  CatalogRepositories
	cfg    CatalogConfig
	logger *logging.Logger
}

func NewCatalogService(repos CatalogRepositories, cfg CatalogConfig, logger *logging.Logger) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{repos: repos, cfg: cfg, logger: logger}
}

type catalogInputs struct {
	clubs     []club.MasterRow
	leagues   []club.League
	squads    []squad.Entry
	callups   []callup.Entry
	transfers []transfer.Event
	events    []matchevent.Event
	entries   []namemap.Entry
	failures  []namemap.Failure
}

// Load reads every table, resolves club references, applies the name map
// and keeps the latest roster snapshots. Only a missing club master or an
// unreadable file fails the load.
func (s *CatalogService) Load(ctx context.Context) (Catalog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Load")
	defer span.End()

	in, err := s.loadInputs(ctx)
	if err != nil {
		return Catalog{}, err
	}

	resolver, err := s.newResolver(in.clubs, in.leagues)
	if err != nil {
		return Catalog{}, err
	}
	names, err := s.newNameStore(in.entries, in.failures)
	if err != nil {
		return Catalog{}, err
	}

	unresolved := club.NewUnresolvedSet()
	squads := resolveSquads(in.squads, resolver, unresolved)
	squads = applyNamesToSquads(squads, names)
	squads = roster.LatestSnapshots(squads, roster.SnapshotKeys[squad.Entry]{
		Group:  squad.Entry.GroupKey,
		Player: func(e squad.Entry) string { return roster.PlayerKey(e.Key(), e.NameEN, e.NameJA) },
		Date:   func(e squad.Entry) string { return e.SnapshotDate },
	})

	callups := resolveCallupClubs(in.callups, resolver, unresolved)
	callups = applyNamesToCallups(callups, names)
	callups = roster.LatestSnapshots(callups, roster.SnapshotKeys[callup.Entry]{
		Group:  callup.Entry.GroupKey,
		Player: func(e callup.Entry) string { return roster.PlayerKey(e.Key(), e.NameEN, e.NameJA) },
		Date:   func(e callup.Entry) string { return e.SnapshotDate },
	})

	catalog := Catalog{
		Resolver:   resolver,
		Names:      names,
		Squads:     squads,
		Callups:    callups,
		Transfers:  TransferViews(in.transfers, resolver),
		Events:     in.events,
		Unresolved: unresolved.Pairs(),
	}

	s.logger.InfoContext(ctx, "catalog loaded",
		"clubs", resolver.Len(),
		"squad_entries", len(catalog.Squads),
		"callups", len(catalog.Callups),
		"transfers", len(catalog.Transfers),
		"match_events", len(catalog.Events),
		"name_map_entries", names.Len(),
		"unresolved_pairs", len(catalog.Unresolved),
	)
	if len(catalog.Unresolved) > 0 {
		s.logger.WarnContext(ctx, "unresolved club references", "pairs", len(catalog.Unresolved))
	}
	return catalog, nil
}

func (s *CatalogService) loadInputs(ctx context.Context) (catalogInputs, error) {
	if s.repos.Clubs == nil {
		return catalogInputs{}, fmt.Errorf("%w: club repository is not configured", ErrDependencyUnavailable)
	}

	var in catalogInputs
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		rows, err := s.repos.Clubs.ListClubs(ctx)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: club master: %v", ErrRequiredFileMissing, err)
			}
			return fmt.Errorf("load club master: %w", err)
		}
		in.clubs = rows
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rows, err := s.repos.Clubs.ListLeagues(ctx)
		if err != nil {
			return fmt.Errorf("load league master: %w", err)
		}
		in.leagues = rows
		return nil
	})
	if s.repos.Squads != nil {
		p.Go(func(ctx context.Context) error {
			rows, err := s.repos.Squads.ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("load squads: %w", err)
			}
			in.squads = rows
			return nil
		})
	}
	if s.repos.Callups != nil {
		p.Go(func(ctx context.Context) error {
			rows, err := s.repos.Callups.ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("load callups: %w", err)
			}
			in.callups = rows
			return nil
		})
	}
	if s.repos.Transfers != nil {
		p.Go(func(ctx context.Context) error {
			rows, err := s.repos.Transfers.ListEvents(ctx)
			if err != nil {
				return fmt.Errorf("load transfers: %w", err)
			}
			in.transfers = rows
			return nil
		})
	}
	if s.repos.Events != nil {
		p.Go(func(ctx context.Context) error {
			rows, err := s.repos.Events.ListEvents(ctx)
			if err != nil {
				return fmt.Errorf("load match events: %w", err)
			}
			in.events = rows
			return nil
		})
	}
	if s.repos.Names != nil {
		p.Go(func(ctx context.Context) error {
			entries, err := s.repos.Names.ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("load name map: %w", err)
			}
			failures, err := s.repos.Names.ListFailures(ctx)
			if err != nil {
				return fmt.Errorf("load name map failures: %w", err)
			}
			in.entries, in.failures = entries, failures
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return catalogInputs{}, err
	}
	return in, nil
}

func (s *CatalogService) newResolver(rows []club.MasterRow, leagues []club.League) (*club.Resolver, error) {
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

func (s *CatalogService) newNameStore(entries []namemap.Entry, failures []namemap.Failure) (*namemap.Store, error) {
	store := namemap.NewStore(namemap.Options{Strict: s.cfg.Strict})
	skipped, err := store.Load(entries, failures)
	if err != nil {
		return nil, fmt.Errorf("%w: name map: %v", ErrInvalidInput, err)
	}
	if skipped > 0 {
		s.logger.Warn("name map rows skipped", "count", skipped)
	}
	return store, nil
}

// resolveSquads fills missing league and club keys from the display text.
// Rows that already carry a club key are trusted.
func resolveSquads(entries []squad.Entry, resolver *club.Resolver, unresolved *club.UnresolvedSet) []squad.Entry {
	out := make([]squad.Entry, len(entries))
	for i, e := range entries {
		if e.ClubKey == "" {
			if res, ok := resolver.Resolve(e.League, e.Club); ok {
				e.ClubKey = res.ClubKey
				if e.LeagueKey == "" {
					e.LeagueKey = res.LeagueKey
				}
			} else {
				unresolved.Add(e.League, e.Club)
			}
		}
		out[i] = e
	}
	return out
}

func resolveCallupClubs(entries []callup.Entry, resolver *club.Resolver, unresolved *club.UnresolvedSet) []callup.Entry {
	out := make([]callup.Entry, len(entries))
	for i, e := range entries {
		if e.CurrentClub != "" {
			if res, ok := resolver.Resolve("", e.CurrentClub); ok {
				e.CurrentClubKey = res.ClubKey
			} else {
				unresolved.Add("", e.CurrentClub)
			}
		}
		out[i] = e
	}
	return out
}

func applyNamesToSquads(entries []squad.Entry, names *namemap.Store) []squad.Entry {
	for i := range entries {
		if entries[i].NameJA != "" {
			continue
		}
		if entry, ok := names.Lookup(entries[i].NameEN, entries[i].BirthDate); ok {
			entries[i].NameJA = entry.NameJA
		}
	}
	return entries
}

func applyNamesToCallups(entries []callup.Entry, names *namemap.Store) []callup.Entry {
	for i := range entries {
		if entries[i].NameJA != "" {
			continue
		}
		if entry, ok := names.Lookup(entries[i].NameEN, entries[i].BirthDate); ok {
			entries[i].NameJA = entry.NameJA
		}
	}
	return entries
}

// TransferViews resolves both club keys of every transfer. An unknown key
// is shown as its raw text without a link.
func TransferViews(events []transfer.Event, resolver *club.Resolver) []transfer.View {
	out := make([]transfer.View, 0, len(events))
	for _, e := range events {
		out = append(out, transfer.View{
			Event: e,
			From:  clubRef(e.FromClubKey, resolver),
			To:    clubRef(e.ToClubKey, resolver),
		})
	}
	return out
}

func clubRef(key string, resolver *club.Resolver) transfer.ClubRef {
	if key == "" {
		return transfer.ClubRef{}
	}
	if resolver != nil {
		if row, ok := resolver.ByKey(key); ok {
			return transfer.ClubRef{Key: row.ClubKey, DisplayJA: row.DisplayJA, DisplayEN: row.DisplayEN, Linked: true}
		}
	}
	return transfer.ClubRef{DisplayJA: key, DisplayEN: key}
}
