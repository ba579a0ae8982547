package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/football-archive/pipeline/internal/domain/matchevent"
	"github.com/football-archive/pipeline/internal/domain/stats"
)

type RankingKind string

const (
	RankingGoals        RankingKind = "goals"
	RankingAssists      RankingKind = "assists"
	RankingGoalsAssists RankingKind = "goals_assists"
)

type StatsService struct {
	repo matchevent.Repository
}

func NewStatsService(repo matchevent.Repository) *StatsService {
	return &StatsService{repo: repo}
}

// Ranking ranks one competition edition by the requested metric.
func (s *StatsService) Ranking(ctx context.Context, kind RankingKind, competition, edition string) ([]stats.Ranked, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Ranking")
	defer span.End()

	competition = strings.TrimSpace(competition)
	edition = strings.TrimSpace(edition)
	if competition == "" || edition == "" {
		return nil, fmt.Errorf("%w: competition and edition are required", ErrInvalidInput)
	}

	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case RankingGoals:
		return stats.GoalRanking(events, competition, edition), nil
	case RankingAssists:
		return stats.AssistRanking(events, competition, edition), nil
	case RankingGoalsAssists:
		return stats.GoalsAssistsRanking(events, competition, edition), nil
	default:
		return nil, fmt.Errorf("%w: unknown ranking %q", ErrInvalidInput, kind)
	}
}

// TeamScorers ranks every scorer of a team. An empty competition spans all
// competitions.
func (s *StatsService) TeamScorers(ctx context.Context, team, competition string) ([]stats.Ranked, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamScorers")
	defer span.End()

	if strings.TrimSpace(team) == "" {
		return nil, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	return stats.TeamScorers(events, team, strings.TrimSpace(competition)), nil
}

func (s *StatsService) PlayerCareer(ctx context.Context, player string) ([]stats.EditionLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerCareer")
	defer span.End()

	if strings.TrimSpace(player) == "" {
		return nil, fmt.Errorf("%w: player is required", ErrInvalidInput)
	}
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	lines := stats.PlayerCareer(events, player)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no goals or assists for %q", ErrNotFound, player)
	}
	return lines, nil
}

func (s *StatsService) EditionTotals(ctx context.Context, competition string) ([]stats.EditionLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.EditionTotals")
	defer span.End()

	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	return stats.EditionTotals(events, strings.TrimSpace(competition)), nil
}

func (s *StatsService) events(ctx context.Context) ([]matchevent.Event, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: match event repository is not configured", ErrDependencyUnavailable)
	}
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load match events: %w", err)
	}
	return events, nil
}
