package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/football-archive/pipeline/internal/app"
	"github.com/football-archive/pipeline/internal/domain/stats"
	"github.com/football-archive/pipeline/internal/usecase"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Scorer and assist rankings from match events",
	}
	cmd.AddCommand(rankEditionCmd("goals", "Goal ranking of one edition", usecase.RankingGoals))
	cmd.AddCommand(rankEditionCmd("assists", "Assist ranking of one edition", usecase.RankingAssists))
	cmd.AddCommand(rankEditionCmd("goals-assists", "Goals plus assists ranking of one edition", usecase.RankingGoalsAssists))
	cmd.AddCommand(rankTeamCmd())
	cmd.AddCommand(rankCareerCmd())
	return cmd
}

func rankEditionCmd(use, short string, kind usecase.RankingKind) *cobra.Command {
	var (
		competition, edition string
		asJSON               bool
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				rows, err := a.Stats.Ranking(ctx, kind, competition, edition)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), rows)
				}
				return writeRanking(cmd.OutOrStdout(), rows)
			})
		},
	}
	cmd.Flags().StringVar(&competition, "competition", "", "Competition name")
	cmd.Flags().StringVar(&edition, "edition", "", "Edition, e.g. 2022")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func rankTeamCmd() *cobra.Command {
	var team, competition string
	cmd := &cobra.Command{
		Use:   "team",
		Short: "All-time scorers of one team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				rows, err := a.Stats.TeamScorers(ctx, team, competition)
				if err != nil {
					return err
				}
				return writeRanking(cmd.OutOrStdout(), rows)
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Team name")
	cmd.Flags().StringVar(&competition, "competition", "", "Competition name; empty = all")
	return cmd
}

func rankCareerCmd() *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Goals and assists of one player per edition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				lines, err := a.Stats.PlayerCareer(ctx, player)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "COMPETITION\tEDITION\tGOALS\tASSISTS")
				for _, l := range lines {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", l.Competition, l.Edition, l.Goals, l.Assists)
				}
				total := stats.CareerTotal(lines)
				fmt.Fprintf(tw, "TOTAL\t\t%d\t%d\n", total.Goals, total.Assists)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "Player name as written in match events")
	return cmd
}

func writeRanking(w io.Writer, rows []stats.Ranked) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tTEAM\tGOALS\tASSISTS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", r.Rank, r.Player, r.Team, r.Goals, r.Assists)
	}
	return tw.Flush()
}
