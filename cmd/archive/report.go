package main

import (
	"context"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/football-archive/pipeline/internal/app"
	"github.com/football-archive/pipeline/internal/domain/club"
)

type unresolvedReport struct {
	Pairs []club.UnresolvedPair `json:"pairs"`
	Total int                   `json:"total"`
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Consistency reports over the archive tables",
	}
	cmd.AddCommand(reportUnresolvedCmd())
	return cmd
}

func reportUnresolvedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unresolved",
		Short: "List (league, club) pairs missing from the club master",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				catalog, err := a.Catalog.Load(ctx)
				if err != nil {
					return err
				}
				report := unresolvedReport{Pairs: catalog.Unresolved}
				if report.Pairs == nil {
					report.Pairs = []club.UnresolvedPair{}
				}
				for _, p := range report.Pairs {
					report.Total += p.Count
				}
				return writeJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}
