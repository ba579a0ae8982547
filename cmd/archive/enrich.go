package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/football-archive/pipeline/internal/app"
	"github.com/football-archive/pipeline/internal/usecase"
)

func enrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill missing fields from external sources",
	}
	cmd.AddCommand(enrichNamesCmd())
	return cmd
}

func enrichNamesCmd() *cobra.Command {
	var (
		dryRun bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Look up Japanese player names and fill empty name_ja cells",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				result, err := a.Enrichment.Run(ctx, usecase.EnrichInput{DryRun: dryRun, Limit: limit})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run lookups but write nothing")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum lookups; 0 = no limit")
	return cmd
}
