package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/football-archive/pipeline/internal/app"
	"github.com/football-archive/pipeline/internal/usecase"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import spreadsheet exports into archive tables",
	}
	cmd.AddCommand(importSquadCmd())
	return cmd
}

func importSquadCmd() *cobra.Command {
	var input usecase.SquadImportInput
	cmd := &cobra.Command{
		Use:   "squad",
		Short: "Merge a block-format squad export into the club squad table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.SourcePath == "" {
				return fmt.Errorf("--file is required")
			}
			return run(func(ctx context.Context, a *app.App) error {
				result, err := a.SquadImport.Import(ctx, input)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVar(&input.SourcePath, "file", "", "Block-format CSV export")
	cmd.Flags().StringVar(&input.Season, "season", "", "Season label, e.g. 2024-25")
	cmd.Flags().StringVar(&input.Window, "window", "", "Registration window, e.g. summer")
	cmd.Flags().StringVar(&input.League, "league", "", "League display name")
	cmd.Flags().StringVar(&input.Club, "club", "", "Club display name")
	cmd.Flags().StringVar(&input.SnapshotDate, "snapshot-date", "", "Date the export was taken")
	cmd.Flags().StringVar(&input.Source, "source", "", "Source note stored on every row")
	cmd.Flags().BoolVar(&input.DryRun, "dry-run", false, "Merge and report without writing")
	return cmd
}
