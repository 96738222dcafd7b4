package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/insights"
	"github.com/spf13/cobra"
)

var refreshConcurrency int

var refreshInsightsCmd = &cobra.Command{
	Use:   "refresh-insights",
	Short: "Regenerate stored insights that are due for an update",
	Long:  "Regenerate every stored industry insight whose next update time has passed. Industries whose regeneration fails keep their previous insight. Intended to run weekly from a scheduler.",
	RunE:  runRefreshInsights,
}

func init() {
	refreshInsightsCmd.Flags().IntVarP(&refreshConcurrency, "concurrency", "c", 0, "Industries refreshed in parallel (default: insights.refresh_concurrency)")
	rootCmd.AddCommand(refreshInsightsCmd)
}

func runRefreshInsights(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, rt.cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	generator, closeCache, err := rt.insightsGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	concurrency := refreshConcurrency
	if concurrency <= 0 {
		concurrency = rt.cfg.Insights.RefreshConcurrency
	}

	report, err := insights.NewService(database, generator, rt.cfg.Insights.TTL, rt.logger).RefreshStale(ctx, concurrency)
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d industries failed to refresh", len(report.Failed), len(report.Failed)+len(report.Refreshed))
	}
	return nil
}
