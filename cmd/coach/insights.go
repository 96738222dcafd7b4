package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var insightsIndustry string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate market insights for an industry",
	Long:  "Ask the oracle for salary ranges, demand and trends of an industry and print the normalized result as JSON. Oracle failures print the neutral fallback insight.",
	RunE:  runInsights,
}

func init() {
	insightsCmd.Flags().StringVarP(&insightsIndustry, "industry", "i", "", "Industry name, e.g. tech-software-development (required)")
	_ = insightsCmd.MarkFlagRequired("industry")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	industry := strings.TrimSpace(insightsIndustry)
	if industry == "" {
		return fmt.Errorf("--industry must not be empty")
	}

	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	generator, closeCache, err := rt.insightsGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	return printJSON(cmd.OutOrStdout(), generator.Generate(ctx, industry))
}
