package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-coach/internal/types"
)

const insightColumns = `id, industry, salary_ranges, growth_rate, demand_level, top_skills,
	market_outlook, key_trends, recommended_skills, last_updated, next_update`

func scanInsight(row pgx.Row) (*types.StoredInsight, error) {
	var (
		s           types.StoredInsight
		salaryBytes []byte
		demand      string
		outlook     string
	)
	err := row.Scan(&s.ID, &s.Industry, &salaryBytes, &s.GrowthRate, &demand, &s.TopSkills,
		&outlook, &s.KeyTrends, &s.RecommendedSkills, &s.LastUpdated, &s.NextUpdate)
	if err != nil {
		return nil, err
	}
	s.DemandLevel = types.DemandLevel(demand)
	s.MarketOutlook = types.MarketOutlook(outlook)
	if len(salaryBytes) > 0 {
		if err := json.Unmarshal(salaryBytes, &s.SalaryRanges); err != nil {
			return nil, fmt.Errorf("failed to decode salary ranges: %w", err)
		}
	}
	return &s, nil
}

// GetInsight retrieves the stored insight for industry. Returns nil, nil when not found.
func (db *DB) GetInsight(ctx context.Context, industry string) (*types.StoredInsight, error) {
	s, err := scanInsight(db.pool.QueryRow(ctx,
		`SELECT `+insightColumns+` FROM industry_insights WHERE industry = $1`, industry))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get insight for %s: %w", industry, err)
	}
	return s, nil
}

// UpsertInsight stores insight for industry, replacing any previous row
func (db *DB) UpsertInsight(ctx context.Context, industry string, insight types.IndustryInsight, nextUpdate time.Time) (*types.StoredInsight, error) {
	salaryBytes, err := json.Marshal(nonNilSalaries(insight.SalaryRanges))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal salary ranges: %w", err)
	}

	s, err := scanInsight(db.pool.QueryRow(ctx,
		`INSERT INTO industry_insights
		   (industry, salary_ranges, growth_rate, demand_level, top_skills,
		    market_outlook, key_trends, recommended_skills, last_updated, next_update)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), $9)
		 ON CONFLICT (industry) DO UPDATE SET
		   salary_ranges = $2, growth_rate = $3, demand_level = $4, top_skills = $5,
		   market_outlook = $6, key_trends = $7, recommended_skills = $8,
		   last_updated = NOW(), next_update = $9
		 RETURNING `+insightColumns,
		industry, salaryBytes, insight.GrowthRate, string(insight.DemandLevel),
		nonNil(insight.TopSkills), string(insight.MarketOutlook),
		nonNil(insight.KeyTrends), nonNil(insight.RecommendedSkills), nextUpdate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save insight for %s: %w", industry, err)
	}
	return s, nil
}

// ListStaleIndustries returns the industries whose next_update is at or before now
func (db *DB) ListStaleIndustries(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT industry FROM industry_insights WHERE next_update <= $1 ORDER BY next_update ASC`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale insights: %w", err)
	}
	defer rows.Close()

	var industries []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, fmt.Errorf("failed to scan industry: %w", err)
		}
		industries = append(industries, industry)
	}
	return industries, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSalaries(s []types.SalaryRange) []types.SalaryRange {
	if s == nil {
		return []types.SalaryRange{}
	}
	return s
}
