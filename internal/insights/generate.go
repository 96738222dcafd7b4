// Package insights generates, caches and stores industry market insights.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/career-coach/internal/extract"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/mapping"
	"github.com/jonathan/career-coach/internal/metrics"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

const feature = "insights"

// DefaultGrowthRate replaces an absent or zero growthRate in an oracle reply.
const DefaultGrowthRate = 5.0

// Generator produces industry insights from the oracle.
type Generator struct {
	client llm.Client
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithCache puts cache in front of the oracle. Entries live for ttl.
func WithCache(cache Cache, ttl time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.cache = cache
		g.ttl = ttl
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger.OrNop(l)
	}
}

// NewGenerator creates a Generator around client.
func NewGenerator(client llm.Client, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the insight for industry. It never fails: any oracle or
// extraction error yields Fallback().
func (g *Generator) Generate(ctx context.Context, industry string) types.IndustryInsight {
	insight, err := g.TryGenerate(ctx, industry)
	if err != nil {
		g.logger.Warn("serving fallback industry insight",
			zap.String("industry", industry),
			zap.Error(err))
		return Fallback()
	}
	return insight
}

// TryGenerate is Generate without the fallback. A cached insight is returned
// without calling the oracle.
func (g *Generator) TryGenerate(ctx context.Context, industry string) (types.IndustryInsight, error) {
	if g.cache != nil {
		cached, ok, err := g.cache.Get(ctx, industry)
		if err != nil {
			g.logger.Warn("insight cache read failed", zap.String("industry", industry), zap.Error(err))
		} else if ok {
			return *cached, nil
		}
	}
	return g.Regenerate(ctx, industry)
}

// Regenerate always asks the oracle and refreshes the cache on success.
func (g *Generator) Regenerate(ctx context.Context, industry string) (types.IndustryInsight, error) {
	insight, err := g.fromOracle(ctx, industry)
	if err != nil {
		return types.IndustryInsight{}, err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, industry, insight, g.ttl); err != nil {
			g.logger.Warn("insight cache write failed", zap.String("industry", industry), zap.Error(err))
		}
	}
	return insight, nil
}

func (g *Generator) fromOracle(ctx context.Context, industry string) (types.IndustryInsight, error) {
	prompt, err := prompts.IndustryInsight(industry).Render()
	if err != nil {
		return types.IndustryInsight{}, fmt.Errorf("failed to build insight prompt: %w", err)
	}

	started := time.Now()
	raw, err := g.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeFallback, started)
		return types.IndustryInsight{}, err
	}

	obj, err := extract.Extract(raw, nil, extract.WithLogger(g.logger))
	if err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeFallback, started)
		return types.IndustryInsight{}, err
	}

	metrics.ObserveOracleCall(feature, metrics.OutcomeSuccess, started)
	warnUnmapped(g.logger, industry, mapping.DemandLevels, obj["demandLevel"])
	warnUnmapped(g.logger, industry, mapping.MarketOutlooks, obj["marketOutlook"])
	return FromObject(obj), nil
}

func warnUnmapped[T ~string](l *zap.Logger, industry string, m mapping.Mapping[T], raw any) {
	if _, ok := m.Lookup(raw); ok {
		return
	}
	l.Warn("unrecognized insight label, using default",
		zap.String("industry", industry),
		zap.String("field", m.Field),
		zap.Any("value", raw),
		zap.String("default", string(m.Default)))
}

// FromObject maps an extracted oracle reply onto an IndustryInsight.
// Absent arrays become empty, a falsy growthRate becomes DefaultGrowthRate and
// unknown enum labels take the mapping defaults.
func FromObject(obj extract.Object) types.IndustryInsight {
	return types.IndustryInsight{
		SalaryRanges:      salaryRanges(obj["salaryRanges"]),
		GrowthRate:        mapping.Number(obj["growthRate"], DefaultGrowthRate),
		DemandLevel:       mapping.DemandLevels.Normalize(obj["demandLevel"]),
		TopSkills:         mapping.Strings(obj["topSkills"]),
		MarketOutlook:     mapping.MarketOutlooks.Normalize(obj["marketOutlook"]),
		KeyTrends:         mapping.Strings(obj["keyTrends"]),
		RecommendedSkills: mapping.Strings(obj["recommendedSkills"]),
	}
}

func salaryRanges(raw any) []types.SalaryRange {
	arr, ok := raw.([]any)
	if !ok {
		return []types.SalaryRange{}
	}
	out := make([]types.SalaryRange, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var r types.SalaryRange
		if err := extract.Object(m).Decode(&r); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}
