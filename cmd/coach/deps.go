package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/insights"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logger"
	"go.uber.org/zap"
)

// newOracle builds the oracle client. Tests replace it with a scripted client.
var newOracle = func(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	return llm.NewClient(ctx, oracleConfig(cfg), cfg.APIKey)
}

// loadConfig reads configuration using the --config flag.
var loadConfig = func() (*config.Config, error) {
	return config.Load(configPath)
}

func oracleConfig(cfg config.LLMConfig) *llm.Config {
	c := llm.DefaultConfig()
	if cfg.Timeout > 0 {
		c = c.WithTimeout(cfg.Timeout)
	}
	if cfg.Temperature > 0 {
		c.Temperature = cfg.Temperature
	}
	models := map[llm.ModelTier]string{
		llm.TierLite:     cfg.LiteModel,
		llm.TierStandard: cfg.StandardModel,
		llm.TierAdvanced: cfg.AdvancedModel,
	}
	for tier, model := range models {
		if model != "" {
			c = c.WithModel(tier, model)
		}
	}
	return c
}

// runtime holds what every subcommand needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	oracle llm.Client
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	oracle, err := newOracle(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle client: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; oracle-backed features will fail")
	}
	return &runtime{cfg: cfg, logger: log, oracle: oracle}, nil
}

func (r *runtime) Close() {
	_ = r.oracle.Close()
	_ = r.logger.Sync()
}

// insightsGenerator builds a generator, with the Redis cache when configured.
// The returned cleanup closes the cache.
func (r *runtime) insightsGenerator(ctx context.Context) (*insights.Generator, func(), error) {
	opts := []insights.GeneratorOption{insights.WithLogger(r.logger)}
	cleanup := func() {}

	if r.cfg.Redis.Address != "" {
		cache, err := insights.NewRedisCache(ctx, r.cfg.Redis.Address, r.cfg.Redis.Password, r.cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, insights.WithCache(cache, r.cfg.Insights.TTL))
		cleanup = func() { _ = cache.Close() }
	}
	return insights.NewGenerator(r.oracle, opts...), cleanup, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
