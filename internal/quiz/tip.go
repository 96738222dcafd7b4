package quiz

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/metrics"
	"github.com/jonathan/career-coach/internal/prompts"
	"go.uber.org/zap"
)

// Static tips
const (
	PerfectScoreTip = "Great job! Keep practicing to maintain your skills."
	FallbackTip     = "Focus on practicing the highlighted areas and review fundamental concepts."
)

// MaxTipLength bounds a tip, in characters.
const MaxTipLength = 280

const tipFeature = "improvement_tip"

var tipReplacer = strings.NewReplacer(`"`, "", "*", "", "\r\n", " ", "\n", " ")

// ImprovementTip returns a short study recommendation for weakTopics. With no
// weak topics it returns PerfectScoreTip without calling the oracle. It never
// fails: errors and empty replies give FallbackTip.
func (g *Generator) ImprovementTip(ctx context.Context, weakTopics []string) string {
	if len(weakTopics) == 0 {
		return PerfectScoreTip
	}

	prompt, err := prompts.ImprovementTip(weakTopics).Render()
	if err != nil {
		g.logger.Warn("failed to build improvement tip prompt", zap.Error(err))
		return FallbackTip
	}

	started := time.Now()
	raw, err := g.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		metrics.ObserveOracleCall(tipFeature, metrics.OutcomeFallback, started)
		g.logger.Warn("improvement tip generation failed", zap.Error(err))
		return FallbackTip
	}

	tip := CleanTip(raw)
	if tip == "" {
		metrics.ObserveOracleCall(tipFeature, metrics.OutcomeFallback, started)
		return FallbackTip
	}
	metrics.ObserveOracleCall(tipFeature, metrics.OutcomeSuccess, started)
	return tip
}

// CleanTip trims the reply, then strips quotes and asterisks, flattens
// newlines and truncates to MaxTipLength characters. Whitespace exposed by the
// stripping or the cut is kept.
func CleanTip(raw string) string {
	tip := tipReplacer.Replace(strings.TrimSpace(raw))
	if runes := []rune(tip); len(runes) > MaxTipLength {
		tip = string(runes[:MaxTipLength])
	}
	return tip
}
