// Package quiz generates interview quizzes, grades attempts and keeps the
// assessment history.
package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/career-coach/internal/extract"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/metrics"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

const feature = "quiz"

// Request selects what a quiz covers. Industry and Skills are the focus when
// Topics is empty.
type Request struct {
	Count    int
	Topics   []string
	Industry string
	Skills   []string
}

// Generator asks the oracle for quizzes and improvement tips.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// NewGenerator creates a Generator around client.
func NewGenerator(client llm.Client, l *zap.Logger) *Generator {
	return &Generator{client: client, logger: logger.OrNop(l)}
}

// Generate returns exactly req.Count questions. Every failure is a
// *GenerationError whose message is GenerationFailedMessage.
func (g *Generator) Generate(ctx context.Context, req Request) ([]types.Question, error) {
	questions, err := g.generate(ctx, req)
	if err != nil {
		g.logger.Warn("quiz generation failed",
			zap.Int("count", req.Count),
			zap.Strings("topics", req.Topics),
			zap.Error(err))
		return nil, &GenerationError{Cause: err}
	}
	return questions, nil
}

func (g *Generator) generate(ctx context.Context, req Request) ([]types.Question, error) {
	p, err := prompts.Quiz(prompts.QuizParams{
		Count:            req.Count,
		Topics:           req.Topics,
		FallbackIndustry: req.Industry,
		FallbackSkills:   req.Skills,
	})
	if err != nil {
		return nil, &ValidationError{Field: "count", Message: err.Error()}
	}
	prompt, err := p.Render()
	if err != nil {
		return nil, fmt.Errorf("failed to build quiz prompt: %w", err)
	}

	started := time.Now()
	raw, err := g.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeError, started)
		return nil, err
	}

	questions, err := parseQuestions(raw, req.Count, g.logger)
	if err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeError, started)
		return nil, err
	}

	metrics.ObserveOracleCall(feature, metrics.OutcomeSuccess, started)
	return questions, nil
}

// parseQuestions extracts, validates and decodes the questions in raw and
// checks that there are exactly count of them.
func parseQuestions(raw string, count int, l *zap.Logger) ([]types.Question, error) {
	obj, err := extract.Extract(raw, []string{"questions"}, extract.WithLogger(l))
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.Quiz, map[string]any(obj)); err != nil {
		return nil, err
	}

	var quiz struct {
		Questions []types.Question `json:"questions"`
	}
	if err := obj.Decode(&quiz); err != nil {
		return nil, err
	}

	if len(quiz.Questions) != count {
		return nil, fmt.Errorf("expected %d questions, got %d", count, len(quiz.Questions))
	}
	return quiz.Questions, nil
}
