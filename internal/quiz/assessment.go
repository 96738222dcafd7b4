package quiz

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

// Store is the persistence the assessment service needs.
type Store interface {
	CreateAssessment(ctx context.Context, a *types.Assessment) error
	ListAssessments(ctx context.Context, userID uuid.UUID) ([]types.Assessment, error)
}

// Service grades and records quiz attempts.
type Service struct {
	store     Store
	generator *Generator
	logger    *zap.Logger
}

// NewService creates a Service.
func NewService(store Store, generator *Generator, l *zap.Logger) *Service {
	return &Service{store: store, generator: generator, logger: logger.OrNop(l)}
}

// SaveResult grades answers, asks for an improvement tip and stores the
// attempt. count must be positive; empty topics become ["General"].
func (s *Service) SaveResult(ctx context.Context, userID uuid.UUID, req types.SaveAssessmentRequest) (*types.Assessment, error) {
	if req.Count <= 0 {
		return nil, &ValidationError{Field: "count", Message: "Invalid quiz configuration"}
	}

	grading, err := Grade(req.Questions, req.Answers)
	if err != nil {
		return nil, err
	}

	topics := req.Topics
	if len(topics) == 0 {
		topics = []string{DefaultTopic}
	}

	difficulty := DefaultDifficulty
	if len(grading.Results) > 0 {
		difficulty = grading.Results[0].Difficulty
	}

	assessment := &types.Assessment{
		UserID:         userID,
		QuizScore:      grading.Score,
		Questions:      grading.Results,
		QuestionCount:  req.Count,
		Topics:         topics,
		Difficulty:     difficulty,
		ImprovementTip: s.generator.ImprovementTip(ctx, WeakTopics(grading.Results)),
	}

	if err := s.store.CreateAssessment(ctx, assessment); err != nil {
		return nil, &SaveError{Cause: err}
	}

	s.logger.Info("assessment saved",
		zap.String("user_id", userID.String()),
		zap.Float64("score", assessment.QuizScore),
		zap.Int("questions", assessment.QuestionCount))
	return assessment, nil
}

// List returns the user's assessments, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]types.Assessment, error) {
	assessments, err := s.store.ListAssessments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}
	return assessments, nil
}

// Stats summarizes the user's history.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*types.AssessmentStats, error) {
	assessments, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := Summarize(assessments)
	return &stats, nil
}

// Summarize computes stats over assessments ordered newest first. The average
// is rounded to one decimal.
func Summarize(assessments []types.Assessment) types.AssessmentStats {
	stats := types.AssessmentStats{Assessments: len(assessments)}
	if len(assessments) == 0 {
		return stats
	}

	var total float64
	for _, a := range assessments {
		total += a.QuizScore
		stats.TotalQuestions += len(a.Questions)
	}
	stats.AverageScore = math.Round(total/float64(len(assessments))*10) / 10
	stats.LatestScore = assessments[0].QuizScore
	return stats
}
