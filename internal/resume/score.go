// Package resume reviews resumes for ATS compatibility and turns uploaded files
// into plain text.
package resume

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/extract"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/metrics"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

const feature = "resume"

// User-facing messages
const (
	MissingCredentialMessage = "Missing Gemini API key. Please add GEMINI_API_KEY to your environment."
	InvalidCredentialMessage = "Invalid Gemini API key. Please check GEMINI_API_KEY in your environment."
	unparseablePrefix        = "Could not parse the AI response as valid JSON."
	otherPrefix              = "Error analyzing resume: "
)

var requiredFields = []string{"atsScore", "overallFeedback"}

// Scorer asks the oracle for ATS reviews.
type Scorer struct {
	client llm.Client
	logger *zap.Logger
}

// NewScorer creates a Scorer around client.
func NewScorer(client llm.Client, l *zap.Logger) *Scorer {
	return &Scorer{client: client, logger: logger.OrNop(l)}
}

// ScoreResume reviews text. atsScore and overallFeedback must be present and
// truthy in the reply. Every failure is a *ScoreError.
func (s *Scorer) ScoreResume(ctx context.Context, text string) (*types.ResumeScore, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ScoreError{Kind: KindOther, Message: otherPrefix + "resume text is empty"}
	}

	prompt, err := prompts.ResumeScore(text).Render()
	if err != nil {
		return nil, &ScoreError{Kind: KindOther, Message: otherPrefix + err.Error(), Cause: err}
	}

	started := time.Now()
	raw, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeError, started)
		s.logger.Warn("resume scoring call failed", zap.Error(err))
		return nil, oracleScoreError(err)
	}

	obj, err := extract.Extract(raw, requiredFields,
		extract.RequireTruthy(requiredFields...),
		extract.WithLogger(s.logger))
	if err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeError, started)
		return nil, extractionScoreError(err)
	}

	var score types.ResumeScore
	if err := obj.Decode(&score); err != nil {
		metrics.ObserveOracleCall(feature, metrics.OutcomeError, started)
		s.logger.Warn("resume score reply has unexpected field types", zap.Error(err))
		return nil, &ScoreError{Kind: KindOther, Message: otherPrefix + "unexpected response format: " + err.Error(), Cause: err}
	}
	if score.ActionableImprovements == nil {
		score.ActionableImprovements = []string{}
	}
	if score.KeywordMatch.MissingKeywords == nil {
		score.KeywordMatch.MissingKeywords = []string{}
	}

	metrics.ObserveOracleCall(feature, metrics.OutcomeSuccess, started)
	s.logger.Info("resume scored",
		zap.Float64("ats_score", float64(score.ATSScore)),
		zap.String("rating", string(score.Rating())))
	return &score, nil
}

func oracleScoreError(err error) *ScoreError {
	oe, ok := llm.AsOracleError(err)
	if ok {
		switch oe.Kind {
		case llm.KindMissingCredential:
			return &ScoreError{Kind: KindMissingCredential, Message: MissingCredentialMessage, Cause: err}
		case llm.KindInvalidCredential:
			return &ScoreError{Kind: KindInvalidCredential, Message: InvalidCredentialMessage, Cause: err}
		}
	}
	return &ScoreError{Kind: KindOther, Message: otherPrefix + err.Error(), Cause: err}
}

func extractionScoreError(err error) *ScoreError {
	f, ok := extract.AsFailure(err)
	if ok && f.Reason == extract.ReasonUnparseable {
		msg := unparseablePrefix
		if f.Cause != nil {
			msg = fmt.Sprintf("%s %v", msg, f.Cause)
		}
		return &ScoreError{Kind: KindUnparseable, Message: msg, Cause: err}
	}
	return &ScoreError{Kind: KindOther, Message: otherPrefix + "The parsed JSON is missing required fields", Cause: err}
}
