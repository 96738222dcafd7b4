package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/llm/llmtest"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const scoredReply = "```json\n" + `{"atsScore":72,"overallFeedback":"Good","keywordMatch":{"score":60,"feedback":"ok","missingKeywords":["SQL"]},"formatAndStructure":{"score":80,"feedback":"fine"},"contentQuality":{"score":70,"feedback":"decent"},"actionableImprovements":["Add metrics"]}` + "\n```"

func TestScoreResume_EndToEnd(t *testing.T) {
	client := llmtest.Reply(scoredReply)
	s := NewScorer(client, zaptest.NewLogger(t))

	got, err := s.ScoreResume(context.Background(), "Jane Doe\nSoftware Engineer")
	require.NoError(t, err)

	assert.Equal(t, &types.ResumeScore{
		ATSScore:        72,
		OverallFeedback: "Good",
		KeywordMatch: types.KeywordMatch{
			Score:           60,
			Feedback:        "ok",
			MissingKeywords: []string{"SQL"},
		},
		FormatAndStructure:     types.ScoreBreakdown{Score: 80, Feedback: "fine"},
		ContentQuality:         types.ScoreBreakdown{Score: 70, Feedback: "decent"},
		ActionableImprovements: []string{"Add metrics"},
	}, got)
	assert.Equal(t, types.RatingFair, got.Rating())

	require.Len(t, client.Prompts(), 1)
	assert.Contains(t, client.Prompts()[0], "Resume content:\nJane Doe\nSoftware Engineer")
}

func TestScoreResume_SparseReplyGetsEmptyArrays(t *testing.T) {
	s := NewScorer(llmtest.Reply(`Sure: {"atsScore": 85, "overallFeedback": "Strong"}`), nil)

	got, err := s.ScoreResume(context.Background(), "resume")
	require.NoError(t, err)

	assert.Equal(t, types.Score(85), got.ATSScore)
	assert.Equal(t, types.RatingStrong, got.Rating())
	assert.NotNil(t, got.ActionableImprovements)
	assert.NotNil(t, got.KeywordMatch.MissingKeywords)
}

func TestScoreResume_QuotedScores(t *testing.T) {
	reply := `{"atsScore":"85","overallFeedback":"Strong","keywordMatch":{"score":" 60 ","feedback":"ok"},"formatAndStructure":{"score":80,"feedback":"fine"},"contentQuality":{"score":"70.5","feedback":"decent"}}`
	s := NewScorer(llmtest.Reply(reply), nil)

	got, err := s.ScoreResume(context.Background(), "resume")
	require.NoError(t, err)

	assert.Equal(t, types.Score(85), got.ATSScore)
	assert.Equal(t, types.Score(60), got.KeywordMatch.Score)
	assert.Equal(t, types.Score(80), got.FormatAndStructure.Score)
	assert.Equal(t, types.Score(70.5), got.ContentQuality.Score)
	assert.Equal(t, types.RatingStrong, got.Rating())
}

func TestScoreResume_Errors(t *testing.T) {
	tests := []struct {
		name     string
		client   *llmtest.MockClient
		text     string
		wantKind ScoreErrorKind
		wantMsg  string
	}{
		{
			name:     "missing credential",
			client:   llmtest.Fail(llm.KindMissingCredential),
			text:     "resume",
			wantKind: KindMissingCredential,
			wantMsg:  MissingCredentialMessage,
		},
		{
			name:     "invalid credential",
			client:   llmtest.Fail(llm.KindInvalidCredential),
			text:     "resume",
			wantKind: KindInvalidCredential,
			wantMsg:  InvalidCredentialMessage,
		},
		{
			name:     "unparseable reply",
			client:   llmtest.Reply("I could not read that file."),
			text:     "resume",
			wantKind: KindUnparseable,
			wantMsg:  "Could not parse the AI response as valid JSON.",
		},
		{
			name:     "zero score is missing",
			client:   llmtest.Reply(`{"atsScore": 0, "overallFeedback": "Bad"}`),
			text:     "resume",
			wantKind: KindOther,
			wantMsg:  "Error analyzing resume: The parsed JSON is missing required fields",
		},
		{
			name:     "empty feedback is missing",
			client:   llmtest.Reply(`{"atsScore": 50, "overallFeedback": ""}`),
			text:     "resume",
			wantKind: KindOther,
			wantMsg:  "Error analyzing resume: The parsed JSON is missing required fields",
		},
		{
			name:     "non-numeric sub-score",
			client:   llmtest.Reply(`{"atsScore": 70, "overallFeedback": "ok", "contentQuality": {"score": "high"}}`),
			text:     "resume",
			wantKind: KindOther,
			wantMsg:  "Error analyzing resume: unexpected response format",
		},
		{
			name:     "quota",
			client:   llmtest.Fail(llm.KindQuota),
			text:     "resume",
			wantKind: KindOther,
			wantMsg:  "Error analyzing resume: ",
		},
		{
			name:     "empty text",
			client:   llmtest.Reply(scoredReply),
			text:     "  \n ",
			wantKind: KindOther,
			wantMsg:  "Error analyzing resume: resume text is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(tt.client, nil)

			got, err := s.ScoreResume(context.Background(), tt.text)

			assert.Nil(t, got)
			se, ok := AsScoreError(err)
			require.True(t, ok, "expected *ScoreError, got %T", err)
			assert.Equal(t, tt.wantKind, se.Kind)
			assert.Contains(t, se.Error(), tt.wantMsg)
		})
	}
}

func TestScoreResume_UnwrapsOracleError(t *testing.T) {
	s := NewScorer(llmtest.Fail(llm.KindTimeout), nil)

	_, err := s.ScoreResume(context.Background(), "resume")

	var oe *llm.OracleError
	require.True(t, errors.As(err, &oe))
	assert.True(t, oe.Retryable())
}

func TestCredentialStatus(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "", want: "Not set"},
		{key: "abc1234", want: "Set but too short (invalid)"},
		{key: "abcd1234", want: "abcd...1234 (8 chars)"},
		{key: "AIzaSyExampleKeyValue9xyz", want: "AIza...9xyz (25 chars)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CredentialStatus(tt.key))
	}
}
