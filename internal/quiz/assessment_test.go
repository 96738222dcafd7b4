package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/llm/llmtest"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saved     []*types.Assessment
	createErr error
	listed    []types.Assessment
	listErr   error
}

func (f *fakeStore) CreateAssessment(_ context.Context, a *types.Assessment) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeStore) ListAssessments(_ context.Context, _ uuid.UUID) ([]types.Assessment, error) {
	return f.listed, f.listErr
}

func TestSaveResult(t *testing.T) {
	store := &fakeStore{}
	client := llmtest.Reply("Review Go interfaces.")
	svc := NewService(store, NewGenerator(client, nil), nil)
	userID := uuid.New()

	got, err := svc.SaveResult(context.Background(), userID, types.SaveAssessmentRequest{
		Questions: []types.Question{
			{Question: "Q1", CorrectAnswer: "A", Topic: "Go", Difficulty: "Hard"},
			{Question: "Q2", CorrectAnswer: "B", Topic: "Go"},
		},
		Answers: []string{"A", "C"},
		Count:   2,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, 50.0, got.QuizScore)
	assert.Equal(t, 2, got.QuestionCount)
	assert.Equal(t, []string{"General"}, got.Topics)
	assert.Equal(t, "Hard", got.Difficulty)
	assert.Equal(t, "Review Go interfaces.", got.ImprovementTip)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Medium", got.Questions[1].Difficulty)
	require.Len(t, store.saved, 1)
	assert.Contains(t, client.Prompts()[0], "topics: Go.")
}

func TestSaveResult_PerfectScoreAndTopics(t *testing.T) {
	store := &fakeStore{}
	client := llmtest.Fail(llm.KindUnavailable)
	svc := NewService(store, NewGenerator(client, nil), nil)

	got, err := svc.SaveResult(context.Background(), uuid.New(), types.SaveAssessmentRequest{
		Questions: []types.Question{{Question: "Q1", CorrectAnswer: "A"}},
		Answers:   []string{"A"},
		Count:     1,
		Topics:    []string{"Algorithms"},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.QuizScore)
	assert.Equal(t, []string{"Algorithms"}, got.Topics)
	assert.Equal(t, "Medium", got.Difficulty)
	assert.Equal(t, PerfectScoreTip, got.ImprovementTip)
	assert.Zero(t, client.Calls())
}

func TestSaveResult_Errors(t *testing.T) {
	t.Run("non-positive count", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store, NewGenerator(llmtest.Reply("tip"), nil), nil)

		_, err := svc.SaveResult(context.Background(), uuid.New(), types.SaveAssessmentRequest{Count: 0})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Empty(t, store.saved)
	})

	t.Run("database failure", func(t *testing.T) {
		store := &fakeStore{createErr: errors.New("connection refused")}
		svc := NewService(store, NewGenerator(llmtest.Reply("tip"), nil), nil)

		_, err := svc.SaveResult(context.Background(), uuid.New(), types.SaveAssessmentRequest{
			Questions: []types.Question{{Question: "Q1", CorrectAnswer: "A"}},
			Answers:   []string{"B"},
			Count:     1,
		})

		var se *SaveError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "Failed to save assessment: connection refused", err.Error())
	})
}

func TestStats(t *testing.T) {
	store := &fakeStore{listed: []types.Assessment{
		{QuizScore: 80, Questions: make([]types.QuestionResult, 5)},
		{QuizScore: 60, Questions: make([]types.QuestionResult, 5)},
		{QuizScore: 75, Questions: make([]types.QuestionResult, 4)},
	}}
	svc := NewService(store, NewGenerator(llmtest.Reply(""), nil), nil)

	stats, err := svc.Stats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Assessments)
	assert.Equal(t, 71.7, stats.AverageScore)
	assert.Equal(t, 14, stats.TotalQuestions)
	assert.Equal(t, 80.0, stats.LatestScore)
}

func TestStats_Empty(t *testing.T) {
	assert.Equal(t, types.AssessmentStats{}, Summarize(nil))

	store := &fakeStore{listErr: errors.New("boom")}
	svc := NewService(store, NewGenerator(llmtest.Reply(""), nil), nil)
	_, err := svc.Stats(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "failed to load assessments: boom")
}
