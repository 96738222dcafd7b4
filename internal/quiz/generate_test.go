package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/career-coach/internal/extract"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/llm/llmtest"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const twoQuestions = "```json\n" + `{
  "questions": [
    {"question": "What does defer do?", "options": ["A", "B", "C", "D"], "correctAnswer": "A",
     "explanation": "Runs at return", "topic": "Go", "difficulty": "Easy"},
    {"question": "What is a channel?", "options": ["A", "B", "C", "D"], "correctAnswer": "B",
     "explanation": "A typed conduit", "topic": "Concurrency", "difficulty": "Medium"}
  ]
}` + "\n```"

func TestGenerate_Success(t *testing.T) {
	client := llmtest.Reply(twoQuestions)
	g := NewGenerator(client, zaptest.NewLogger(t))

	questions, err := g.Generate(context.Background(), Request{Count: 2, Topics: []string{"Go", "Concurrency"}})
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, "What does defer do?", questions[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, questions[0].Options)
	assert.Equal(t, "B", questions[1].CorrectAnswer)
	assert.Equal(t, "Concurrency", questions[1].Topic)

	require.Len(t, client.Prompts(), 1)
	assert.Contains(t, client.Prompts()[0], "Generate 2 technical interview questions")
	assert.Contains(t, client.Prompts()[0], "Go, Concurrency")
}

func TestGenerate_FocusFallsBackToProfile(t *testing.T) {
	client := llmtest.Reply(twoQuestions)
	g := NewGenerator(client, nil)

	_, err := g.Generate(context.Background(), Request{
		Count:    2,
		Industry: "tech-software-development",
		Skills:   []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	assert.Contains(t, client.Prompts()[0], "tech-software-development and Go, SQL")
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		client *llmtest.MockClient
		count  int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "oracle failure",
			client: llmtest.Fail(llm.KindQuota),
			count:  2,
			check: func(t *testing.T, err error) {
				oe, ok := llm.AsOracleError(err)
				require.True(t, ok)
				assert.Equal(t, llm.KindQuota, oe.Kind)
			},
		},
		{
			name:   "no json",
			client: llmtest.Reply("Sorry, I cannot help with that."),
			count:  2,
			check: func(t *testing.T, err error) {
				f, ok := extract.AsFailure(err)
				require.True(t, ok)
				assert.Equal(t, extract.ReasonUnparseable, f.Reason)
			},
		},
		{
			name:   "missing questions field",
			client: llmtest.Reply(`{"items": []}`),
			count:  2,
			check: func(t *testing.T, err error) {
				f, ok := extract.AsFailure(err)
				require.True(t, ok)
				assert.Equal(t, extract.ReasonMissingFields, f.Reason)
			},
		},
		{
			name:   "schema violation",
			client: llmtest.Reply(`{"questions": [{"question": "Q", "options": ["only one"], "correctAnswer": "A"}]}`),
			count:  1,
			check: func(t *testing.T, err error) {
				var ve *schemas.ValidationError
				assert.True(t, errors.As(err, &ve))
			},
		},
		{
			name:   "count mismatch",
			client: llmtest.Reply(twoQuestions),
			count:  3,
			check: func(t *testing.T, err error) {
				assert.Contains(t, errors.Unwrap(err).Error(), "expected 3 questions, got 2")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.client, nil)

			questions, err := g.Generate(context.Background(), Request{Count: tt.count, Topics: []string{"Go"}})

			assert.Nil(t, questions)
			var ge *GenerationError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, "Failed to generate questions. Please try again.", err.Error())
			tt.check(t, err)
		})
	}
}

func TestGenerate_InvalidCountSkipsOracle(t *testing.T) {
	client := llmtest.Reply(twoQuestions)
	g := NewGenerator(client, nil)

	_, err := g.Generate(context.Background(), Request{Count: 0})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, client.Calls())
}
