package quiz

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/types"
)

// Defaults for results whose question carries no topic or difficulty.
const (
	DefaultTopic      = "General"
	DefaultDifficulty = "Medium"
)

// Grading is the outcome of grading one quiz attempt.
type Grading struct {
	// Score is the percentage of correct answers, 0 to 100
	Score   float64
	Results []types.QuestionResult
}

// Grade compares answers against questions position by position. The two slices
// must have the same length. An empty quiz scores 0.
func Grade(questions []types.Question, answers []string) (Grading, error) {
	if len(questions) != len(answers) {
		return Grading{}, &ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("got %d answers for %d questions", len(answers), len(questions)),
		}
	}

	results := make([]types.QuestionResult, len(questions))
	correct := 0
	for i, q := range questions {
		// An unanswered question never matches, even an empty correct answer
		isCorrect := answers[i] != "" && answers[i] == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results[i] = types.QuestionResult{
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    answers[i],
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
			Topic:         orDefault(q.Topic, DefaultTopic),
			Difficulty:    orDefault(q.Difficulty, DefaultDifficulty),
		}
	}

	if len(questions) == 0 {
		return Grading{Score: 0, Results: results}, nil
	}
	return Grading{
		Score:   float64(correct) / float64(len(questions)) * 100,
		Results: results,
	}, nil
}

// WeakTopics returns the distinct topics of incorrect results in first-seen order.
func WeakTopics(results []types.QuestionResult) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, r := range results {
		if r.IsCorrect || seen[r.Topic] {
			continue
		}
		seen[r.Topic] = true
		topics = append(topics, r.Topic)
	}
	return topics
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
