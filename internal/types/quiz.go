package types

import (
	"time"

	"github.com/google/uuid"
)

// Question is one generated multiple-choice quiz question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
}

// Assessment is a saved quiz attempt.
type Assessment struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	QuizScore      float64          `json:"quizScore"`
	Questions      []QuestionResult `json:"questions"`
	QuestionCount  int              `json:"questionCount"`
	Topics         []string         `json:"topics"`
	Difficulty     string           `json:"difficulty"`
	ImprovementTip string           `json:"improvementTip,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AssessmentStats summarizes a user's assessment history.
type AssessmentStats struct {
	Assessments    int     `json:"assessments"`
	AverageScore   float64 `json:"averageScore"`
	TotalQuestions int     `json:"totalQuestions"`
	LatestScore    float64 `json:"latestScore"`
}

// GenerateQuizRequest is the body of a quiz generation request.
type GenerateQuizRequest struct {
	Count  int      `json:"count" validate:"required,min=1,max=20"`
	Topics []string `json:"topics" validate:"omitempty,dive,required"`
}

// SaveAssessmentRequest is the body of a quiz submission.
type SaveAssessmentRequest struct {
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
	Answers   []string   `json:"answers" validate:"required"`
	Count     int        `json:"count" validate:"required,min=1"`
	Topics    []string   `json:"topics"`
}
