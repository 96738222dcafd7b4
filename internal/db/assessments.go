package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

// CreateAssessment stores a graded quiz attempt and fills in its ID and CreatedAt
func (db *DB) CreateAssessment(ctx context.Context, a *types.Assessment) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal question results: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO assessments
		   (user_id, quiz_score, questions, question_count, topics, difficulty, improvement_tip)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		a.UserID, a.QuizScore, questions, a.QuestionCount, nonNil(a.Topics), a.Difficulty, a.ImprovementTip,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// ListAssessments returns a user's assessments, newest first
func (db *DB) ListAssessments(ctx context.Context, userID uuid.UUID) ([]types.Assessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, quiz_score, questions, question_count, topics, difficulty, improvement_tip, created_at
		 FROM assessments WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	assessments := []types.Assessment{}
	for rows.Next() {
		var (
			a         types.Assessment
			questions []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &a.QuestionCount,
			&a.Topics, &a.Difficulty, &a.ImprovementTip, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if len(questions) > 0 {
			if err := json.Unmarshal(questions, &a.Questions); err != nil {
				return nil, fmt.Errorf("failed to decode question results: %w", err)
			}
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
