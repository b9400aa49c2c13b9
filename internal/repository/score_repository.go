package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Score struct {
	ID        string
	UserID    string
	QuizID    string
	Score     int
	DateTaken time.Time
}

// ScoreWithQuiz is one attempt joined with its quiz's title and question count.
type ScoreWithQuiz struct {
	ID             string
	UserID         string
	QuizID         string
	Score          int
	DateTaken      time.Time
	QuizTitle      string
	TotalQuestions int
}

type ScoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// CreateScore inserts one immutable attempt row. There is no uniqueness
// constraint: repeated attempts for the same user and quiz each get a row.
func (r *ScoreRepository) CreateScore(ctx context.Context, score *Score) error {
	score.ID = uuid.New().String()

	query := `
		INSERT INTO scores (id, user_id, quiz_id, score, date_taken)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		score.ID,
		score.UserID,
		score.QuizID,
		score.Score,
		score.DateTaken,
	)
	if err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}

	return nil
}

// ListScoresByUser returns a user's attempts in insertion order, each joined
// with the quiz title and its current question count.
func (r *ScoreRepository) ListScoresByUser(ctx context.Context, userID string) ([]*ScoreWithQuiz, error) {
	query := `
		SELECT s.id, s.user_id, s.quiz_id, s.score, s.date_taken, q.title,
		       (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS total_questions
		FROM scores s
		JOIN quizzes q ON q.id = s.quiz_id
		WHERE s.user_id = $1
		ORDER BY s.date_taken
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	var scores []*ScoreWithQuiz
	for rows.Next() {
		score := &ScoreWithQuiz{}
		if err := rows.Scan(
			&score.ID,
			&score.UserID,
			&score.QuizID,
			&score.Score,
			&score.DateTaken,
			&score.QuizTitle,
			&score.TotalQuestions,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, score)
	}

	return scores, rows.Err()
}
