package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID              string
	ChapterID       string
	Title           string
	StartTime       sql.NullTime
	EndTime         sql.NullTime
	DurationHours   int
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
}

type QuizRepository struct {
	db *sql.DB
}

func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz *Quiz) error {
	quiz.ID = uuid.New().String()
	quiz.CreatedAt = time.Now()

	query := `
		INSERT INTO quizzes (id, chapter_id, title, start_time, end_time, duration_hours, duration_minutes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.ChapterID,
		quiz.Title,
		quiz.StartTime,
		quiz.EndTime,
		quiz.DurationHours,
		quiz.DurationMinutes,
		quiz.IsActive,
		quiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	return nil
}

func (r *QuizRepository) GetQuizByID(ctx context.Context, quizID string) (*Quiz, error) {
	query := `
		SELECT id, chapter_id, title, start_time, end_time, duration_hours, duration_minutes, is_active, created_at
		FROM quizzes
		WHERE id = $1
	`

	quiz := &Quiz{}
	err := r.db.QueryRowContext(ctx, query, quizID).Scan(
		&quiz.ID,
		&quiz.ChapterID,
		&quiz.Title,
		&quiz.StartTime,
		&quiz.EndTime,
		&quiz.DurationHours,
		&quiz.DurationMinutes,
		&quiz.IsActive,
		&quiz.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz, nil
}

// ListQuizzes returns all quizzes in creation order.
func (r *QuizRepository) ListQuizzes(ctx context.Context) ([]*Quiz, error) {
	query := `
		SELECT id, chapter_id, title, start_time, end_time, duration_hours, duration_minutes, is_active, created_at
		FROM quizzes
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*Quiz
	for rows.Next() {
		quiz := &Quiz{}
		if err := rows.Scan(
			&quiz.ID,
			&quiz.ChapterID,
			&quiz.Title,
			&quiz.StartTime,
			&quiz.EndTime,
			&quiz.DurationHours,
			&quiz.DurationMinutes,
			&quiz.IsActive,
			&quiz.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	return quizzes, rows.Err()
}

func (r *QuizRepository) ListQuizzesByChapter(ctx context.Context, chapterID string) ([]*Quiz, error) {
	query := `
		SELECT id, chapter_id, title, start_time, end_time, duration_hours, duration_minutes, is_active, created_at
		FROM quizzes
		WHERE chapter_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*Quiz
	for rows.Next() {
		quiz := &Quiz{}
		if err := rows.Scan(
			&quiz.ID,
			&quiz.ChapterID,
			&quiz.Title,
			&quiz.StartTime,
			&quiz.EndTime,
			&quiz.DurationHours,
			&quiz.DurationMinutes,
			&quiz.IsActive,
			&quiz.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	return quizzes, rows.Err()
}

func (r *QuizRepository) UpdateQuiz(ctx context.Context, quiz *Quiz) error {
	query := `
		UPDATE quizzes
		SET chapter_id = $2, title = $3, start_time = $4, end_time = $5, duration_hours = $6, duration_minutes = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.ChapterID,
		quiz.Title,
		quiz.StartTime,
		quiz.EndTime,
		quiz.DurationHours,
		quiz.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// SetActivation flips is_active and, when an end time is supplied, persists it
// in the same statement so the derived window lands atomically with the toggle.
func (r *QuizRepository) SetActivation(ctx context.Context, quizID string, isActive bool, endTime sql.NullTime) error {
	var result sql.Result
	var err error

	if endTime.Valid {
		query := `UPDATE quizzes SET is_active = $2, end_time = $3 WHERE id = $1 AND end_time IS NULL`
		result, err = r.db.ExecContext(ctx, query, quizID, isActive, endTime)
	} else {
		query := `UPDATE quizzes SET is_active = $2 WHERE id = $1`
		result, err = r.db.ExecContext(ctx, query, quizID, isActive)
	}
	if err != nil {
		return fmt.Errorf("failed to set quiz activation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check activation result: %w", err)
	}
	if rows == 0 && endTime.Valid {
		// end_time was set concurrently; retry without touching it
		return r.SetActivation(ctx, quizID, isActive, sql.NullTime{})
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteQuizCascade removes the quiz together with its scores and questions in
// one transaction. Either every row goes or none does.
func (r *QuizRepository) DeleteQuizCascade(ctx context.Context, quizID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE quiz_id = $1`, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz scores: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz questions: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, quizID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
