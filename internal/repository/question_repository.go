package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Question struct {
	ID            string
	QuizID        string
	QuestionText  string
	Option1       string
	Option2       string
	Option3       string
	Option4       string
	CorrectOption int
}

type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *Question) error {
	question.ID = uuid.New().String()

	query := `
		INSERT INTO questions (id, quiz_id, question_text, option1, option2, option3, option4, correct_option)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		question.ID,
		question.QuizID,
		question.QuestionText,
		question.Option1,
		question.Option2,
		question.Option3,
		question.Option4,
		question.CorrectOption,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}

func (r *QuestionRepository) GetQuestionByID(ctx context.Context, questionID string) (*Question, error) {
	query := `
		SELECT id, quiz_id, question_text, option1, option2, option3, option4, correct_option
		FROM questions
		WHERE id = $1
	`

	question := &Question{}
	err := r.db.QueryRowContext(ctx, query, questionID).Scan(
		&question.ID,
		&question.QuizID,
		&question.QuestionText,
		&question.Option1,
		&question.Option2,
		&question.Option3,
		&question.Option4,
		&question.CorrectOption,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return question, nil
}

func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]*Question, error) {
	return r.queryQuestions(ctx, `
		SELECT id, quiz_id, question_text, option1, option2, option3, option4, correct_option
		FROM questions
	`)
}

func (r *QuestionRepository) ListQuestionsByQuiz(ctx context.Context, quizID string) ([]*Question, error) {
	return r.queryQuestions(ctx, `
		SELECT id, quiz_id, question_text, option1, option2, option3, option4, correct_option
		FROM questions
		WHERE quiz_id = $1
	`, quizID)
}

func (r *QuestionRepository) CountQuestionsByQuiz(ctx context.Context, quizID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE quiz_id = $1`, quizID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func (r *QuestionRepository) UpdateQuestion(ctx context.Context, question *Question) error {
	query := `
		UPDATE questions
		SET question_text = $2, option1 = $3, option2 = $4, option3 = $5, option4 = $6, correct_option = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		question.ID,
		question.QuestionText,
		question.Option1,
		question.Option2,
		question.Option3,
		question.Option4,
		question.CorrectOption,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
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

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, questionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *QuestionRepository) queryQuestions(ctx context.Context, query string, args ...any) ([]*Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*Question
	for rows.Next() {
		question := &Question{}
		if err := rows.Scan(
			&question.ID,
			&question.QuizID,
			&question.QuestionText,
			&question.Option1,
			&question.Option2,
			&question.Option3,
			&question.Option4,
			&question.CorrectOption,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}
