package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jg4611/mad2-by-amit/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	db     *sql.DB
	config *config.DBConfig
}

func NewPostgresClient(cfg *config.DBConfig) (*PostgresClient, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{
		db:     db,
		config: cfg,
	}, nil
}

func (c *PostgresClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.db
}

func (c *PostgresClient) InitSchema(ctx context.Context) error {
	createUsersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			qualification VARCHAR(255) NOT NULL DEFAULT '',
			date_of_birth DATE,
			role VARCHAR(50) NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`

	createSubjectsTable := `
		CREATE TABLE IF NOT EXISTS subjects (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);
	`

	createChaptersTable := `
		CREATE TABLE IF NOT EXISTS chapters (
			id VARCHAR(255) PRIMARY KEY,
			subject_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (subject_id) REFERENCES subjects(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_chapters_subject_id ON chapters(subject_id);
	`

	createQuizzesTable := `
		CREATE TABLE IF NOT EXISTS quizzes (
			id VARCHAR(255) PRIMARY KEY,
			chapter_id VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL,
			start_time TIMESTAMPTZ,
			end_time TIMESTAMPTZ,
			duration_hours INTEGER NOT NULL DEFAULT 0,
			duration_minutes INTEGER NOT NULL DEFAULT 30,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chapter_id) REFERENCES chapters(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_quizzes_chapter_id ON quizzes(chapter_id);
	`

	createQuestionsTable := `
		CREATE TABLE IF NOT EXISTS questions (
			id VARCHAR(255) PRIMARY KEY,
			quiz_id VARCHAR(255) NOT NULL,
			question_text TEXT NOT NULL,
			option1 TEXT NOT NULL,
			option2 TEXT NOT NULL,
			option3 TEXT NOT NULL,
			option4 TEXT NOT NULL,
			correct_option INTEGER NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_questions_quiz_id ON questions(quiz_id);
	`

	createScoresTable := `
		CREATE TABLE IF NOT EXISTS scores (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			quiz_id VARCHAR(255) NOT NULL,
			score INTEGER NOT NULL,
			date_taken TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		);
		CREATE INDEX IF NOT EXISTS idx_scores_user_id ON scores(user_id);
		CREATE INDEX IF NOT EXISTS idx_scores_quiz_id ON scores(quiz_id);
	`

	if _, err := c.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createSubjectsTable); err != nil {
		return fmt.Errorf("failed to create subjects table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createChaptersTable); err != nil {
		return fmt.Errorf("failed to create chapters table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createQuizzesTable); err != nil {
		return fmt.Errorf("failed to create quizzes table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createQuestionsTable); err != nil {
		return fmt.Errorf("failed to create questions table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createScoresTable); err != nil {
		return fmt.Errorf("failed to create scores table: %w", err)
	}

	return nil
}
