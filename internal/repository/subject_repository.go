package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Subject struct {
	ID          string
	Name        string
	Description string
}

type Chapter struct {
	ID          string
	SubjectID   string
	Name        string
	Description string
}

type SubjectRepository struct {
	db *sql.DB
}

func NewSubjectRepository(db *sql.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) CreateSubject(ctx context.Context, subject *Subject) error {
	subject.ID = uuid.New().String()

	query := `INSERT INTO subjects (id, name, description) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name, subject.Description)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}

	return nil
}

func (r *SubjectRepository) GetSubjectByID(ctx context.Context, subjectID string) (*Subject, error) {
	query := `SELECT id, name, description FROM subjects WHERE id = $1`

	subject := &Subject{}
	err := r.db.QueryRowContext(ctx, query, subjectID).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Description,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return subject, nil
}

func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]*Subject, error) {
	query := `SELECT id, name, description FROM subjects ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*Subject
	for rows.Next() {
		subject := &Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Description); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

func (r *SubjectRepository) UpdateSubject(ctx context.Context, subject *Subject) error {
	query := `UPDATE subjects SET name = $2, description = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name, subject.Description)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
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

// DeleteSubjectCascade removes the subject with its chapters, quizzes,
// questions, and scores in one transaction. scores.quiz_id carries no
// ON DELETE CASCADE, so the removal is spelled out here rather than left
// to the schema.
func (r *SubjectRepository) DeleteSubjectCascade(ctx context.Context, subjectID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quizFilter := `quiz_id IN (
		SELECT q.id FROM quizzes q
		JOIN chapters c ON q.chapter_id = c.id
		WHERE c.subject_id = $1
	)`

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE `+quizFilter, subjectID); err != nil {
		return fmt.Errorf("failed to delete subject scores: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE `+quizFilter, subjectID); err != nil {
		return fmt.Errorf("failed to delete subject questions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE chapter_id IN (SELECT id FROM chapters WHERE subject_id = $1)`, subjectID); err != nil {
		return fmt.Errorf("failed to delete subject quizzes: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE subject_id = $1`, subjectID); err != nil {
		return fmt.Errorf("failed to delete subject chapters: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, subjectID)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
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

func (r *SubjectRepository) CreateChapter(ctx context.Context, chapter *Chapter) error {
	chapter.ID = uuid.New().String()

	query := `INSERT INTO chapters (id, subject_id, name, description) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, chapter.ID, chapter.SubjectID, chapter.Name, chapter.Description)
	if err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}

	return nil
}

func (r *SubjectRepository) GetChapterByID(ctx context.Context, chapterID string) (*Chapter, error) {
	query := `SELECT id, subject_id, name, description FROM chapters WHERE id = $1`

	chapter := &Chapter{}
	err := r.db.QueryRowContext(ctx, query, chapterID).Scan(
		&chapter.ID,
		&chapter.SubjectID,
		&chapter.Name,
		&chapter.Description,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	return chapter, nil
}

func (r *SubjectRepository) ListChapters(ctx context.Context) ([]*Chapter, error) {
	query := `SELECT id, subject_id, name, description FROM chapters ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter := &Chapter{}
		if err := rows.Scan(&chapter.ID, &chapter.SubjectID, &chapter.Name, &chapter.Description); err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

func (r *SubjectRepository) ListChaptersBySubject(ctx context.Context, subjectID string) ([]*Chapter, error) {
	query := `SELECT id, subject_id, name, description FROM chapters WHERE subject_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter := &Chapter{}
		if err := rows.Scan(&chapter.ID, &chapter.SubjectID, &chapter.Name, &chapter.Description); err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

func (r *SubjectRepository) UpdateChapter(ctx context.Context, chapter *Chapter) error {
	query := `UPDATE chapters SET subject_id = $2, name = $3, description = $4 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, chapter.ID, chapter.SubjectID, chapter.Name, chapter.Description)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
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

// DeleteChapterCascade removes the chapter with its quizzes, questions, and
// scores in one transaction.
func (r *SubjectRepository) DeleteChapterCascade(ctx context.Context, chapterID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE quiz_id IN (SELECT id FROM quizzes WHERE chapter_id = $1)`, chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter scores: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id IN (SELECT id FROM quizzes WHERE chapter_id = $1)`, chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter questions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE chapter_id = $1`, chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter quizzes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, chapterID)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
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
