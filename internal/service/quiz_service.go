package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/quizwindow"
	"github.com/jg4611/mad2-by-amit/internal/repository"
	"github.com/jg4611/mad2-by-amit/pkg/messaging"
)

type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

type QuizStore interface {
	CreateQuiz(ctx context.Context, quiz *repository.Quiz) error
	GetQuizByID(ctx context.Context, quizID string) (*repository.Quiz, error)
	ListQuizzes(ctx context.Context) ([]*repository.Quiz, error)
	UpdateQuiz(ctx context.Context, quiz *repository.Quiz) error
	SetActivation(ctx context.Context, quizID string, isActive bool, endTime sql.NullTime) error
	DeleteQuizCascade(ctx context.Context, quizID string) error
}

type CatalogStore interface {
	GetSubjectByID(ctx context.Context, subjectID string) (*repository.Subject, error)
	GetChapterByID(ctx context.Context, chapterID string) (*repository.Chapter, error)
}

type QuestionLister interface {
	ListQuestionsByQuiz(ctx context.Context, quizID string) ([]*repository.Question, error)
}

type QuizService struct {
	quizzes   QuizStore
	catalog   CatalogStore
	questions QuestionLister
	publisher Publisher
	clock     clock.Clock
}

func NewQuizService(quizzes QuizStore, catalog CatalogStore, questions QuestionLister, publisher Publisher, clk clock.Clock) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		catalog:   catalog,
		questions: questions,
		publisher: publisher,
		clock:     clk,
	}
}

type CreateQuizInput struct {
	ChapterID       string
	Title           string
	StartTime       time.Time
	DurationHours   int
	DurationMinutes int
}

type UpdateQuizInput struct {
	ChapterID       *string
	Title           *string
	StartTime       *time.Time
	DurationHours   *int
	DurationMinutes *int
}

func (s *QuizService) CreateQuiz(ctx context.Context, input CreateQuizInput) (*repository.Quiz, error) {
	if input.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if input.StartTime.IsZero() {
		return nil, apperr.Validation("start_time is required")
	}
	if input.DurationHours < 0 || input.DurationMinutes < 0 {
		return nil, apperr.Validation("duration must be non-negative")
	}

	chapter, err := s.catalog.GetChapterByID(ctx, input.ChapterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("chapter")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chapter: %w", err)
	}

	quiz := &repository.Quiz{
		ChapterID:       input.ChapterID,
		Title:           input.Title,
		StartTime:       sql.NullTime{Time: input.StartTime, Valid: true},
		DurationHours:   input.DurationHours,
		DurationMinutes: input.DurationMinutes,
	}

	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.publishQuizCreated(ctx, quiz, chapter)

	return quiz, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*repository.Quiz, error) {
	quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("quiz")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// UpdateQuiz applies partial edits. Editing start_time does not recompute an
// already-derived end_time; the admin re-derives it by toggling activation.
func (s *QuizService) UpdateQuiz(ctx context.Context, quizID string, input UpdateQuizInput) (*repository.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if input.ChapterID != nil {
		if _, err := s.catalog.GetChapterByID(ctx, *input.ChapterID); errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("chapter")
		} else if err != nil {
			return nil, fmt.Errorf("failed to load chapter: %w", err)
		}
		quiz.ChapterID = *input.ChapterID
	}
	if input.Title != nil {
		quiz.Title = *input.Title
	}
	if input.StartTime != nil {
		quiz.StartTime = sql.NullTime{Time: *input.StartTime, Valid: true}
	}
	if input.DurationHours != nil {
		if *input.DurationHours < 0 {
			return nil, apperr.Validation("duration must be non-negative")
		}
		quiz.DurationHours = *input.DurationHours
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes < 0 {
			return nil, apperr.Validation("duration must be non-negative")
		}
		quiz.DurationMinutes = *input.DurationMinutes
	}

	if quiz.StartTime.Valid && quiz.EndTime.Valid && quiz.EndTime.Time.Before(quiz.StartTime.Time) {
		return nil, apperr.Validation("end_time must not precede start_time")
	}

	if err := s.quizzes.UpdateQuiz(ctx, quiz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("quiz")
		}
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	return quiz, nil
}

// ToggleActive flips the admin activation flag. On the first activation of a
// quiz that has a start time but no end time, the end time is derived from
// start + duration and persisted; it is never derived a second time.
func (s *QuizService) ToggleActive(ctx context.Context, quizID string) (*repository.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	newActive := !quiz.IsActive

	var endTime sql.NullTime
	if newActive && !quiz.EndTime.Valid && quiz.StartTime.Valid {
		derived := quizwindow.DeriveEndTime(quiz.StartTime.Time, quiz.DurationHours, quiz.DurationMinutes)
		endTime = sql.NullTime{Time: derived, Valid: true}
	}

	if err := s.quizzes.SetActivation(ctx, quizID, newActive, endTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("quiz")
		}
		return nil, fmt.Errorf("failed to toggle quiz: %w", err)
	}

	quiz.IsActive = newActive
	if endTime.Valid {
		quiz.EndTime = endTime
	}

	return quiz, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	err := s.quizzes.DeleteQuizCascade(ctx, quizID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("quiz")
	}
	if err != nil {
		return apperr.Conflict("failed to delete quiz", err)
	}
	return nil
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]*repository.Quiz, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// ListAvailable filters the quiz collection down to the ones whose window is
// open right now, preserving the input order.
func (s *QuizService) ListAvailable(ctx context.Context) ([]*repository.Quiz, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	now := s.clock.Now()
	available := make([]*repository.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if s.Status(quiz, now) == quizwindow.StateActive {
			available = append(available, quiz)
		}
	}

	return available, nil
}

// Status derives the quiz lifecycle state at the given instant.
func (s *QuizService) Status(quiz *repository.Quiz, now time.Time) quizwindow.State {
	var start, end *time.Time
	if quiz.StartTime.Valid {
		start = &quiz.StartTime.Time
	}
	if quiz.EndTime.Valid {
		end = &quiz.EndTime.Time
	}
	return quizwindow.Status(start, end, now)
}

// AssertAttemptable gates quiz content and submissions. The check is advisory
// between listing and submission: callers must invoke it again at accept time
// rather than trust an earlier read.
func (s *QuizService) AssertAttemptable(quiz *repository.Quiz) error {
	if s.Status(quiz, s.clock.Now()) != quizwindow.StateActive {
		return apperr.NotAvailable("quiz is not currently active")
	}
	return nil
}

// GetQuizForAttempt re-validates availability and returns the quiz with its
// questions for a learner to take.
func (s *QuizService) GetQuizForAttempt(ctx context.Context, quizID string) (*repository.Quiz, []*repository.Question, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.AssertAttemptable(quiz); err != nil {
		return nil, nil, err
	}

	questions, err := s.questions.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return quiz, questions, nil
}

type QuizCreatedEvent struct {
	QuizID  string `json:"quiz_id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
}

func (s *QuizService) publishQuizCreated(ctx context.Context, quiz *repository.Quiz, chapter *repository.Chapter) {
	if s.publisher == nil {
		return
	}

	subjectName := ""
	if subject, err := s.catalog.GetSubjectByID(ctx, chapter.SubjectID); err == nil {
		subjectName = subject.Name
	}

	event := QuizCreatedEvent{
		QuizID:  quiz.ID,
		Title:   quiz.Title,
		Subject: subjectName,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal quiz_created event: %v", err)
		return
	}

	if err := s.publisher.Publish(ctx, messaging.QueueQuizCreated, eventJSON); err != nil {
		log.Printf("Failed to publish quiz_created event: %v", err)
	}
}
