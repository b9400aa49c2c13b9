package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/repository"
)

type QuestionService struct {
	questions *repository.QuestionRepository
	quizzes   *QuizService
}

func NewQuestionService(questions *repository.QuestionRepository, quizzes *QuizService) *QuestionService {
	return &QuestionService{
		questions: questions,
		quizzes:   quizzes,
	}
}

type QuestionInput struct {
	QuizID        string
	QuestionText  string
	Option1       string
	Option2       string
	Option3       string
	Option4       string
	CorrectOption int
}

func (input QuestionInput) validate() error {
	if input.QuestionText == "" {
		return apperr.Validation("question_text is required")
	}
	if input.Option1 == "" || input.Option2 == "" || input.Option3 == "" || input.Option4 == "" {
		return apperr.Validation("all four options are required")
	}
	if input.CorrectOption < 1 || input.CorrectOption > 4 {
		return apperr.Validation("correct_option must be between 1 and 4")
	}
	return nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, input QuestionInput) (*repository.Question, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := s.quizzes.GetQuiz(ctx, input.QuizID); err != nil {
		return nil, err
	}

	question := &repository.Question{
		QuizID:        input.QuizID,
		QuestionText:  input.QuestionText,
		Option1:       input.Option1,
		Option2:       input.Option2,
		Option3:       input.Option3,
		Option4:       input.Option4,
		CorrectOption: input.CorrectOption,
	}

	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, questionID string, input QuestionInput) (*repository.Question, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	question, err := s.questions.GetQuestionByID(ctx, questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("question")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	question.QuestionText = input.QuestionText
	question.Option1 = input.Option1
	question.Option2 = input.Option2
	question.Option3 = input.Option3
	question.Option4 = input.Option4
	question.CorrectOption = input.CorrectOption

	if err := s.questions.UpdateQuestion(ctx, question); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("question")
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID string) error {
	err := s.questions.DeleteQuestion(ctx, questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("question")
	}
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]*repository.Question, error) {
	questions, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}
