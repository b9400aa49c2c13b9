package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/repository"
)

type ScoreStore interface {
	CreateScore(ctx context.Context, score *repository.Score) error
	ListScoresByUser(ctx context.Context, userID string) ([]*repository.ScoreWithQuiz, error)
}

type QuestionCounter interface {
	CountQuestionsByQuiz(ctx context.Context, quizID string) (int, error)
}

type ScoreService struct {
	scores    ScoreStore
	questions QuestionCounter
	quizzes   *QuizService
	clock     clock.Clock
}

func NewScoreService(scores ScoreStore, questions QuestionCounter, quizzes *QuizService, clk clock.Clock) *ScoreService {
	return &ScoreService{
		scores:    scores,
		questions: questions,
		quizzes:   quizzes,
		clock:     clk,
	}
}

// Record validates and persists one completed attempt. Availability is
// re-checked here regardless of what the learner saw when fetching the quiz:
// the window may have closed in between. Duplicate attempts are accepted;
// each call inserts a fresh immutable row.
func (s *ScoreService) Record(ctx context.Context, userID, quizID string, scoreValue int) (*repository.Score, error) {
	if scoreValue < 0 {
		return nil, apperr.Validation("score must not be negative")
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if err := s.quizzes.AssertAttemptable(quiz); err != nil {
		return nil, err
	}

	questionCount, err := s.questions.CountQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if scoreValue > questionCount {
		return nil, apperr.Validation("score exceeds the quiz's %d questions", questionCount)
	}

	score := &repository.Score{
		UserID:    userID,
		QuizID:    quizID,
		Score:     scoreValue,
		DateTaken: s.clock.Now(),
	}

	if err := s.scores.CreateScore(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	return score, nil
}

// History returns the user's attempts in insertion order, joined with quiz
// title and question count for self-service review.
func (s *ScoreService) History(ctx context.Context, userID string) ([]*repository.ScoreWithQuiz, error) {
	scores, err := s.scores.ListScoresByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}
	return scores, nil
}

// Performance is a user's score history folded into summary statistics.
type Performance struct {
	TotalAttempts           int
	AveragePercent          float64
	BestPercent             float64
	TotalQuestionsAttempted int
	LastAttemptTime         *time.Time
}

// Summarize computes the performance summary on demand; nothing is cached
// since new scores arrive continuously. Attempts against quizzes with no
// questions are counted but excluded from the percentage figures.
func (s *ScoreService) Summarize(ctx context.Context, userID string) (*Performance, error) {
	scores, err := s.scores.ListScoresByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	perf := &Performance{TotalAttempts: len(scores)}

	var percentSum float64
	var percentCount int
	for _, score := range scores {
		perf.TotalQuestionsAttempted += score.TotalQuestions

		if score.TotalQuestions > 0 {
			percent := float64(score.Score) / float64(score.TotalQuestions) * 100
			percentSum += percent
			percentCount++
			if percent > perf.BestPercent {
				perf.BestPercent = percent
			}
		}

		if perf.LastAttemptTime == nil || score.DateTaken.After(*perf.LastAttemptTime) {
			taken := score.DateTaken
			perf.LastAttemptTime = &taken
		}
	}

	if percentCount > 0 {
		perf.AveragePercent = percentSum / float64(percentCount)
	}

	return perf, nil
}
