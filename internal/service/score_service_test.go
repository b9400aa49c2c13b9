package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/repository"
)

func newTestScoreService(scores *fakeScoreStore, questions *fakeQuestionStore, quizzes *QuizService, now time.Time) *ScoreService {
	if questions == nil {
		questions = &fakeQuestionStore{byQuiz: map[string][]*repository.Question{}}
	}
	return NewScoreService(scores, questions, quizzes, clock.Fixed{Instant: now})
}

func TestRecordScore(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, clock.AppZone)
	open := windowQuiz("open", now.Add(-time.Hour), now.Add(time.Hour))
	expired := windowQuiz("expired", now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	questions := &fakeQuestionStore{byQuiz: map[string][]*repository.Question{
		"open": {{ID: "q1"}, {ID: "q2"}, {ID: "q3"}},
	}}
	quizService := newTestQuizService(newFakeQuizStore(open, expired), nil, questions, nil, now)

	tests := []struct {
		name   string
		quizID string
		score  int
		kind   apperr.Kind
		wantOK bool
	}{
		{name: "valid score", quizID: "open", score: 2, wantOK: true},
		{name: "full marks", quizID: "open", score: 3, wantOK: true},
		{name: "zero score", quizID: "open", score: 0, wantOK: true},
		{name: "negative score", quizID: "open", score: -1, kind: apperr.KindValidation},
		{name: "score above question count", quizID: "open", score: 4, kind: apperr.KindValidation},
		{name: "window already closed", quizID: "expired", score: 1, kind: apperr.KindNotAvailable},
		{name: "unknown quiz", quizID: "missing", score: 1, kind: apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeScoreStore{}
			svc := newTestScoreService(store, questions, quizService, now)

			score, err := svc.Record(context.Background(), "user-1", tt.quizID, tt.score)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Record() error = %v", err)
				}
				if score.Score != tt.score || !score.DateTaken.Equal(now) {
					t.Errorf("recorded score = %+v, want value %d at %v", score, tt.score, now)
				}
				if len(store.created) != 1 {
					t.Errorf("created %d rows, want 1", len(store.created))
				}
				return
			}

			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != tt.kind {
				t.Errorf("Record() error = %v, want kind %v", err, tt.kind)
			}
			if len(store.created) != 0 {
				t.Errorf("created %d rows, want none on rejection", len(store.created))
			}
		})
	}
}

func TestRecordAllowsRepeatAttempts(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, clock.AppZone)
	open := windowQuiz("open", now.Add(-time.Hour), now.Add(time.Hour))
	questions := &fakeQuestionStore{byQuiz: map[string][]*repository.Question{
		"open": {{ID: "q1"}, {ID: "q2"}},
	}}
	quizService := newTestQuizService(newFakeQuizStore(open), nil, questions, nil, now)
	store := &fakeScoreStore{}
	svc := newTestScoreService(store, questions, quizService, now)

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(context.Background(), "user-1", "open", 1); err != nil {
			t.Fatalf("Record() attempt %d error = %v", i, err)
		}
	}
	if len(store.created) != 3 {
		t.Errorf("created %d rows, want 3 independent attempts", len(store.created))
	}
}

func attempt(score, total int, taken time.Time) *repository.ScoreWithQuiz {
	return &repository.ScoreWithQuiz{
		Score:          score,
		DateTaken:      taken,
		TotalQuestions: total,
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, clock.AppZone)
	earlier := now.Add(-24 * time.Hour)

	tests := []struct {
		name          string
		scores        []*repository.ScoreWithQuiz
		wantAttempts  int
		wantAverage   float64
		wantBest      float64
		wantQuestions int
		wantLast      *time.Time
	}{
		{
			name: "two attempts on ten questions",
			scores: []*repository.ScoreWithQuiz{
				attempt(7, 10, earlier),
				attempt(9, 10, now),
			},
			wantAttempts:  2,
			wantAverage:   80,
			wantBest:      90,
			wantQuestions: 20,
			wantLast:      &now,
		},
		{
			name:         "no attempts",
			scores:       nil,
			wantAttempts: 0,
		},
		{
			name: "zero-question attempt excluded from percentages",
			scores: []*repository.ScoreWithQuiz{
				attempt(0, 0, earlier),
				attempt(4, 5, now),
			},
			wantAttempts:  2,
			wantAverage:   80,
			wantBest:      80,
			wantQuestions: 5,
			wantLast:      &now,
		},
		{
			name: "only zero-question attempts",
			scores: []*repository.ScoreWithQuiz{
				attempt(0, 0, now),
			},
			wantAttempts: 1,
			wantLast:     &now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeScoreStore{listed: tt.scores}
			svc := newTestScoreService(store, nil, nil, now)

			perf, err := svc.Summarize(context.Background(), "user-1")
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}

			if perf.TotalAttempts != tt.wantAttempts {
				t.Errorf("TotalAttempts = %d, want %d", perf.TotalAttempts, tt.wantAttempts)
			}
			if math.Abs(perf.AveragePercent-tt.wantAverage) > 1e-9 {
				t.Errorf("AveragePercent = %v, want %v", perf.AveragePercent, tt.wantAverage)
			}
			if math.Abs(perf.BestPercent-tt.wantBest) > 1e-9 {
				t.Errorf("BestPercent = %v, want %v", perf.BestPercent, tt.wantBest)
			}
			if perf.TotalQuestionsAttempted != tt.wantQuestions {
				t.Errorf("TotalQuestionsAttempted = %d, want %d", perf.TotalQuestionsAttempted, tt.wantQuestions)
			}
			if tt.wantLast == nil {
				if perf.LastAttemptTime != nil {
					t.Errorf("LastAttemptTime = %v, want nil", perf.LastAttemptTime)
				}
			} else if perf.LastAttemptTime == nil || !perf.LastAttemptTime.Equal(*tt.wantLast) {
				t.Errorf("LastAttemptTime = %v, want %v", perf.LastAttemptTime, tt.wantLast)
			}
		})
	}
}
