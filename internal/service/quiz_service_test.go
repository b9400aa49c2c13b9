package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/quizwindow"
	"github.com/jg4611/mad2-by-amit/internal/repository"
)

func newTestQuizService(store *fakeQuizStore, catalog *fakeCatalogStore, questions *fakeQuestionStore, publisher *fakePublisher, now time.Time) *QuizService {
	if catalog == nil {
		catalog = &fakeCatalogStore{
			subjects: map[string]*repository.Subject{"subj-1": {ID: "subj-1", Name: "Physics"}},
			chapters: map[string]*repository.Chapter{"chap-1": {ID: "chap-1", SubjectID: "subj-1", Name: "Optics"}},
		}
	}
	if questions == nil {
		questions = &fakeQuestionStore{byQuiz: map[string][]*repository.Question{}}
	}
	return NewQuizService(store, catalog, questions, publisher, clock.Fixed{Instant: now})
}

func windowQuiz(id string, start, end time.Time) *repository.Quiz {
	return &repository.Quiz{
		ID:        id,
		ChapterID: "chap-1",
		Title:     id,
		StartTime: sql.NullTime{Time: start, Valid: true},
		EndTime:   sql.NullTime{Time: end, Valid: true},
	}
}

func TestCreateQuizPublishesEvent(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, clock.AppZone)
	publisher := &fakePublisher{}
	svc := newTestQuizService(newFakeQuizStore(), nil, nil, publisher, now)

	quiz, err := svc.CreateQuiz(context.Background(), CreateQuizInput{
		ChapterID:       "chap-1",
		Title:           "Lenses",
		StartTime:       now.Add(time.Hour),
		DurationHours:   0,
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}
	if quiz.EndTime.Valid {
		t.Error("end time must not be set at creation")
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.published))
	}
	msg := publisher.published[0]
	if msg.queue != "quiz.created" {
		t.Errorf("published to %q, want quiz.created", msg.queue)
	}
	var event QuizCreatedEvent
	if err := json.Unmarshal(msg.body, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.Title != "Lenses" || event.Subject != "Physics" {
		t.Errorf("event = %+v, want title Lenses and subject Physics", event)
	}
}

func TestCreateQuizPublishFailureDoesNotFailCreate(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, clock.AppZone)
	publisher := &fakePublisher{err: errors.New("broker down")}
	store := newFakeQuizStore()
	svc := newTestQuizService(store, nil, nil, publisher, now)

	_, err := svc.CreateQuiz(context.Background(), CreateQuizInput{
		ChapterID: "chap-1",
		Title:     "Lenses",
		StartTime: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v, want nil when only the publish fails", err)
	}
	if len(store.quizzes) != 1 {
		t.Errorf("stored %d quizzes, want 1", len(store.quizzes))
	}
}

func TestCreateQuizValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, clock.AppZone)
	svc := newTestQuizService(newFakeQuizStore(), nil, nil, nil, now)

	tests := []struct {
		name  string
		input CreateQuizInput
		kind  apperr.Kind
	}{
		{
			name:  "missing title",
			input: CreateQuizInput{ChapterID: "chap-1", StartTime: now},
			kind:  apperr.KindValidation,
		},
		{
			name:  "missing start time",
			input: CreateQuizInput{ChapterID: "chap-1", Title: "Lenses"},
			kind:  apperr.KindValidation,
		},
		{
			name:  "negative duration",
			input: CreateQuizInput{ChapterID: "chap-1", Title: "Lenses", StartTime: now, DurationMinutes: -5},
			kind:  apperr.KindValidation,
		},
		{
			name:  "unknown chapter",
			input: CreateQuizInput{ChapterID: "nope", Title: "Lenses", StartTime: now},
			kind:  apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateQuiz(context.Background(), tt.input)
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != tt.kind {
				t.Errorf("CreateQuiz() error = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestToggleActiveDerivesEndTimeOnce(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, clock.AppZone)
	quiz := &repository.Quiz{
		ID:              "quiz-1",
		ChapterID:       "chap-1",
		Title:           "Lenses",
		StartTime:       sql.NullTime{Time: start, Valid: true},
		DurationHours:   1,
		DurationMinutes: 30,
	}
	store := newFakeQuizStore(quiz)
	svc := newTestQuizService(store, nil, nil, nil, start)

	toggled, err := svc.ToggleActive(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	if !toggled.IsActive {
		t.Error("quiz should be active after first toggle")
	}
	wantEnd := start.Add(90 * time.Minute)
	if !toggled.EndTime.Valid || !toggled.EndTime.Time.Equal(wantEnd) {
		t.Errorf("end time = %v, want %v", toggled.EndTime, wantEnd)
	}

	// deactivate, then reactivate: the stored end time must survive both
	if _, err := svc.ToggleActive(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("second ToggleActive() error = %v", err)
	}
	again, err := svc.ToggleActive(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("third ToggleActive() error = %v", err)
	}
	if !again.EndTime.Time.Equal(wantEnd) {
		t.Errorf("end time after reactivation = %v, want unchanged %v", again.EndTime.Time, wantEnd)
	}
}

func TestUpdateQuizDoesNotRecomputeEndTime(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, clock.AppZone)
	end := start.Add(time.Hour)
	quiz := windowQuiz("quiz-1", start, end)
	store := newFakeQuizStore(quiz)
	svc := newTestQuizService(store, nil, nil, nil, start)

	newStart := start.Add(-2 * time.Hour)
	updated, err := svc.UpdateQuiz(context.Background(), "quiz-1", UpdateQuizInput{StartTime: &newStart})
	if err != nil {
		t.Fatalf("UpdateQuiz() error = %v", err)
	}
	if !updated.EndTime.Time.Equal(end) {
		t.Errorf("end time = %v, want unchanged %v", updated.EndTime.Time, end)
	}
}

func TestUpdateQuizRejectsInvertedWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, clock.AppZone)
	quiz := windowQuiz("quiz-1", start, start.Add(time.Hour))
	svc := newTestQuizService(newFakeQuizStore(quiz), nil, nil, nil, start)

	badStart := start.Add(2 * time.Hour)
	_, err := svc.UpdateQuiz(context.Background(), "quiz-1", UpdateQuizInput{StartTime: &badStart})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Errorf("UpdateQuiz() error = %v, want validation error", err)
	}
}

func TestListAvailablePreservesOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, clock.AppZone)
	open1 := windowQuiz("open-1", now.Add(-time.Hour), now.Add(time.Hour))
	expired := windowQuiz("expired", now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	open2 := windowQuiz("open-2", now.Add(-time.Minute), now.Add(time.Minute))
	upcoming := windowQuiz("upcoming", now.Add(time.Hour), now.Add(2*time.Hour))
	unactivated := &repository.Quiz{
		ID:        "unactivated",
		ChapterID: "chap-1",
		StartTime: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
	}

	store := newFakeQuizStore(open1, expired, open2, upcoming, unactivated)
	svc := newTestQuizService(store, nil, nil, nil, now)

	available, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable() error = %v", err)
	}

	want := []string{"open-1", "open-2"}
	if len(available) != len(want) {
		t.Fatalf("got %d quizzes, want %d", len(available), len(want))
	}
	for i, id := range want {
		if available[i].ID != id {
			t.Errorf("available[%d] = %q, want %q", i, available[i].ID, id)
		}
	}
}

func TestGetQuizForAttemptGatesOnWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, clock.AppZone)
	open := windowQuiz("open", now.Add(-time.Hour), now.Add(time.Hour))
	expired := windowQuiz("expired", now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	questions := &fakeQuestionStore{byQuiz: map[string][]*repository.Question{
		"open": {{ID: "q1", QuizID: "open"}},
	}}
	svc := newTestQuizService(newFakeQuizStore(open, expired), nil, questions, nil, now)

	quiz, qs, err := svc.GetQuizForAttempt(context.Background(), "open")
	if err != nil {
		t.Fatalf("GetQuizForAttempt(open) error = %v", err)
	}
	if quiz.ID != "open" || len(qs) != 1 {
		t.Errorf("got quiz %q with %d questions, want open with 1", quiz.ID, len(qs))
	}

	_, _, err = svc.GetQuizForAttempt(context.Background(), "expired")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotAvailable {
		t.Errorf("GetQuizForAttempt(expired) error = %v, want not-available", err)
	}

	_, _, err = svc.GetQuizForAttempt(context.Background(), "missing")
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Errorf("GetQuizForAttempt(missing) error = %v, want not-found", err)
	}
}

func TestStatusMatchesWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, clock.AppZone)
	svc := newTestQuizService(newFakeQuizStore(), nil, nil, nil, now)

	unscheduled := &repository.Quiz{ID: "quiz-1"}
	if got := svc.Status(unscheduled, now); got != quizwindow.StateUpcoming {
		t.Errorf("Status(unscheduled) = %q, want upcoming", got)
	}

	active := windowQuiz("quiz-2", now.Add(-time.Minute), now.Add(time.Minute))
	if got := svc.Status(active, now); got != quizwindow.StateActive {
		t.Errorf("Status(active) = %q, want active", got)
	}
}
