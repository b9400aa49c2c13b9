package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jg4611/mad2-by-amit/internal/repository"
)

// In-memory stand-ins for the repository layer.

type fakeQuizStore struct {
	quizzes       map[string]*repository.Quiz
	order         []string
	activationSet []sql.NullTime
}

func newFakeQuizStore(quizzes ...*repository.Quiz) *fakeQuizStore {
	store := &fakeQuizStore{quizzes: make(map[string]*repository.Quiz)}
	for _, quiz := range quizzes {
		store.quizzes[quiz.ID] = quiz
		store.order = append(store.order, quiz.ID)
	}
	return store
}

func (s *fakeQuizStore) CreateQuiz(ctx context.Context, quiz *repository.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = "quiz-" + quiz.Title
	}
	s.quizzes[quiz.ID] = quiz
	s.order = append(s.order, quiz.ID)
	return nil
}

func (s *fakeQuizStore) GetQuizByID(ctx context.Context, quizID string) (*repository.Quiz, error) {
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *quiz
	return &copied, nil
}

func (s *fakeQuizStore) ListQuizzes(ctx context.Context) ([]*repository.Quiz, error) {
	out := make([]*repository.Quiz, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.quizzes[id])
	}
	return out, nil
}

func (s *fakeQuizStore) UpdateQuiz(ctx context.Context, quiz *repository.Quiz) error {
	if _, ok := s.quizzes[quiz.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *quiz
	s.quizzes[quiz.ID] = &copied
	return nil
}

func (s *fakeQuizStore) SetActivation(ctx context.Context, quizID string, isActive bool, endTime sql.NullTime) error {
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return sql.ErrNoRows
	}
	quiz.IsActive = isActive
	// mirrors the SQL guard: a set end time is never overwritten
	if endTime.Valid && !quiz.EndTime.Valid {
		quiz.EndTime = endTime
	}
	s.activationSet = append(s.activationSet, endTime)
	return nil
}

func (s *fakeQuizStore) DeleteQuizCascade(ctx context.Context, quizID string) error {
	if _, ok := s.quizzes[quizID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.quizzes, quizID)
	return nil
}

type fakeCatalogStore struct {
	subjects map[string]*repository.Subject
	chapters map[string]*repository.Chapter
}

func (s *fakeCatalogStore) GetSubjectByID(ctx context.Context, subjectID string) (*repository.Subject, error) {
	subject, ok := s.subjects[subjectID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return subject, nil
}

func (s *fakeCatalogStore) GetChapterByID(ctx context.Context, chapterID string) (*repository.Chapter, error) {
	chapter, ok := s.chapters[chapterID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return chapter, nil
}

type fakeQuestionStore struct {
	byQuiz map[string][]*repository.Question
}

func (s *fakeQuestionStore) ListQuestionsByQuiz(ctx context.Context, quizID string) ([]*repository.Question, error) {
	return s.byQuiz[quizID], nil
}

func (s *fakeQuestionStore) CountQuestionsByQuiz(ctx context.Context, quizID string) (int, error) {
	return len(s.byQuiz[quizID]), nil
}

type fakeScoreStore struct {
	created []*repository.Score
	listed  []*repository.ScoreWithQuiz
	listErr error
}

func (s *fakeScoreStore) CreateScore(ctx context.Context, score *repository.Score) error {
	score.ID = "score-1"
	s.created = append(s.created, score)
	return nil
}

func (s *fakeScoreStore) ListScoresByUser(ctx context.Context, userID string) ([]*repository.ScoreWithQuiz, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listed, nil
}

type fakePublisher struct {
	published []publishedMessage
	err       error
}

type publishedMessage struct {
	queue string
	body  []byte
}

func (p *fakePublisher) Publish(ctx context.Context, queueName string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedMessage{queue: queueName, body: body})
	return nil
}

type fakeUserDirectory struct {
	users []*repository.User
	err   error
}

func (d *fakeUserDirectory) ListUsers(ctx context.Context) ([]*repository.User, error) {
	return d.users, d.err
}

func (d *fakeUserDirectory) ListUsersByRoleNot(ctx context.Context, role string) ([]*repository.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []*repository.User
	for _, user := range d.users {
		if user.Role != role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (d *fakeUserDirectory) GetUserByID(ctx context.Context, userID string) (*repository.User, error) {
	for _, user := range d.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

// fakeEmailSender records recipients and fails the addresses in failFor.
type fakeEmailSender struct {
	reminders     []string
	announcements []string
	confirmations []string
	failFor       map[string]bool
}

func (s *fakeEmailSender) SendDailyReminder(email, fullName string) error {
	if s.failFor[email] {
		return errors.New("smtp: connection refused")
	}
	s.reminders = append(s.reminders, email)
	return nil
}

func (s *fakeEmailSender) SendNewQuizNotification(email, fullName, quizTitle, subjectName string) error {
	if s.failFor[email] {
		return errors.New("smtp: connection refused")
	}
	s.announcements = append(s.announcements, email)
	return nil
}

func (s *fakeEmailSender) SendRegistrationConfirmation(email, fullName string) error {
	if s.failFor[email] {
		return errors.New("smtp: connection refused")
	}
	s.confirmations = append(s.confirmations, email)
	return nil
}
