package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jg4611/mad2-by-amit/internal/repository"
)

type UserDirectory interface {
	ListUsers(ctx context.Context) ([]*repository.User, error)
	ListUsersByRoleNot(ctx context.Context, role string) ([]*repository.User, error)
	GetUserByID(ctx context.Context, userID string) (*repository.User, error)
}

type EmailSender interface {
	SendDailyReminder(email, fullName string) error
	SendNewQuizNotification(email, fullName, quizTitle, subjectName string) error
	SendRegistrationConfirmation(email, fullName string) error
}

type NotificationService struct {
	users  UserDirectory
	sender EmailSender
}

func NewNotificationService(users UserDirectory, sender EmailSender) *NotificationService {
	return &NotificationService{
		users:  users,
		sender: sender,
	}
}

// DispatchDailyReminder sends one reminder to every user in the directory.
// Each recipient is attempted exactly once; a failed send is logged and
// skipped until the next scheduled firing. The recipient set is read here,
// at execution time, so users created since the last firing are included.
func (s *NotificationService) DispatchDailyReminder(ctx context.Context) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		if err := s.sender.SendDailyReminder(user.Email, user.FullName); err != nil {
			log.Printf("Failed to send reminder to %s: %v", user.Email, err)
			continue
		}
	}

	log.Printf("Daily reminder dispatched to %d users", len(users))
	return nil
}

// DispatchNewQuizNotification announces a new quiz to every non-admin user,
// with the same per-recipient isolation as the daily reminder.
func (s *NotificationService) DispatchNewQuizNotification(ctx context.Context, quizTitle, subjectName string) error {
	users, err := s.users.ListUsersByRoleNot(ctx, repository.RoleAdmin)
	if err != nil {
		return err
	}

	for _, user := range users {
		if err := s.sender.SendNewQuizNotification(user.Email, user.FullName, quizTitle, subjectName); err != nil {
			log.Printf("Failed to send new quiz notification to %s: %v", user.Email, err)
			continue
		}
	}

	log.Printf("New quiz notification sent to %d users", len(users))
	return nil
}

// HandleDailyReminder consumes the scheduler's reminder job. The payload is
// empty; the job discovers its own recipient set.
func (s *NotificationService) HandleDailyReminder(ctx context.Context, data []byte) error {
	return s.DispatchDailyReminder(ctx)
}

func (s *NotificationService) HandleQuizCreated(ctx context.Context, data []byte) error {
	var event struct {
		QuizID  string `json:"quiz_id"`
		Title   string `json:"title"`
		Subject string `json:"subject"`
	}

	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	log.Printf("Processing quiz_created event for quiz %s", event.QuizID)
	return s.DispatchNewQuizNotification(ctx, event.Title, event.Subject)
}

func (s *NotificationService) HandleUserRegistered(ctx context.Context, data []byte) error {
	var event struct {
		UserID   string `json:"user_id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}

	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	log.Printf("Sending registration confirmation to %s", event.Email)
	if err := s.sender.SendRegistrationConfirmation(event.Email, event.FullName); err != nil {
		// best-effort: the account exists either way
		log.Printf("Failed to send registration email to %s: %v", event.Email, err)
	}
	return nil
}
