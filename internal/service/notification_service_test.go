package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jg4611/mad2-by-amit/internal/repository"
)

func directoryWith(users ...*repository.User) *fakeUserDirectory {
	return &fakeUserDirectory{users: users}
}

func TestDispatchDailyReminderIsolatesFailures(t *testing.T) {
	directory := directoryWith(
		&repository.User{ID: "u1", Email: "a@example.com", Role: repository.RoleUser},
		&repository.User{ID: "u2", Email: "b@example.com", Role: repository.RoleUser},
		&repository.User{ID: "u3", Email: "c@example.com", Role: repository.RoleUser},
	)
	sender := &fakeEmailSender{failFor: map[string]bool{"b@example.com": true}}
	svc := NewNotificationService(directory, sender)

	if err := svc.DispatchDailyReminder(context.Background()); err != nil {
		t.Fatalf("DispatchDailyReminder() error = %v, a failed recipient must not fail the batch", err)
	}

	want := []string{"a@example.com", "c@example.com"}
	if !reflect.DeepEqual(sender.reminders, want) {
		t.Errorf("delivered to %v, want %v", sender.reminders, want)
	}
}

func TestDispatchDailyReminderDirectoryError(t *testing.T) {
	directory := &fakeUserDirectory{err: errors.New("db down")}
	svc := NewNotificationService(directory, &fakeEmailSender{})

	if err := svc.DispatchDailyReminder(context.Background()); err == nil {
		t.Error("DispatchDailyReminder() error = nil, want directory error surfaced")
	}
}

func TestDispatchNewQuizNotificationSkipsAdmins(t *testing.T) {
	directory := directoryWith(
		&repository.User{ID: "u1", Email: "admin@example.com", Role: repository.RoleAdmin},
		&repository.User{ID: "u2", Email: "learner@example.com", Role: repository.RoleUser},
	)
	sender := &fakeEmailSender{}
	svc := NewNotificationService(directory, sender)

	if err := svc.DispatchNewQuizNotification(context.Background(), "Lenses", "Physics"); err != nil {
		t.Fatalf("DispatchNewQuizNotification() error = %v", err)
	}

	want := []string{"learner@example.com"}
	if !reflect.DeepEqual(sender.announcements, want) {
		t.Errorf("delivered to %v, want %v", sender.announcements, want)
	}
}

func TestHandleQuizCreated(t *testing.T) {
	directory := directoryWith(
		&repository.User{ID: "u1", Email: "learner@example.com", Role: repository.RoleUser},
	)
	sender := &fakeEmailSender{}
	svc := NewNotificationService(directory, sender)

	payload := []byte(`{"quiz_id":"quiz-1","title":"Lenses","subject":"Physics"}`)
	if err := svc.HandleQuizCreated(context.Background(), payload); err != nil {
		t.Fatalf("HandleQuizCreated() error = %v", err)
	}
	if len(sender.announcements) != 1 {
		t.Errorf("delivered %d announcements, want 1", len(sender.announcements))
	}

	if err := svc.HandleQuizCreated(context.Background(), []byte("not json")); err == nil {
		t.Error("HandleQuizCreated() error = nil for malformed payload, want unmarshal error for requeue")
	}
}

func TestHandleUserRegistered(t *testing.T) {
	sender := &fakeEmailSender{}
	svc := NewNotificationService(directoryWith(), sender)

	payload := []byte(`{"user_id":"u1","email":"new@example.com","full_name":"New User"}`)
	if err := svc.HandleUserRegistered(context.Background(), payload); err != nil {
		t.Fatalf("HandleUserRegistered() error = %v", err)
	}
	if len(sender.confirmations) != 1 || sender.confirmations[0] != "new@example.com" {
		t.Errorf("confirmations = %v, want [new@example.com]", sender.confirmations)
	}
}

func TestHandleUserRegisteredSendFailureIsSwallowed(t *testing.T) {
	sender := &fakeEmailSender{failFor: map[string]bool{"new@example.com": true}}
	svc := NewNotificationService(directoryWith(), sender)

	payload := []byte(`{"user_id":"u1","email":"new@example.com","full_name":"New User"}`)
	if err := svc.HandleUserRegistered(context.Background(), payload); err != nil {
		t.Errorf("HandleUserRegistered() error = %v, want nil so the message is not requeued", err)
	}
}
