package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type capturePublisher struct {
	fired   chan string
	failing atomic.Bool
}

func (p *capturePublisher) Publish(ctx context.Context, queueName string, body []byte) error {
	if p.failing.Load() {
		return errors.New("broker down")
	}
	p.fired <- queueName
	return nil
}

func TestSchedulerFiresOnInterval(t *testing.T) {
	publisher := &capturePublisher{fired: make(chan string, 8)}
	s := New(publisher, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case queue := <-publisher.fired:
			if queue != "notifications.daily_reminder" {
				t.Fatalf("published to %q, want notifications.daily_reminder", queue)
			}
		case <-time.After(time.Second):
			t.Fatal("scheduler did not fire within a second")
		}
	}
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	publisher := &capturePublisher{fired: make(chan string, 8)}
	s := New(publisher, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	select {
	case <-publisher.fired:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not fire before cancel")
	}

	cancel()
	// drain anything in flight, then confirm silence
	time.Sleep(20 * time.Millisecond)
	for len(publisher.fired) > 0 {
		<-publisher.fired
	}
	select {
	case <-publisher.fired:
		t.Error("scheduler fired after context cancellation")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestSchedulerSurvivesPublishFailure(t *testing.T) {
	publisher := &capturePublisher{fired: make(chan string, 8)}
	publisher.failing.Store(true)
	s := New(publisher, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	// a failed enqueue must not kill the loop
	time.Sleep(25 * time.Millisecond)
	publisher.failing.Store(false)

	select {
	case <-publisher.fired:
	case <-time.After(time.Second):
		t.Fatal("scheduler stopped firing after a publish failure")
	}
}
