// Package scheduler holds the process-wide recurring trigger for reminder
// dispatch. The trigger only enqueues; the job reads its recipient set when
// it executes, in a separate scheduling domain, so a slow dispatch never
// delays the next firing.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/jg4611/mad2-by-amit/pkg/messaging"
)

type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

type Scheduler struct {
	publisher Publisher
	interval  time.Duration
}

func New(publisher Publisher, interval time.Duration) *Scheduler {
	return &Scheduler{
		publisher: publisher,
		interval:  interval,
	}
}

// Start fires the reminder trigger on the fixed interval until ctx is
// cancelled. Each firing enqueues exactly one dispatch job with no payload.
// The schedule carries no persisted state; restarting the process simply
// re-registers the ticker.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Reminder scheduler started with interval %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.fire(ctx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	if err := s.publisher.Publish(ctx, messaging.QueueDailyReminder, []byte("{}")); err != nil {
		log.Printf("Failed to enqueue daily reminder job: %v", err)
	}
}
