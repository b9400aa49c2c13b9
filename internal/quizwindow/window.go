// Package quizwindow derives a quiz's lifecycle state from its time window.
package quizwindow

import "time"

type State string

const (
	StateUpcoming State = "upcoming"
	StateActive   State = "active"
	StateExpired  State = "expired"
)

// Status reports where now falls relative to the [start, end] window.
// Both boundaries are inclusive. A quiz with no start time has not been
// scheduled yet; a quiz with a start time but no end time has not been
// activated yet. Both are upcoming, never attemptable.
func Status(start, end *time.Time, now time.Time) State {
	if start == nil || now.Before(*start) {
		return StateUpcoming
	}
	if end == nil {
		return StateUpcoming
	}
	if now.After(*end) {
		return StateExpired
	}
	return StateActive
}

// DeriveEndTime computes the window close from the start and duration.
// Used once, on first activation of a quiz without an end time; an
// already-set end time is never overwritten.
func DeriveEndTime(start time.Time, hours, minutes int) time.Time {
	return start.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}
