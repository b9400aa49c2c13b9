package quizwindow

import (
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		now   time.Time
		want  State
	}{
		{
			name: "no start time",
			now:  end.Add(time.Hour),
			want: StateUpcoming,
		},
		{
			name:  "before start",
			start: &start,
			end:   &end,
			now:   start.Add(-time.Minute),
			want:  StateUpcoming,
		},
		{
			name:  "exactly at start",
			start: &start,
			end:   &end,
			now:   start,
			want:  StateActive,
		},
		{
			name:  "inside window",
			start: &start,
			end:   &end,
			now:   start.Add(45 * time.Minute),
			want:  StateActive,
		},
		{
			name:  "exactly at end",
			start: &start,
			end:   &end,
			now:   end,
			want:  StateActive,
		},
		{
			name:  "after end",
			start: &start,
			end:   &end,
			now:   end.Add(time.Second),
			want:  StateExpired,
		},
		{
			name:  "started but never activated",
			start: &start,
			now:   start.Add(time.Hour),
			want:  StateUpcoming,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.start, tt.end, tt.now); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveEndTime(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		hours   int
		minutes int
		want    time.Time
	}{
		{"ninety minutes", 1, 30, start.Add(90 * time.Minute)},
		{"zero duration", 0, 0, start},
		{"minutes only", 0, 45, start.Add(45 * time.Minute)},
		{"overflowing minutes", 0, 150, start.Add(150 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveEndTime(start, tt.hours, tt.minutes); !got.Equal(tt.want) {
				t.Errorf("DeriveEndTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
