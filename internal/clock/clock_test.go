package clock

import (
	"testing"
	"time"
)

func TestParseCivil(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "civil datetime tagged with app zone",
			input: "2026-03-10 09:30",
			want:  time.Date(2026, 3, 10, 9, 30, 0, 0, AppZone),
		},
		{
			name:  "rfc3339 with explicit offset",
			input: "2026-03-10T09:30:00+05:30",
			want:  time.Date(2026, 3, 10, 9, 30, 0, 0, AppZone),
		},
		{
			name:  "rfc3339 utc converted into app zone",
			input: "2026-03-10T04:00:00Z",
			want:  time.Date(2026, 3, 10, 9, 30, 0, 0, AppZone),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "date only",
			input:   "2026-03-10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCivil(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCivil(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCivil(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseCivil(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2000-01-15")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(time.Date(2000, 1, 15, 0, 0, 0, 0, AppZone)) {
		t.Errorf("ParseDate() = %v", got)
	}

	if _, err := ParseDate("15/01/2000"); err == nil {
		t.Error("ParseDate() accepted a non-ISO date")
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2026, 3, 10, 9, 30, 0, 0, AppZone)
	var c Clock = Fixed{Instant: instant}
	if !c.Now().Equal(instant) {
		t.Errorf("Fixed.Now() = %v, want %v", c.Now(), instant)
	}
}
