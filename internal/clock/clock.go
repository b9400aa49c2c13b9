// Package clock supplies the application's notion of current time.
//
// All stored and compared timestamps live in one fixed civil offset
// (IST, UTC+05:30). A timestamp parsed without zone information is
// tagged with that offset as-is; no conversion is performed.
package clock

import (
	"fmt"
	"time"
)

// AppZone is the single fixed offset every timestamp is expressed in.
var AppZone = time.FixedZone("IST", 5*3600+30*60)

type Clock interface {
	Now() time.Time
}

// System reads the wall clock, tagged with AppZone.
type System struct{}

func (System) Now() time.Time {
	return time.Now().In(AppZone)
}

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

const civilLayout = "2006-01-02 15:04"

// ParseCivil accepts either "YYYY-MM-DD HH:MM" (tagged with AppZone) or
// RFC 3339 with an explicit offset.
func ParseCivil(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(civilLayout, s, AppZone); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(AppZone), nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime format, use YYYY-MM-DD HH:MM")
}

// ParseDate accepts "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, AppZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return t, nil
}
