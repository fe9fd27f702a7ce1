package access

import (
	"fmt"
	"strings"
	"time"
)

// LockLead is how long before kickoff a match stops accepting team
// manager edits.
const LockLead = 5 * time.Minute

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseKickoff combines a YYYY-MM-DD date and an HH:MM time into a local
// wall-clock instant in loc.
func ParseKickoff(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	// HH:MM:SS is accepted too; postgres TIME columns render that way.
	layout := DateLayout + " " + TimeLayout
	if len(clock) == len("15:04:05") {
		layout = DateLayout + " 15:04:05"
	}

	kickoff, err := time.ParseInLocation(layout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse kickoff %q %q: %w", date, clock, err)
	}
	return kickoff, nil
}

// IsAutoLocked reports whether now is at or past five minutes before the
// scheduled kickoff. Date and time are read as wall-clock in now's
// location. Unparseable input reports locked.
func IsAutoLocked(date, clock string, now time.Time) bool {
	return IsAutoLockedWithLead(date, clock, now, LockLead)
}

func IsAutoLockedWithLead(date, clock string, now time.Time, lead time.Duration) bool {
	kickoff, err := ParseKickoff(date, clock, now.Location())
	if err != nil {
		return true
	}
	if lead < 0 {
		lead = 0
	}
	threshold := kickoff.Add(-lead)
	return !now.Before(threshold)
}
