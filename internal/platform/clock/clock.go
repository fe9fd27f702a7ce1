package clock

import "time"

// Clock returns the current instant. Services sample it once per request.
type Clock interface {
	Now() time.Time
}

// Local reports wall-clock time in a fixed competition location.
type Local struct {
	loc *time.Location
}

func NewLocal(loc *time.Location) Local {
	if loc == nil {
		loc = time.Local
	}
	return Local{loc: loc}
}

func (c Local) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c Local) Location() *time.Location {
	return c.loc
}

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (c Fixed) Now() time.Time {
	return c.At
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}
