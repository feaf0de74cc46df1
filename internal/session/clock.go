package session

import "time"

// DefaultDayLayout renders a short month/day/year date such as 10/19/2026.
const DefaultDayLayout = "1/2/2006"

// Clock is the wall-clock capability used to decide the current day.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock returns the system clock.
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a settable clock for tests and replays.
type MockClock struct {
	currentTime time.Time
}

// NewMockClock returns a MockClock stopped at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the time the clock is stopped at.
func (c *MockClock) Now() time.Time {
	return c.currentTime
}

// Set moves the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

// Add advances the clock by d.
func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// DaySource yields the calendar-day string a session belongs to.
type DaySource interface {
	Today() string
}

// ClockDays formats the clock's current time with a display layout.
// Two days are the same day when their strings are equal; a timezone change in
// the middle of a session is not detected.
type ClockDays struct {
	clock    Clock
	layout   string
	location *time.Location
}

// NewDaySource builds a DaySource. An empty layout falls back to
// DefaultDayLayout and a nil location to time.Local.
func NewDaySource(clock Clock, layout string, location *time.Location) *ClockDays {
	if layout == "" {
		layout = DefaultDayLayout
	}
	if location == nil {
		location = time.Local
	}
	return &ClockDays{clock: clock, layout: layout, location: location}
}

// Today implements DaySource.
func (d *ClockDays) Today() string {
	return d.clock.Now().In(d.location).Format(d.layout)
}

// Now returns the underlying clock time, used to stamp records.
func (d *ClockDays) Now() time.Time {
	return d.clock.Now()
}
