package clock

import (
	"time"

	"hotel/shared/timezone"
)

// Clock supplies the current time in the application timezone.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func New() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return timezone.Now()
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
