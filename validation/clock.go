package validation

import (
	"fmt"
	"regexp"
	"strconv"
)

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock accepts HH:MM and HH:MM:SS; seconds are dropped.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("invalid clock %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid clock %q", s)
	}
	if m[3] != "" {
		if sec, _ := strconv.Atoi(m[3]); sec > 59 {
			return Clock{}, fmt.Errorf("invalid clock %q", s)
		}
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
