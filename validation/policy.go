package validation

import (
	"time"

	"github.com/yeremiapane/restaurant-reservations/utils"
)

const dateLayout = "2006-01-02"

// Policy holds the restaurant's booking rules. Opens is the first bookable
// time and LastBooking the first time that is no longer bookable.
type Policy struct {
	ClosedDay   time.Weekday
	Opens       Clock
	LastBooking Clock
	Location    *time.Location

	// TrustClientTime makes same-day checks use the current_time sent by
	// the client when one is present.
	TrustClientTime bool

	Now func() time.Time
}

func DefaultPolicy() Policy {
	return Policy{
		ClosedDay:       time.Tuesday,
		Opens:           Clock{Hour: 10, Minute: 30},
		LastBooking:     Clock{Hour: 21, Minute: 30},
		Location:        time.UTC,
		TrustClientTime: true,
		Now:             time.Now,
	}
}

func (p Policy) now() time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	if p.Now == nil {
		return time.Now().In(loc)
	}
	return p.Now().In(loc)
}

// Today is the current calendar date in the restaurant's time zone.
func (p Policy) Today() string {
	return p.now().Format(dateLayout)
}

// CheckDate rejects the closed weekday and days before today.
func (p Policy) CheckDate(date string) error {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return utils.BadRequest("Invalid reservation_date!")
	}

	if day.Weekday() == p.ClosedDay {
		return utils.BadRequest("Restaurant is closed on %ss!", p.ClosedDay)
	}

	if date < p.Today() {
		return utils.BadRequest("Reservations should be made in the future!")
	}
	return nil
}

// CheckTime enforces opening hours and, for same-day bookings, that the time
// is still ahead of the reference clock.
func (p Policy) CheckTime(date, clock, clientNow string) error {
	at, err := ParseClock(clock)
	if err != nil {
		return utils.BadRequest("Invalid reservation_time!")
	}

	if date == p.Today() {
		ref, err := p.reference(clientNow)
		if err != nil {
			return err
		}
		if at.Minutes() <= ref.Minutes() {
			return utils.BadRequest("Invalid time as it has already passed!")
		}
	}

	if at.Before(p.Opens) {
		return utils.BadRequest("Restaurant is closed at this time.")
	}
	if !at.Before(p.LastBooking) {
		return utils.BadRequest("Restaurant is unavailable to serve due to time being near/after closing.")
	}
	return nil
}

func (p Policy) reference(clientNow string) (Clock, error) {
	if p.TrustClientTime && clientNow != "" {
		ref, err := ParseClock(clientNow)
		if err != nil {
			return Clock{}, utils.BadRequest("Invalid current_time!")
		}
		return ref, nil
	}
	now := p.now()
	return Clock{Hour: now.Hour(), Minute: now.Minute()}, nil
}
