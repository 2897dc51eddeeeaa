package validation

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReservationInput is the "data" object of a reservation request. People
// stays untyped so a non-numeric value can be told apart from a missing one.
type ReservationInput struct {
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	MobileNumber    string      `json:"mobile_number"`
	People          interface{} `json:"people"`
	ReservationDate string      `json:"reservation_date"`
	ReservationTime string      `json:"reservation_time"`
	Status          string      `json:"status"`
	CurrentTime     string      `json:"current_time"`
}

// NewReservation validates a creation payload and returns the record to
// insert. Status is not carried over; new reservations are always booked.
func NewReservation(in *ReservationInput) (*models.Reservation, error) {
	r, err := ReservationDetails(in)
	if err != nil {
		return nil, err
	}

	switch in.Status {
	case models.StatusSeated:
		return nil, utils.BadRequest("Invalid! Status cannot be seated.")
	case models.StatusFinished:
		return nil, utils.BadRequest("Invalid! Status cannot be finished.")
	}

	r.Status = models.StatusBooked
	return r, nil
}

// ReservationDetails validates the editable fields of a reservation.
func ReservationDetails(in *ReservationInput) (*models.Reservation, error) {
	if in == nil {
		return nil, utils.BadRequest("Data Missing!")
	}

	switch {
	case blank(in.FirstName):
		return nil, utils.BadRequest("Add customer first_name!")
	case blank(in.LastName):
		return nil, utils.BadRequest("Add customer last_name!")
	case blank(in.MobileNumber):
		return nil, utils.BadRequest("Add customer mobile_number!")
	case falsy(in.People):
		return nil, utils.BadRequest("Add number of people!")
	case blank(in.ReservationDate):
		return nil, utils.BadRequest("Add a reservation_date!")
	case blank(in.ReservationTime):
		return nil, utils.BadRequest("Add a reservation_time!")
	}

	if !datePattern.MatchString(in.ReservationDate) {
		return nil, utils.BadRequest("Invalid reservation_date!")
	}
	if _, err := time.Parse(dateLayout, in.ReservationDate); err != nil {
		return nil, utils.BadRequest("Invalid reservation_date!")
	}

	at, err := ParseClock(in.ReservationTime)
	if err != nil {
		return nil, utils.BadRequest("Invalid reservation_time!")
	}

	n, ok := in.People.(float64)
	if !ok {
		return nil, utils.BadRequest("Number not given for people!")
	}
	people, ok := wholePositive(n)
	if !ok {
		return nil, utils.BadRequest("Invalid number of people!")
	}

	return &models.Reservation{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		MobileNumber:    in.MobileNumber,
		People:          people,
		ReservationDate: in.ReservationDate,
		ReservationTime: at.String(),
	}, nil
}

const seatedRebookMessage = "Reservation is seated and cannot be booked again."

// SeatedRebook is the rejection for moving seated guests back to booked.
func SeatedRebook() error {
	return utils.BadRequest(seatedRebookMessage)
}

// StatusUpdate checks a requested status transition.
func StatusUpdate(current, requested string) error {
	if current == models.StatusFinished {
		return utils.BadRequest("Reservation is finished and cannot be updated.")
	}
	switch requested {
	case models.StatusBooked:
		if current == models.StatusSeated {
			return utils.BadRequest(seatedRebookMessage)
		}
		return nil
	case models.StatusCancelled, models.StatusSeated, models.StatusFinished:
		return nil
	}
	return utils.BadRequest("Status is unknown and cannot be updated.")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// falsy mirrors what an absent or zero JSON value looks like after decoding.
func falsy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return x == 0
	case string:
		return x == ""
	case bool:
		return !x
	}
	return false
}

func wholePositive(n float64) (int, bool) {
	if n < 1 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
