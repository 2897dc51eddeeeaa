package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/models"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		in      *TableInput
		wantErr string
	}{
		{name: "nil", in: nil, wantErr: "Data Missing!"},
		{name: "missing name", in: &TableInput{Capacity: float64(2)}, wantErr: "Invalid table_name"},
		{name: "one char name", in: &TableInput{TableName: "A", Capacity: float64(2)}, wantErr: "Invalid table_name"},
		{name: "missing capacity", in: &TableInput{TableName: "Bar #1"}, wantErr: "Invalid capacity"},
		{name: "zero capacity", in: &TableInput{TableName: "Bar #1", Capacity: float64(0)}, wantErr: "Invalid capacity"},
		{name: "string capacity", in: &TableInput{TableName: "Bar #1", Capacity: "2"}, wantErr: "Invalid capacity"},
		{name: "valid", in: &TableInput{TableName: "Bar #1", Capacity: float64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.in)
			if tt.wantErr != "" {
				assertBadRequest(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, table.Capacity)
			assert.False(t, table.Occupied)
			assert.Nil(t, table.ReservationID)
		})
	}
}

func TestNewTableWithReservationIsOccupied(t *testing.T) {
	table, err := NewTable(&TableInput{TableName: "#1", Capacity: float64(6), ReservationID: float64(3)})
	require.NoError(t, err)
	assert.True(t, table.Occupied)
	require.NotNil(t, table.ReservationID)
	assert.Equal(t, uint(3), *table.ReservationID)
}

func TestSeatReservationID(t *testing.T) {
	_, err := SeatReservationID(nil)
	assertBadRequest(t, err, "Data Missing!")

	_, err = SeatReservationID(&SeatInput{})
	assertBadRequest(t, err, "reservation_id is missing")

	tests := []struct {
		name    string
		value   interface{}
		want    uint
		wantErr string
	}{
		{name: "number", value: float64(7), want: 7},
		{name: "numeric string", value: "7", want: 7},
		{name: "padded string", value: " 12 ", want: 12},
		{name: "zero", value: float64(0), wantErr: "reservation_id is missing"},
		{name: "empty string", value: "", wantErr: "reservation_id is missing"},
		{name: "word", value: "seven", wantErr: "Invalid reservation_id"},
		{name: "negative", value: float64(-2), wantErr: "Invalid reservation_id"},
		{name: "fraction", value: 1.5, wantErr: "Invalid reservation_id"},
		{name: "bool", value: true, wantErr: "Invalid reservation_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := SeatReservationID(&SeatInput{ReservationID: tt.value})
			if tt.wantErr != "" {
				assertBadRequest(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNewTableReservationIDForms(t *testing.T) {
	table, err := NewTable(&TableInput{TableName: "#1", Capacity: float64(6), ReservationID: "4"})
	require.NoError(t, err)
	require.NotNil(t, table.ReservationID)
	assert.Equal(t, uint(4), *table.ReservationID)

	_, err = NewTable(&TableInput{TableName: "#1", Capacity: float64(6), ReservationID: "four"})
	assertBadRequest(t, err, "Invalid reservation_id")
}

func TestSeatable(t *testing.T) {
	assert.NoError(t, Seatable(&models.Reservation{ReservationID: 1, Status: models.StatusBooked}))
	assertBadRequest(t, Seatable(&models.Reservation{ReservationID: 1, Status: models.StatusSeated}), "Guests are already seated")
	assertBadRequest(t, Seatable(&models.Reservation{ReservationID: 1, Status: models.StatusFinished}), "Reservation 1 is finished.")
	assertBadRequest(t, Seatable(&models.Reservation{ReservationID: 1, Status: models.StatusCancelled}), "Reservation 1 is cancelled.")
}

func TestCapacity(t *testing.T) {
	small := &models.Table{TableName: "Table 3", Capacity: 2}
	party := &models.Reservation{People: 4}

	assertBadRequest(t, Capacity(small, party), "Invalid capacity. Table 3 is unable to seat 4 people.")

	big := &models.Table{TableName: "#1", Capacity: 6}
	assert.NoError(t, Capacity(big, party))

	big.Occupied = true
	assertBadRequest(t, Capacity(big, party), "#1 is currently occupied.")
}

func TestFinishable(t *testing.T) {
	assertBadRequest(t, Finishable(&models.Table{TableName: "Table 3"}), "Table 3 is not occupied.")
	assert.NoError(t, Finishable(&models.Table{TableName: "Table 3", Occupied: true}))
}
