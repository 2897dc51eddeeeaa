package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/pipeline"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validation"
)

type tableRequest struct {
	c             *gin.Context
	table         *models.Table
	newTable      *models.Table
	reservationID uint
	reservation   *models.Reservation
}

type TableController struct {
	Tables       *services.TableService
	Reservations *services.ReservationService
	Events       hub.Publisher

	read, create, seat, finish pipeline.Chain[tableRequest]
}

func NewTableController(tables *services.TableService, reservations *services.ReservationService, events hub.Publisher) *TableController {
	tc := &TableController{
		Tables:       tables,
		Reservations: reservations,
		Events:       publisherOrNoop(events),
	}
	tc.read = pipeline.New[tableRequest](tc.checkID, tc.respondRead)
	tc.create = pipeline.New[tableRequest](tc.validateNewTable, tc.persistNew)
	tc.seat = pipeline.New[tableRequest](tc.validateSeating, tc.validateCapacity, tc.persistSeating)
	tc.finish = pipeline.New[tableRequest](tc.checkID, tc.validateFinish, tc.persistFinish)
	return tc
}

// GetAllTables -> every table ordered by name
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

func (tc *TableController) GetTable(c *gin.Context) {
	run(c, tc.read, &tableRequest{c: c})
}

func (tc *TableController) CreateTable(c *gin.Context) {
	run(c, tc.create, &tableRequest{c: c})
}

// SeatTable -> assign a booked reservation to a free table
func (tc *TableController) SeatTable(c *gin.Context) {
	run(c, tc.seat, &tableRequest{c: c})
}

// FinishTable -> free the table and finish its reservation
func (tc *TableController) FinishTable(c *gin.Context) {
	run(c, tc.finish, &tableRequest{c: c})
}

func (tc *TableController) checkID(r *tableRequest) error {
	raw := r.c.Param("table_id")
	id, ok := parseID(raw)
	if !ok {
		return utils.NotFound("Table ID: %s was not found", raw)
	}

	table, err := tc.Tables.Read(r.c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFound("Table ID: %s was not found", raw)
	}
	if err != nil {
		return err
	}
	r.table = table
	return nil
}

func (tc *TableController) validateNewTable(r *tableRequest) error {
	input, err := bindData[validation.TableInput](r.c)
	if err != nil {
		return err
	}
	r.newTable, err = validation.NewTable(input)
	return err
}

func (tc *TableController) validateSeating(r *tableRequest) error {
	input, err := bindData[validation.SeatInput](r.c)
	if err != nil {
		return err
	}
	id, err := validation.SeatReservationID(input)
	if err != nil {
		return err
	}

	reservation, err := tc.Reservations.Read(r.c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFound("Reservation %d does not exist", id)
	}
	if err != nil {
		return err
	}
	if err := validation.Seatable(reservation); err != nil {
		return err
	}

	r.reservationID = id
	r.reservation = reservation
	return nil
}

func (tc *TableController) validateCapacity(r *tableRequest) error {
	if err := tc.checkID(r); err != nil {
		return err
	}
	return validation.Capacity(r.table, r.reservation)
}

func (tc *TableController) validateFinish(r *tableRequest) error {
	return validation.Finishable(r.table)
}

func (tc *TableController) respondRead(r *tableRequest) error {
	utils.RespondJSON(r.c, http.StatusOK, r.table)
	return nil
}

func (tc *TableController) persistNew(r *tableRequest) error {
	t := r.newTable
	err := tc.Tables.Create(r.c.Request.Context(), t)
	if err != nil {
		if t.ReservationID != nil {
			return reservationError(err, *t.ReservationID)
		}
		return err
	}

	tc.Events.Publish(hub.EventTableCreated, t)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", t.TableName, t.Capacity)
	utils.RespondJSON(r.c, http.StatusCreated, t)
	return nil
}

func (tc *TableController) persistSeating(r *tableRequest) error {
	seated, err := tc.Tables.Seat(r.c.Request.Context(), r.table.TableID, r.reservationID)
	switch {
	case errors.Is(err, services.ErrTableOccupied):
		return utils.BadRequest("%s is currently occupied.", r.table.TableName)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound("Table ID: %d was not found", r.table.TableID)
	case err != nil:
		return reservationError(err, r.reservationID)
	}

	tc.Events.Publish(hub.EventTableSeated, seated)
	utils.InfoLogger.Printf("Reservation %d seated at %s", r.reservationID, seated.TableName)
	utils.RespondJSON(r.c, http.StatusOK, seated)
	return nil
}

func (tc *TableController) persistFinish(r *tableRequest) error {
	freed, err := tc.Tables.Finish(r.c.Request.Context(), r.table.TableID)
	switch {
	case errors.Is(err, services.ErrTableNotOccupied):
		return utils.BadRequest("%s is not occupied.", r.table.TableName)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound("Table ID: %d was not found", r.table.TableID)
	case err != nil:
		return err
	}

	tc.Events.Publish(hub.EventTableFinished, freed)
	utils.InfoLogger.Printf("%s finished and is free again", freed.TableName)
	utils.RespondJSON(r.c, http.StatusOK, freed)
	return nil
}

// reservationError maps seating failures raised by the reservation side.
func reservationError(err error, id uint) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound("Reservation %d does not exist", id)
	case errors.Is(err, services.ErrReservationSeated):
		return utils.BadRequest("Guests are already seated")
	case errors.Is(err, services.ErrReservationClosed):
		return utils.BadRequest("Reservation %d is finished or cancelled.", id)
	}
	return err
}
