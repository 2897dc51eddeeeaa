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

// reservationRequest is the state shared by the steps of one request.
type reservationRequest struct {
	c           *gin.Context
	reservation *models.Reservation
	input       *validation.ReservationInput
	changes     *models.Reservation
	status      string
}

type ReservationController struct {
	Reservations *services.ReservationService
	Policy       validation.Policy
	Events       hub.Publisher

	read, create, update, updateStatus pipeline.Chain[reservationRequest]
}

func NewReservationController(reservations *services.ReservationService, policy validation.Policy, events hub.Publisher) *ReservationController {
	rc := &ReservationController{
		Reservations: reservations,
		Policy:       policy,
		Events:       publisherOrNoop(events),
	}
	existing := pipeline.New[reservationRequest](rc.checkID)
	schedule := []pipeline.Step[reservationRequest]{rc.dateValidator, rc.timeValidator}

	rc.read = existing.Then(rc.respondRead)
	rc.create = pipeline.New[reservationRequest](rc.validateNewReservation).Then(schedule...).Then(rc.persistNew)
	rc.updateStatus = existing.Then(rc.validateStatusUpdate, rc.persistStatus)
	rc.update = existing.Then(rc.validateUpdate).Then(schedule...).Then(rc.persistUpdate)
	return rc
}

// ListReservations -> by date, or by (partial) mobile number
func (rc *ReservationController) ListReservations(c *gin.Context) {
	ctx := c.Request.Context()

	if date := c.Query("date"); date != "" {
		data, err := rc.Reservations.ListByDate(ctx, date)
		if err != nil {
			_ = c.Error(err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, data)
		return
	}

	if mobile := c.Query("mobile_number"); mobile != "" {
		data, err := rc.Reservations.SearchByMobile(ctx, mobile)
		if err != nil {
			_ = c.Error(err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, data)
		return
	}

	utils.RespondJSON(c, http.StatusOK, []models.Reservation{})
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	run(c, rc.read, &reservationRequest{c: c})
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	run(c, rc.create, &reservationRequest{c: c})
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	run(c, rc.update, &reservationRequest{c: c})
}

func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	run(c, rc.updateStatus, &reservationRequest{c: c})
}

func (rc *ReservationController) checkID(r *reservationRequest) error {
	raw := r.c.Param("reservation_id")
	id, ok := parseID(raw)
	if !ok {
		return utils.NotFound("Reservation ID: %s was not found", raw)
	}

	reservation, err := rc.Reservations.Read(r.c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFound("Reservation ID: %s was not found", raw)
	}
	if err != nil {
		return err
	}
	r.reservation = reservation
	return nil
}

func (rc *ReservationController) validateNewReservation(r *reservationRequest) error {
	input, err := bindData[validation.ReservationInput](r.c)
	if err != nil {
		return err
	}
	r.input = input
	r.changes, err = validation.NewReservation(input)
	return err
}

func (rc *ReservationController) validateUpdate(r *reservationRequest) error {
	input, err := bindData[validation.ReservationInput](r.c)
	if err != nil {
		return err
	}
	r.input = input
	r.changes, err = validation.ReservationDetails(input)
	return err
}

func (rc *ReservationController) dateValidator(r *reservationRequest) error {
	return rc.Policy.CheckDate(r.changes.ReservationDate)
}

func (rc *ReservationController) timeValidator(r *reservationRequest) error {
	return rc.Policy.CheckTime(r.changes.ReservationDate, r.changes.ReservationTime, r.input.CurrentTime)
}

func (rc *ReservationController) validateStatusUpdate(r *reservationRequest) error {
	input, err := bindData[struct {
		Status string `json:"status"`
	}](r.c)
	if err != nil {
		return err
	}
	if err := validation.StatusUpdate(r.reservation.Status, input.Status); err != nil {
		return err
	}
	r.status = input.Status
	return nil
}

func (rc *ReservationController) respondRead(r *reservationRequest) error {
	utils.RespondJSON(r.c, http.StatusOK, r.reservation)
	return nil
}

func (rc *ReservationController) persistNew(r *reservationRequest) error {
	if err := rc.Reservations.Create(r.c.Request.Context(), r.changes); err != nil {
		return err
	}

	rc.Events.Publish(hub.EventReservationCreated, r.changes)
	utils.InfoLogger.Printf("Reservation %d created for %s on %s %s", r.changes.ReservationID, r.changes.LastName, r.changes.ReservationDate, r.changes.ReservationTime)
	utils.RespondJSON(r.c, http.StatusCreated, r.changes)
	return nil
}

func (rc *ReservationController) persistStatus(r *reservationRequest) error {
	id := r.reservation.ReservationID
	status, err := rc.Reservations.UpdateStatus(r.c.Request.Context(), id, r.status)
	switch {
	case errors.Is(err, services.ErrReservationClosed):
		return utils.BadRequest("Reservation is finished and cannot be updated.")
	case errors.Is(err, services.ErrReservationSeated):
		return validation.SeatedRebook()
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound("Reservation ID: %d was not found", id)
	case err != nil:
		return err
	}

	rc.Events.Publish(hub.EventReservationStatus, gin.H{"reservation_id": id, "status": status})
	utils.InfoLogger.Printf("Reservation %d status changed from %s to %s", id, r.reservation.Status, status)
	utils.RespondJSON(r.c, http.StatusOK, gin.H{"status": status})
	return nil
}

func (rc *ReservationController) persistUpdate(r *reservationRequest) error {
	id := r.reservation.ReservationID
	updated, err := rc.Reservations.Update(r.c.Request.Context(), id, r.changes)
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFound("Reservation ID: %d was not found", id)
	}
	if err != nil {
		return err
	}

	rc.Events.Publish(hub.EventReservationUpdated, updated)
	utils.InfoLogger.Printf("Reservation %d updated", id)
	utils.RespondJSON(r.c, http.StatusOK, updated)
	return nil
}
