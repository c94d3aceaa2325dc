package handlers

import (
	"errors"
	"net/http"

	"shopline/services/appointment"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the booking pipeline over HTTP.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// CreateAppointment validates and enqueues a booking request. A 201
// means "queued", not "booked": the worker decides the outcome later.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req appointment.QueueAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields: userId, shopId, date, time", err.Error())
		return
	}

	if err := h.Service.QueueAppointment(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment queued successfully"})
}

// GetAllAppointments lists committed bookings.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appointments, err := h.Service.ListAppointments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// GetAppointmentByID returns one committed booking.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	view, err := h.Service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": view})
}

// UpdateAppointment moves a booking to a new slot.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req appointment.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields: date, hour, shopId", err.Error())
		return
	}

	updated, err := h.Service.UpdateAppointment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully", "appointment": updated})
}

// DeleteAppointment cancels a booking.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Service.CancelAppointment(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}

func (h *AppointmentHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr *appointment.ValidationError
		notFoundErr   *appointment.NotFoundError
		conflictErr   *appointment.ConflictError
		enqueueErr    *appointment.EnqueueError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Message, "")
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, notFoundErr.Message, "")
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, conflictErr.Message, "")
	case errors.As(err, &enqueueErr):
		utils.JSONError(c, http.StatusInternalServerError, "Failed to queue appointment", enqueueErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
