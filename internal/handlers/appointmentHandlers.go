package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// ListAppointments godoc
// @Summary List appointments
// @Description from and to bound scheduled_at inclusively.
// @Tags appointments
// @Produce json
// @Param limit query integer false "Page size (1-100, default 50)"
// @Param skip query integer false "Number of results to skip"
// @Param pet_id query string false "Filter by pet ID"
// @Param user_id query string false "Filter by customer ID"
// @Param status query string false "Filter by status"
// @Param from query string false "Earliest scheduled_at (RFC 3339)" format(date-time)
// @Param to query string false "Latest scheduled_at (RFC 3339)" format(date-time)
// @Success 200 {array} models.Appointment
// @Failure 400 {object} utils.ErrorResponse "invalid query or from after to"
// @Router /api/appointments [get]
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	page, err := utils.GetPagination(w, r)
	if err != nil {
		return
	}
	petID, err := utils.GetObjectIDFromQuery(w, r, "pet_id")
	if err != nil {
		return
	}
	userID, err := utils.GetObjectIDFromQuery(w, r, "user_id")
	if err != nil {
		return
	}
	from, err := utils.GetTimeFromQuery(w, r, "from")
	if err != nil {
		return
	}
	to, err := utils.GetTimeFromQuery(w, r, "to")
	if err != nil {
		return
	}

	filter := models.AppointmentFilter{
		PetID:  petID,
		UserID: userID,
		Status: models.AppointmentStatus(r.URL.Query().Get("status")),
		From:   from,
		To:     to,
	}
	appointments, total, err := h.appointmentService.ListAppointments(r.Context(), filter, page)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithList(w, appointments, total)
}

// CreateAppointment godoc
// @Summary Book an appointment
// @Description scheduled_at must be in the future.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body models.Appointment true "Appointment details"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 422 {object} utils.ErrorResponse "pet or user does not exist"
// @Router /api/appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment models.Appointment
	if !utils.DecodeAndValidate(w, r, &appointment) {
		return
	}

	created, err := h.appointmentService.CreateAppointment(r.Context(), &appointment)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GetAppointment godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "appointment not found"
// @Router /api/appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	appointment, err := h.appointmentService.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, appointment)
}

// UpdateAppointment godoc
// @Summary Reschedule or edit an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body models.AppointmentUpdate true "Fields to change"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 404 {object} utils.ErrorResponse "appointment not found"
// @Failure 409 {object} utils.ErrorResponse "appointment is completed or cancelled"
// @Router /api/appointments/{id} [put]
// @Router /api/appointments/{id} [patch]
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.AppointmentUpdate
	if !utils.DecodeAndValidate(w, r, &updatePayload) {
		return
	}

	updated, err := h.appointmentService.UpdateAppointment(r.Context(), appointmentID, &updatePayload)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// UpdateAppointmentStatus godoc
// @Summary Change the appointment status
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body models.StatusUpdate true "Target status"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 404 {object} utils.ErrorResponse "appointment not found"
// @Failure 409 {object} utils.ErrorResponse "transition not allowed"
// @Router /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var payload models.StatusUpdate
	if !utils.DecodeAndValidate(w, r, &payload) {
		return
	}

	updated, err := h.appointmentService.UpdateAppointmentStatus(r.Context(), appointmentID, models.AppointmentStatus(payload.Status))
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteAppointment godoc
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "appointment not found"
// @Router /api/appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.appointmentService.DeleteAppointment(r.Context(), appointmentID); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
