package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type VisitHandler struct {
	visitService services.VisitService
}

func NewVisitHandler(visitService services.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// ListVisits godoc
// @Summary List clinic visits
// @Tags visits
// @Produce json
// @Param limit query integer false "Page size (1-100, default 50)"
// @Param skip query integer false "Number of results to skip"
// @Param pet_id query string false "Filter by pet ID"
// @Param appointment_id query string false "Filter by appointment ID"
// @Success 200 {array} models.Visit
// @Failure 400 {object} utils.ErrorResponse "invalid query"
// @Router /api/visits [get]
func (h *VisitHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	page, err := utils.GetPagination(w, r)
	if err != nil {
		return
	}
	petID, err := utils.GetObjectIDFromQuery(w, r, "pet_id")
	if err != nil {
		return
	}
	appointmentID, err := utils.GetObjectIDFromQuery(w, r, "appointment_id")
	if err != nil {
		return
	}

	visits, total, err := h.visitService.ListVisits(r.Context(), models.VisitFilter{PetID: petID, AppointmentID: appointmentID}, page)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithList(w, visits, total)
}

// CreateVisit godoc
// @Summary Record a clinic visit
// @Description A linked appointment is marked completed.
// @Tags visits
// @Accept json
// @Produce json
// @Param payload body models.Visit true "Visit record"
// @Success 201 {object} models.Visit
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 409 {object} utils.ErrorResponse "appointment cancelled or changed"
// @Failure 422 {object} utils.ErrorResponse "pet or appointment does not exist"
// @Router /api/visits [post]
func (h *VisitHandler) CreateVisit(w http.ResponseWriter, r *http.Request) {
	var visit models.Visit
	if !utils.DecodeAndValidate(w, r, &visit) {
		return
	}

	created, err := h.visitService.CreateVisit(r.Context(), &visit)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GetVisit godoc
// @Summary Get a clinic visit
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} models.Visit
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "visit not found"
// @Router /api/visits/{id} [get]
func (h *VisitHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	visitID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	visit, err := h.visitService.GetVisit(r.Context(), visitID)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, visit)
}

// UpdateVisit godoc
// @Summary Update a clinic visit
// @Tags visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Param payload body models.VisitUpdate true "Fields to change"
// @Success 200 {object} models.Visit
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 404 {object} utils.ErrorResponse "visit not found"
// @Router /api/visits/{id} [put]
// @Router /api/visits/{id} [patch]
func (h *VisitHandler) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	visitID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.VisitUpdate
	if !utils.DecodeAndValidate(w, r, &updatePayload) {
		return
	}

	updated, err := h.visitService.UpdateVisit(r.Context(), visitID, &updatePayload)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteVisit godoc
// @Summary Delete a clinic visit
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "visit not found"
// @Router /api/visits/{id} [delete]
func (h *VisitHandler) DeleteVisit(w http.ResponseWriter, r *http.Request) {
	visitID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.visitService.DeleteVisit(r.Context(), visitID); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
