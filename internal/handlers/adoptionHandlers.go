package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type AdoptionHandler struct {
	adoptionService services.AdoptionService
}

func NewAdoptionHandler(adoptionService services.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

// ListAdoptions godoc
// @Summary List adoption requests
// @Tags adoptions
// @Produce json
// @Param limit query integer false "Page size (1-100, default 50)"
// @Param skip query integer false "Number of results to skip"
// @Param pet_id query string false "Filter by pet ID"
// @Param user_id query string false "Filter by applicant ID"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Adoption
// @Failure 400 {object} utils.ErrorResponse "invalid query"
// @Router /api/adoptions [get]
func (h *AdoptionHandler) ListAdoptions(w http.ResponseWriter, r *http.Request) {
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

	filter := models.AdoptionFilter{
		PetID:  petID,
		UserID: userID,
		Status: models.AdoptionStatus(r.URL.Query().Get("status")),
	}
	adoptions, total, err := h.adoptionService.ListAdoptions(r.Context(), filter, page)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithList(w, adoptions, total)
}

// CreateAdoption godoc
// @Summary Request an adoption
// @Description The pet must be available.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body models.Adoption true "Pet and applicant"
// @Success 201 {object} models.Adoption
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 409 {object} utils.ErrorResponse "pet is not available"
// @Failure 422 {object} utils.ErrorResponse "pet or user does not exist"
// @Router /api/adoptions [post]
func (h *AdoptionHandler) CreateAdoption(w http.ResponseWriter, r *http.Request) {
	var adoption models.Adoption
	if !utils.DecodeAndValidate(w, r, &adoption) {
		return
	}

	created, err := h.adoptionService.CreateAdoption(r.Context(), &adoption)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GetAdoption godoc
// @Summary Get an adoption request
// @Tags adoptions
// @Produce json
// @Param id path string true "Adoption ID"
// @Success 200 {object} models.Adoption
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "adoption not found"
// @Router /api/adoptions/{id} [get]
func (h *AdoptionHandler) GetAdoption(w http.ResponseWriter, r *http.Request) {
	adoptionID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	adoption, err := h.adoptionService.GetAdoption(r.Context(), adoptionID)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, adoption)
}

// UpdateAdoption godoc
// @Summary Update a pending adoption request
// @Tags adoptions
// @Accept json
// @Produce json
// @Param id path string true "Adoption ID"
// @Param payload body models.AdoptionUpdate true "Fields to change"
// @Success 200 {object} models.Adoption
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 404 {object} utils.ErrorResponse "adoption not found"
// @Failure 409 {object} utils.ErrorResponse "adoption is no longer pending"
// @Router /api/adoptions/{id} [put]
// @Router /api/adoptions/{id} [patch]
func (h *AdoptionHandler) UpdateAdoption(w http.ResponseWriter, r *http.Request) {
	adoptionID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.AdoptionUpdate
	if !utils.DecodeAndValidate(w, r, &updatePayload) {
		return
	}

	updated, err := h.adoptionService.UpdateAdoption(r.Context(), adoptionID, &updatePayload)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// UpdateAdoptionStatus godoc
// @Summary Decide an adoption request
// @Description Approving reserves the pet, completing hands it to the applicant, rejecting or cancelling releases it.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param id path string true "Adoption ID"
// @Param payload body models.StatusUpdate true "Target status and review notes"
// @Success 200 {object} models.Adoption
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 404 {object} utils.ErrorResponse "adoption not found"
// @Failure 409 {object} utils.ErrorResponse "transition not allowed or pet unavailable"
// @Router /api/adoptions/{id}/status [patch]
func (h *AdoptionHandler) UpdateAdoptionStatus(w http.ResponseWriter, r *http.Request) {
	adoptionID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var payload models.StatusUpdate
	if !utils.DecodeAndValidate(w, r, &payload) {
		return
	}

	updated, err := h.adoptionService.UpdateAdoptionStatus(r.Context(), adoptionID, models.AdoptionStatus(payload.Status), payload.Notes)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteAdoption godoc
// @Summary Delete an adoption request
// @Tags adoptions
// @Produce json
// @Param id path string true "Adoption ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "adoption not found"
// @Router /api/adoptions/{id} [delete]
func (h *AdoptionHandler) DeleteAdoption(w http.ResponseWriter, r *http.Request) {
	adoptionID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.adoptionService.DeleteAdoption(r.Context(), adoptionID); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
