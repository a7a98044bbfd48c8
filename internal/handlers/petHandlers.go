package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type PetHandler struct {
	petService services.PetService
}

func NewPetHandler(petService services.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

// ListPets godoc
// @Summary List pets
// @Tags pets
// @Produce json
// @Param limit query integer false "Page size (1-100, default 50)"
// @Param skip query integer false "Number of results to skip"
// @Param owner_id query string false "Filter by owner ID"
// @Param species query string false "Filter by species"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Pet
// @Failure 400 {object} utils.ErrorResponse "invalid query"
// @Router /api/pets [get]
func (h *PetHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	page, err := utils.GetPagination(w, r)
	if err != nil {
		return
	}
	ownerID, err := utils.GetObjectIDFromQuery(w, r, "owner_id")
	if err != nil {
		return
	}

	filter := models.PetFilter{
		Species: models.PetSpecies(r.URL.Query().Get("species")),
		Status:  models.PetStatus(r.URL.Query().Get("status")),
		OwnerID: ownerID,
	}
	pets, total, err := h.petService.ListPets(r.Context(), filter, page)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithList(w, pets, total)
}

// CreatePet godoc
// @Summary Create a pet
// @Description Pets with an owner start as owned, others as available.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body models.Pet true "Pet details"
// @Success 201 {object} models.Pet
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 422 {object} utils.ErrorResponse "owner does not exist"
// @Router /api/pets [post]
func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	var pet models.Pet
	if !utils.DecodeAndValidate(w, r, &pet) {
		return
	}

	createdPet, err := h.petService.CreatePet(r.Context(), &pet)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, createdPet)
}

// GetPet godoc
// @Summary Get a pet
// @Tags pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "pet not found"
// @Router /api/pets/{id} [get]
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	petID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	pet, err := h.petService.GetPet(r.Context(), petID)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pet)
}

// UpdatePet godoc
// @Summary Update a pet
// @Tags pets
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Param payload body models.PetUpdate true "Fields to change"
// @Success 200 {object} models.Pet
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 404 {object} utils.ErrorResponse "pet not found"
// @Failure 422 {object} utils.ErrorResponse "owner does not exist"
// @Router /api/pets/{id} [put]
// @Router /api/pets/{id} [patch]
func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	petID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.PetUpdate
	if !utils.DecodeAndValidate(w, r, &updatePayload) {
		return
	}

	updatedPet, err := h.petService.UpdatePet(r.Context(), petID, &updatePayload)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updatedPet)
}

// DeletePet godoc
// @Summary Delete a pet
// @Tags pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "pet not found"
// @Router /api/pets/{id} [delete]
func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	petID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.petService.DeletePet(r.Context(), petID); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
