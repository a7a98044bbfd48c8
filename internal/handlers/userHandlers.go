package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"petlove/internal/errs"
	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// @Summary Register a customer
// @Description Creates a customer account. The role in the payload is ignored; new accounts are always customers.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body models.User true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 409 {object} utils.ErrorResponse "email already exists"
// @Router /api/users/register [post]
// @Router /api/users [post]
func (u *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !utils.DecodeAndValidate(w, r, &user) {
		return
	}

	registeredUser, err := u.userService.RegisterUser(r.Context(), &user)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, registeredUser)
}

// Login godoc
// @Summary Log in
// @Description Checks the credentials and returns a signed JWT.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body models.Login true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 401 {object} utils.ErrorResponse "invalid credentials"
// @Router /api/users/login [post]
func (u *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Login
	if !utils.DecodeAndValidate(w, r, &creds) {
		return
	}

	token, err := u.userService.LoginUser(r.Context(), &creds)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query integer false "Page size (1-100, default 50)"
// @Param skip query integer false "Number of results to skip"
// @Param role query string false "Filter by role"
// @Param email query string false "Filter by exact email"
// @Success 200 {array} models.User
// @Failure 400 {object} utils.ErrorResponse "invalid pagination"
// @Router /api/users [get]
func (u *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := utils.GetPagination(w, r)
	if err != nil {
		return
	}

	filter := models.UserFilter{
		Role:  models.UserRole(r.URL.Query().Get("role")),
		Email: r.URL.Query().Get("email"),
	}
	users, total, err := u.userService.ListUsers(r.Context(), filter, page)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithList(w, users, total)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "user not found"
// @Router /api/users/{id} [get]
func (u *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}
	u.writeUser(w, r, userID)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Only the account owner or an admin may update an account. Changing the role requires an admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body models.UserUpdate true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 401 {object} utils.ErrorResponse "missing or invalid token"
// @Failure 403 {object} utils.ErrorResponse "not the owner or an admin"
// @Failure 404 {object} utils.ErrorResponse "user not found"
// @Failure 409 {object} utils.ErrorResponse "email already exists"
// @Router /api/users/{id} [put]
// @Router /api/users/{id} [patch]
func (u *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}
	u.updateUser(w, r, userID)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Only the account owner or an admin may delete an account.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponse "missing or invalid token"
// @Failure 403 {object} utils.ErrorResponse "not the owner or an admin"
// @Failure 404 {object} utils.ErrorResponse "user not found"
// @Router /api/users/{id} [delete]
func (u *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}
	u.deleteUser(w, r, userID)
}

// GetMyProfile godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse "missing or invalid token"
// @Router /api/users/me [get]
func (u *UserHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		log.Error().Err(err).Msg("User ID not found in context for GetMyProfile")
		return
	}
	u.writeUser(w, r, userID)
}

// UpdateMyProfile godoc
// @Summary Update the current user
// @Description Changing the role requires an admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.UserUpdate true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 401 {object} utils.ErrorResponse "missing or invalid token"
// @Failure 403 {object} utils.ErrorResponse "role change by a non-admin"
// @Failure 409 {object} utils.ErrorResponse "email already exists"
// @Router /api/users/me [put]
// @Router /api/users/me [patch]
func (u *UserHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		log.Error().Err(err).Msg("User ID not found in context for UpdateMyProfile")
		return
	}
	u.updateUser(w, r, userID)
}

// DeleteMyProfile godoc
// @Summary Delete the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} utils.ErrorResponse "missing or invalid token"
// @Failure 404 {object} utils.ErrorResponse "user not found"
// @Router /api/users/me [delete]
func (u *UserHandler) DeleteMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		log.Error().Err(err).Msg("User ID not found in context for DeleteMyProfile")
		return
	}
	u.deleteUser(w, r, userID)
}

func (u *UserHandler) writeUser(w http.ResponseWriter, r *http.Request, userID models.ID) {
	user, err := u.userService.GetUser(r.Context(), userID)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func (u *UserHandler) updateUser(w http.ResponseWriter, r *http.Request, userID models.ID) {
	var updatePayload models.UserUpdate
	if !utils.DecodeAndValidate(w, r, &updatePayload) {
		return
	}
	if updatePayload.Role != nil && !utils.IsAdmin(r.Context()) {
		utils.SendServiceError(w, fmt.Errorf("only admins may change roles: %w", errs.ErrForbidden))
		return
	}

	updatedUser, err := u.userService.UpdateUser(r.Context(), userID, &updatePayload)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updatedUser)
}

func (u *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request, userID models.ID) {
	if err := u.userService.DeleteUser(r.Context(), userID); err != nil {
		utils.SendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
