package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type PasswordHandler struct {
	resetService services.PasswordResetService
}

func NewPasswordHandler(resetService services.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{resetService: resetService}
}

// ForgotPassword always answers 202 for a well formed email.
//
// @Summary Request a password reset code
// @Description Mails a six digit code when the email belongs to an account. The response is the same either way.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body models.ForgotPassword true "Account email"
// @Success 202 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Router /api/users/forgot-password [post]
func (p *PasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPassword
	if !utils.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := p.resetService.RequestReset(r.Context(), req.Email); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "If the email is registered, a reset code has been sent",
	})
}

// ResetPassword godoc
// @Summary Reset a password with a code
// @Description Codes expire after 15 minutes and stop working after 5 wrong attempts.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body models.ResetPassword true "Email, code and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponse "invalid payload or invalid, expired or locked code"
// @Router /api/users/reset-password [post]
func (p *PasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPassword
	if !utils.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := p.resetService.ResetPassword(r.Context(), &req); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
