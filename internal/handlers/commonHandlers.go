package handlers

import (
	"net/http"

	"petlove/internal/database"
	"petlove/internal/utils"
)

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

// RootHandler godoc
// @Summary Service banner
// @Description Returns a fixed message so clients can check the API is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *CommonHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "PetLove API Running!"})
}

// HealthHandler reports the database status; 503 when it is down.
//
// @Summary Database health
// @Description Reports the MongoDB connection status and pool statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "database unavailable"
// @Router /health [get]
func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := h.db.Health()

	code := http.StatusOK
	if health["status"] != "up" {
		code = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, code, health)
}
