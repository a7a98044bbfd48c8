package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetSummary serves GET /api/stats?from=&to= with optional RFC 3339 bounds.
//
// @Summary Dashboard summary
// @Description Counts and revenue, optionally limited to records created in [from, to).
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param from query string false "Window start (RFC 3339)" format(date-time)
// @Param to query string false "Window end (RFC 3339)" format(date-time)
// @Success 200 {object} models.StatsSummary
// @Failure 400 {object} utils.ErrorResponse "invalid window"
// @Failure 401 {object} utils.ErrorResponse "missing or invalid token"
// @Router /api/stats [get]
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, err := utils.GetTimeFromQuery(w, r, "from")
	if err != nil {
		return
	}
	to, err := utils.GetTimeFromQuery(w, r, "to")
	if err != nil {
		return
	}

	summary, err := h.statsService.Summary(r.Context(), models.StatsWindow{From: from, To: to})
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}
