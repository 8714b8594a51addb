package handlers

import (
	"net/http"

	"github.com/Dosada05/judging-system/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary Ranked leaderboard
// @Description Competitors ordered by average composite score with dense ranks.
// @Tags leaderboard
// @Produce json
// @Success 200 {array} models.LeaderboardRow
// @Security BearerAuth
// @Router /admin/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.leaderboardService.ComputeLeaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
