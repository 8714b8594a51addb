package handlers

import (
	"net/http"

	"github.com/Dosada05/judging-system/services"
)

type JudgeHandler struct {
	judgeService services.JudgeService
}

func NewJudgeHandler(judgeService services.JudgeService) *JudgeHandler {
	return &JudgeHandler{judgeService: judgeService}
}

// CreateJudge godoc
// @Summary Create a judge with a login account
// @Tags judges
// @Accept json
// @Produce json
// @Param body body services.CreateJudgeInput true "Judge profile and credentials"
// @Success 201 {object} models.Judge
// @Failure 409 {object} map[string]string "Email or username taken"
// @Failure 422 {object} map[string]string "Validation failed"
// @Security BearerAuth
// @Router /admin/judges [post]
func (h *JudgeHandler) CreateJudge(w http.ResponseWriter, r *http.Request) {
	var input services.CreateJudgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.CreateJudge(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	judges, err := h.judgeService.ListJudges(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judges": judges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) GetJudge(w http.ResponseWriter, r *http.Request) {
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.GetJudge(r.Context(), judgeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) UpdateJudge(w http.ResponseWriter, r *http.Request) {
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateJudgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.UpdateJudge(r.Context(), judgeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) DeleteJudge(w http.ResponseWriter, r *http.Request) {
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.judgeService.DeleteJudge(r.Context(), judgeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
