package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/judging-system/middleware"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/services"
	"golang.org/x/sync/errgroup"
)

// ScoringHandler serves the judge-facing scoring screens and the admin
// recompute action.
type ScoringHandler struct {
	scoringService    services.ScoringService
	competitorService services.CompetitorService
	questionService   services.QuestionService
	settingsService   services.SettingsService
	bannerService     services.BannerService
}

func NewScoringHandler(
	scoringService services.ScoringService,
	competitorService services.CompetitorService,
	questionService services.QuestionService,
	settingsService services.SettingsService,
	bannerService services.BannerService,
) *ScoringHandler {
	return &ScoringHandler{
		scoringService:    scoringService,
		competitorService: competitorService,
		questionService:   questionService,
		settingsService:   settingsService,
		bannerService:     bannerService,
	}
}

// submitLevelsInput maps question id to a rubric level between 1 and 10.
type submitLevelsInput struct {
	Levels map[int]int `json:"levels"`
}

func judgeIDOrForbidden(w http.ResponseWriter, r *http.Request) (int, bool) {
	judgeID, err := middleware.GetJudgeIDFromContext(r.Context())
	if err != nil {
		forbiddenResponse(w, r, "this account is not linked to a judge profile")
		return 0, false
	}
	return judgeID, true
}

// GetContext returns everything the scoring screen needs in one response.
func (h *ScoringHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	var (
		competitors []models.Competitor
		questions   []models.Question
		intro       string
		banner      *models.Asset
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		competitors, err = h.competitorService.ListCompetitors(ctx)
		return err
	})
	g.Go(func() (err error) {
		questions, err = h.questionService.ListQuestions(ctx)
		return err
	})
	g.Go(func() (err error) {
		intro, err = h.settingsService.GetIntroMessage(ctx)
		return err
	})
	g.Go(func() error {
		b, err := h.bannerService.GetBanner(ctx)
		if errors.Is(err, services.ErrBannerNotFound) {
			return nil
		}
		banner = b
		return err
	})
	if err := g.Wait(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"competitors":   competitors,
		"questions":     questions,
		"intro_message": intro,
		"banner":        banner,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMyScores returns the caller's composite per competitor id.
func (h *ScoringHandler) GetMyScores(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeIDOrForbidden(w, r)
	if !ok {
		return
	}

	composites, err := h.scoringService.GetCompositesForJudge(r.Context(), judgeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"composites": composites}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoringHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeIDOrForbidden(w, r)
	if !ok {
		return
	}
	competitorID, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	levels, err := h.scoringService.GetLevels(r.Context(), judgeID, competitorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"levels": levels}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitAnswers godoc
// @Summary Save the caller's scores for a competitor
// @Description Every active question must carry a level from 1 to 10. The stored answers for the pair are replaced as a whole.
// @Tags scoring
// @Accept json
// @Produce json
// @Param competitorID path int true "Competitor ID"
// @Param body body submitLevelsInput true "Levels keyed by question id"
// @Success 200 {object} map[string]interface{} "Saved levels and the new composite"
// @Failure 409 {object} map[string]string "Competitor or question no longer exists"
// @Failure 422 {object} map[string]string "Incomplete or invalid submission"
// @Security BearerAuth
// @Router /judge/competitors/{competitorID}/answers [put]
func (h *ScoringHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeIDOrForbidden(w, r)
	if !ok {
		return
	}
	competitorID, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input submitLevelsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scoringService.SubmitScores(r.Context(), judgeID, competitorID, input.Levels); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	composites, err := h.scoringService.GetCompositesForJudge(r.Context(), judgeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"levels":    input.Levels,
		"composite": composites[competitorID],
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecomputeAll rebuilds every composite score from the answer ledger.
func (h *ScoringHandler) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	if err := h.scoringService.RecomputeAll(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
