package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/judging-system/handlers"
	"github.com/Dosada05/judging-system/live"
	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/Dosada05/judging-system/services"
	"github.com/Dosada05/judging-system/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "routes-test-secret"
	testAdminPassword = "admin-pass"
)

type testApp struct {
	server *httptest.Server
	hub    *live.Hub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	judgeRepo := repositories.NewJudgeRepository(conn)
	userRepo := repositories.NewUserRepository(conn)
	competitorRepo := repositories.NewCompetitorRepository(conn)
	questionRepo := repositories.NewQuestionRepository(conn)
	answerRepo := repositories.NewAnswerRepository(conn)
	compositeRepo := repositories.NewCompositeScoreRepository(conn)
	m := metrics.NewManager()

	hub := live.NewHub(nil)
	go hub.Run(ctx)

	leaderboard := services.NewLeaderboardService(competitorRepo, compositeRepo, hub, m, nil)
	auth := services.NewAuthService(userRepo)
	judges := services.NewJudgeService(conn, judgeRepo, userRepo, answerRepo, compositeRepo, leaderboard)
	competitors := services.NewCompetitorService(conn, competitorRepo, answerRepo, compositeRepo, leaderboard)
	questions := services.NewQuestionService(conn, questionRepo, answerRepo, compositeRepo, m, leaderboard)
	scoring := services.NewScoringService(conn, judgeRepo, competitorRepo, questionRepo, answerRepo, compositeRepo, m, leaderboard)
	settings := services.NewSettingsService(repositories.NewSettingRepository(conn))
	banner := services.NewBannerService(repositories.NewAssetRepository(conn), nil, 1024, nil)

	_, err := auth.EnsureDefaultAdmin(ctx, testAdminPassword)
	require.NoError(t, err)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:        handlers.NewAuthHandler(auth, testSecret),
		Judges:      handlers.NewJudgeHandler(judges),
		Competitors: handlers.NewCompetitorHandler(competitors),
		Questions:   handlers.NewQuestionHandler(questions),
		Scoring:     handlers.NewScoringHandler(scoring, competitors, questions, settings, banner),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboard),
		Settings:    handlers.NewSettingsHandler(settings),
		Banner:      handlers.NewBannerHandler(banner, 1024),
		WebSocket:   handlers.NewWebSocketHandler(hub, []string{"*"}),
		Metrics:     m.Handler(),
	}, Options{JWTSecret: testSecret, AllowedOrigins: []string{"*"}})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testApp{server: server, hub: hub}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (a *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, status)
	var token string
	require.NoError(t, json.Unmarshal(body["token"], &token))
	return token
}

func decodeField[T any](t *testing.T, body map[string]json.RawMessage, key string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body[key], &v), "field %s", key)
	return v
}

func TestScoringFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, services.DefaultAdminUsername, testAdminPassword)

	status, body := app.do(t, http.MethodPost, "/admin/judges", admin, map[string]string{
		"name": "Jane", "email": "jane@example.test", "username": "jane", "password": "jane-pass",
	})
	require.Equal(t, http.StatusCreated, status)
	judge := decodeField[models.Judge](t, body, "judge")

	status, body = app.do(t, http.MethodPost, "/admin/competitors", admin, map[string]string{"name": "Team A"})
	require.Equal(t, http.StatusCreated, status)
	competitor := decodeField[models.Competitor](t, body, "competitor")

	var questionIDs []int
	for _, prompt := range []string{"Originality", "Execution"} {
		status, body = app.do(t, http.MethodPost, "/admin/questions", admin, map[string]string{"prompt": prompt})
		require.Equal(t, http.StatusCreated, status)
		questionIDs = append(questionIDs, decodeField[models.Question](t, body, "question").ID)
	}

	judgeToken := app.login(t, "jane", "jane-pass")

	status, _ = app.do(t, http.MethodGet, "/admin/leaderboard", judgeToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = app.do(t, http.MethodGet, "/judge/context", judgeToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeField[[]models.Question](t, body, "questions"), 2)
	assert.Equal(t, "null", string(body["banner"]))

	answersPath := fmt.Sprintf("/judge/competitors/%d/answers", competitor.ID)

	status, _ = app.do(t, http.MethodPut, answersPath, judgeToken, map[string]interface{}{
		"levels": map[string]int{fmt.Sprint(questionIDs[0]): 8},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "incomplete submission")

	status, body = app.do(t, http.MethodPut, answersPath, judgeToken, map[string]interface{}{
		"levels": map[string]int{fmt.Sprint(questionIDs[0]): 8, fmt.Sprint(questionIDs[1]): 10},
	})
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 90.0, decodeField[float64](t, body, "composite"), 1e-9)

	status, body = app.do(t, http.MethodGet, answersPath, judgeToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[int]int{questionIDs[0]: 8, questionIDs[1]: 10}, decodeField[map[int]int](t, body, "levels"))

	status, body = app.do(t, http.MethodGet, "/judge/scores", judgeToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[int]float64{competitor.ID: 90}, decodeField[map[int]float64](t, body, "composites"))

	status, body = app.do(t, http.MethodGet, "/admin/leaderboard", admin, nil)
	require.Equal(t, http.StatusOK, status)
	rows := decodeField[[]models.LeaderboardRow](t, body, "leaderboard")
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1, rows[0].NumScores)

	status, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/admin/questions/%d", questionIDs[1]), admin, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body = app.do(t, http.MethodGet, "/judge/scores", judgeToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[int]float64{competitor.ID: 80}, decodeField[map[int]float64](t, body, "composites"))

	status, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/admin/judges/%d", judge.ID), admin, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, _ = app.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "jane", "password": "jane-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSubmitForDeletedCompetitorIsReferenceError(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, services.DefaultAdminUsername, testAdminPassword)

	_, _ = app.do(t, http.MethodPost, "/admin/judges", admin, map[string]string{
		"name": "Jane", "email": "jane@example.test", "username": "jane", "password": "jane-pass",
	})
	_, body := app.do(t, http.MethodPost, "/admin/questions", admin, map[string]string{"prompt": "Only"})
	q := decodeField[models.Question](t, body, "question")
	judgeToken := app.login(t, "jane", "jane-pass")

	status, _ := app.do(t, http.MethodPut, "/judge/competitors/999/answers", judgeToken, map[string]interface{}{
		"levels": map[string]int{fmt.Sprint(q.ID): 5},
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestAdminValidationAndErrors(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, services.DefaultAdminUsername, testAdminPassword)

	status, _ := app.do(t, http.MethodGet, "/admin/judges", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := app.do(t, http.MethodPost, "/admin/judges", admin, map[string]string{"name": "NoEmail"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	fields := decodeField[map[string]string](t, body, "error")
	assert.Contains(t, fields, "email")

	status, _ = app.do(t, http.MethodGet, "/admin/competitors/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = app.do(t, http.MethodGet, "/admin/competitors/42", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.do(t, http.MethodPost, "/admin/competitors", admin, map[string]string{"name": "x", "extra": "y"})
	assert.Equal(t, http.StatusBadRequest, status, "unknown fields are rejected")

	status, _ = app.do(t, http.MethodGet, "/admin/banner", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = app.do(t, http.MethodPut, "/admin/intro", admin, map[string]string{"message": " Hello "})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello", decodeField[string](t, body, "message"))

	status, _ = app.do(t, http.MethodPost, "/admin/scores/recompute", admin, nil)
	assert.Equal(t, http.StatusNoContent, status)

	resp, err := app.server.Client().Get(app.server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.server.Client().Get(app.server.URL + "/metrics")
	require.NoError(t, err)
	metricsBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(metricsBody), "judging_")
}

func TestLeaderboardWebSocket(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, services.DefaultAdminUsername, testAdminPassword)

	wsURL := "ws" + strings.TrimPrefix(app.server.URL, "http") + "/ws/leaderboard?token=" + admin
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return app.hub.RoomSize(live.RoomLeaderboard) == 1
	}, 2*time.Second, 10*time.Millisecond)

	status, _ := app.do(t, http.MethodPost, "/admin/competitors", admin, map[string]string{"name": "Live"})
	require.Equal(t, http.StatusCreated, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type    string                  `json:"type"`
		Payload []models.LeaderboardRow `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, live.MessageLeaderboardUpdated, msg.Type)
	require.Len(t, msg.Payload, 1)
	assert.Equal(t, "Live", msg.Payload[0].CompetitorName)
}
