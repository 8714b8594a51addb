package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Dosada05/judging-system/live"
	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/Dosada05/judging-system/storage"
	"github.com/Dosada05/judging-system/testutil"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) NotifyChanged(context.Context) {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	size     int
	messages []live.Message
}

func (b *recordingBroadcaster) BroadcastToRoom(_ string, message live.Message) {
	b.mu.Lock()
	b.messages = append(b.messages, message)
	b.mu.Unlock()
}

func (b *recordingBroadcaster) RoomSize(string) int { return b.size }

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: map[string][]byte{}}
}

func (u *memoryUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.objects[key] = data
	u.mu.Unlock()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	u.mu.Unlock()
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.example.test/" + key
}

type fixture struct {
	db          *sql.DB
	notifier    *countingNotifier
	composites  repositories.CompositeScoreRepository
	answers     repositories.AnswerRepository
	auth        AuthService
	judges      JudgeService
	competitors CompetitorService
	questions   QuestionService
	scoring     ScoringService
	leaderboard LeaderboardService
	settings    SettingsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := testutil.SetupTestDB(t)

	judgeRepo := repositories.NewJudgeRepository(conn)
	userRepo := repositories.NewUserRepository(conn)
	competitorRepo := repositories.NewCompetitorRepository(conn)
	questionRepo := repositories.NewQuestionRepository(conn)
	answerRepo := repositories.NewAnswerRepository(conn)
	compositeRepo := repositories.NewCompositeScoreRepository(conn)
	settingRepo := repositories.NewSettingRepository(conn)
	m := metrics.NewManager()
	n := &countingNotifier{}

	return &fixture{
		db:          conn,
		notifier:    n,
		composites:  compositeRepo,
		answers:     answerRepo,
		auth:        NewAuthService(userRepo),
		judges:      NewJudgeService(conn, judgeRepo, userRepo, answerRepo, compositeRepo, n),
		competitors: NewCompetitorService(conn, competitorRepo, answerRepo, compositeRepo, n),
		questions:   NewQuestionService(conn, questionRepo, answerRepo, compositeRepo, m, n),
		scoring:     NewScoringService(conn, judgeRepo, competitorRepo, questionRepo, answerRepo, compositeRepo, m, n),
		leaderboard: NewLeaderboardService(competitorRepo, compositeRepo, nil, m, nil),
		settings:    NewSettingsService(settingRepo),
	}
}

func (f *fixture) judge(t *testing.T, name string) *models.Judge {
	t.Helper()
	j, err := f.judges.CreateJudge(context.Background(), CreateJudgeInput{
		Name:     name,
		Email:    name + "@example.test",
		Username: name,
		Password: "secret-" + name,
	})
	require.NoError(t, err)
	return j
}

func (f *fixture) competitor(t *testing.T, name string) *models.Competitor {
	t.Helper()
	c, err := f.competitors.CreateCompetitor(context.Background(), CompetitorInput{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) question(t *testing.T, prompt string) *models.Question {
	t.Helper()
	q, err := f.questions.CreateQuestion(context.Background(), QuestionInput{Prompt: prompt})
	require.NoError(t, err)
	return q
}

func (f *fixture) composite(t *testing.T, judgeID, competitorID int) (float64, bool) {
	t.Helper()
	score, err := f.composites.GetByPair(context.Background(), nil, judgeID, competitorID)
	if errors.Is(err, repositories.ErrCompositeScoreNotFound) {
		return 0, false
	}
	require.NoError(t, err)
	return score.Value, true
}

func pngBytes(extra int) []byte {
	header := []byte("\x89PNG\x0D\x0A\x1A\x0A")
	return append(header, bytes.Repeat([]byte{0}, extra)...)
}
