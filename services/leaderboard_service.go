package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/judging-system/live"
	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/Dosada05/judging-system/scoring"
	"golang.org/x/sync/errgroup"
)

// LeaderboardNotifier is told when data feeding the leaderboard has changed.
type LeaderboardNotifier interface {
	NotifyChanged(ctx context.Context)
}

// Broadcaster delivers messages to websocket rooms.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message live.Message)
	RoomSize(room string) int
}

type LeaderboardService interface {
	LeaderboardNotifier
	ComputeLeaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
}

type leaderboardService struct {
	competitorRepo repositories.CompetitorRepository
	compositeRepo  repositories.CompositeScoreRepository
	broadcaster    Broadcaster
	metrics        *metrics.Manager
	logger         *slog.Logger
}

func NewLeaderboardService(
	competitorRepo repositories.CompetitorRepository,
	compositeRepo repositories.CompositeScoreRepository,
	broadcaster Broadcaster,
	metricsManager *metrics.Manager,
	logger *slog.Logger,
) LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &leaderboardService{
		competitorRepo: competitorRepo,
		compositeRepo:  compositeRepo,
		broadcaster:    broadcaster,
		metrics:        metricsManager,
		logger:         logger,
	}
}

func (s *leaderboardService) ComputeLeaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	start := time.Now()

	var (
		competitors []models.Competitor
		composites  []models.CompositeScore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		competitors, err = s.competitorRepo.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to list competitors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		composites, err = s.compositeRepo.ListAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to list composite scores: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := scoring.RankLeaderboard(competitors, composites)
	s.metrics.ObserveLeaderboard(time.Since(start))
	return rows, nil
}

// NotifyChanged pushes a fresh leaderboard to live subscribers. Failures are
// logged only; the write that triggered the notification is already committed.
func (s *leaderboardService) NotifyChanged(ctx context.Context) {
	if s.broadcaster == nil || s.broadcaster.RoomSize(live.RoomLeaderboard) == 0 {
		return
	}
	rows, err := s.ComputeLeaderboard(ctx)
	if err != nil {
		s.logger.Warn("leaderboard broadcast skipped", "error", err)
		return
	}
	s.broadcaster.BroadcastToRoom(live.RoomLeaderboard, live.Message{
		Type:    live.MessageLeaderboardUpdated,
		Payload: rows,
		RoomID:  live.RoomLeaderboard,
	})
	s.metrics.IncLeaderboardBroadcast()
}

func notify(ctx context.Context, n LeaderboardNotifier) {
	if n != nil {
		n.NotifyChanged(ctx)
	}
}
