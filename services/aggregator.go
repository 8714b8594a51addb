package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/Dosada05/judging-system/scoring"
)

// aggregator keeps composite scores in step with the answer ledger. Every
// method runs against the executor it is given so callers can fold a
// recomputation into their own transaction.
type aggregator struct {
	answerRepo    repositories.AnswerRepository
	compositeRepo repositories.CompositeScoreRepository
	metrics       *metrics.Manager
}

func (a *aggregator) recomputePair(ctx context.Context, exec repositories.SQLExecutor, judgeID, competitorID int) error {
	start := time.Now()

	answers, err := a.answerRepo.ListByPair(ctx, exec, judgeID, competitorID)
	if err != nil {
		return fmt.Errorf("failed to load answers for judge %d competitor %d: %w", judgeID, competitorID, err)
	}

	values := make([]int, 0, len(answers))
	for _, ans := range answers {
		values = append(values, ans.Value)
	}

	mean, ok := scoring.Mean(values)
	if !ok {
		if err := a.compositeRepo.DeleteByPair(ctx, exec, judgeID, competitorID); err != nil {
			return fmt.Errorf("failed to clear composite for judge %d competitor %d: %w", judgeID, competitorID, err)
		}
	} else {
		score := models.CompositeScore{JudgeID: judgeID, CompetitorID: competitorID, Value: mean}
		if err := a.compositeRepo.Upsert(ctx, exec, score); err != nil {
			return fmt.Errorf("failed to store composite for judge %d competitor %d: %w", judgeID, competitorID, err)
		}
	}

	a.metrics.ObserveRecompute(metrics.ScopePair, time.Since(start))
	return nil
}

func (a *aggregator) recomputeAll(ctx context.Context, exec repositories.SQLExecutor) error {
	start := time.Now()

	answers, err := a.answerRepo.ListAll(ctx, exec)
	if err != nil {
		return fmt.Errorf("failed to load answer ledger: %w", err)
	}
	composites := scoring.GroupComposites(answers)

	if err := a.compositeRepo.DeleteAll(ctx, exec); err != nil {
		return fmt.Errorf("failed to clear composite scores: %w", err)
	}
	if err := a.compositeRepo.BatchCreate(ctx, exec, composites); err != nil {
		return fmt.Errorf("failed to store composite scores: %w", err)
	}

	a.metrics.ObserveRecompute(metrics.ScopeAll, time.Since(start))
	return nil
}
