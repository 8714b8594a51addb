package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/Dosada05/judging-system/scoring"
)

// Rejection reasons reported to the submissions_rejected metric.
const (
	rejectIncomplete = "incomplete"
	rejectInvalid    = "invalid_value"
	rejectReference  = "reference"
)

type ScoringService interface {
	// RecordAnswers replaces the full answer set of one (judge, competitor)
	// pair with the given question->value mapping and refreshes the pair's
	// composite in the same transaction.
	RecordAnswers(ctx context.Context, judgeID, competitorID int, answers map[int]int) error
	GetAnswers(ctx context.Context, judgeID, competitorID int) (map[int]int, error)
	// SubmitScores accepts rubric levels (1-10) from a judge. Every active
	// question must carry a level; 0 means not set.
	SubmitScores(ctx context.Context, judgeID, competitorID int, levels map[int]int) error
	GetLevels(ctx context.Context, judgeID, competitorID int) (map[int]int, error)
	RecomputePair(ctx context.Context, judgeID, competitorID int) error
	RecomputeAll(ctx context.Context) error
	GetCompositesForJudge(ctx context.Context, judgeID int) (map[int]float64, error)
}

type scoringService struct {
	db             *sql.DB
	judgeRepo      repositories.JudgeRepository
	competitorRepo repositories.CompetitorRepository
	questionRepo   repositories.QuestionRepository
	answerRepo     repositories.AnswerRepository
	compositeRepo  repositories.CompositeScoreRepository
	agg            *aggregator
	metrics        *metrics.Manager
	notifier       LeaderboardNotifier
}

func NewScoringService(
	db *sql.DB,
	judgeRepo repositories.JudgeRepository,
	competitorRepo repositories.CompetitorRepository,
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	compositeRepo repositories.CompositeScoreRepository,
	metricsManager *metrics.Manager,
	notifier LeaderboardNotifier,
) ScoringService {
	return &scoringService{
		db:             db,
		judgeRepo:      judgeRepo,
		competitorRepo: competitorRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		compositeRepo:  compositeRepo,
		agg:            &aggregator{answerRepo: answerRepo, compositeRepo: compositeRepo, metrics: metricsManager},
		metrics:        metricsManager,
		notifier:       notifier,
	}
}

func (s *scoringService) RecordAnswers(ctx context.Context, judgeID, competitorID int, answers map[int]int) error {
	for questionID, value := range answers {
		if !scoring.IsValidValue(value) {
			s.metrics.IncSubmissionRejected(rejectInvalid)
			return fmt.Errorf("%w: question %d has value %d", ErrInvalidScoreValue, questionID, value)
		}
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.judgeRepo.GetByID(ctx, tx, judgeID); err != nil {
			if errors.Is(err, repositories.ErrJudgeNotFound) {
				return fmt.Errorf("%w: judge %d", ErrReference, judgeID)
			}
			return fmt.Errorf("failed to load judge %d: %w", judgeID, err)
		}
		if _, err := s.competitorRepo.GetByID(ctx, tx, competitorID); err != nil {
			if errors.Is(err, repositories.ErrCompetitorNotFound) {
				return fmt.Errorf("%w: competitor %d", ErrReference, competitorID)
			}
			return fmt.Errorf("failed to load competitor %d: %w", competitorID, err)
		}
		questions, err := s.questionRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list questions: %w", err)
		}
		known := make(map[int]bool, len(questions))
		for _, q := range questions {
			known[q.ID] = true
		}

		rows := make([]models.Answer, 0, len(answers))
		for questionID, value := range answers {
			if !known[questionID] {
				return fmt.Errorf("%w: question %d", ErrReference, questionID)
			}
			rows = append(rows, models.Answer{
				JudgeID:      judgeID,
				CompetitorID: competitorID,
				QuestionID:   questionID,
				Value:        value,
			})
		}

		if err := s.answerRepo.DeleteByPair(ctx, tx, judgeID, competitorID); err != nil {
			return fmt.Errorf("failed to clear answers: %w", err)
		}
		if err := s.answerRepo.BatchCreate(ctx, tx, rows); err != nil {
			if errors.Is(err, repositories.ErrAnswerReferenceInvalid) {
				return fmt.Errorf("%w: %w", ErrReference, err)
			}
			return fmt.Errorf("failed to store answers: %w", err)
		}
		return s.agg.recomputePair(ctx, tx, judgeID, competitorID)
	})
	if err != nil {
		if errors.Is(err, ErrReference) {
			s.metrics.IncSubmissionRejected(rejectReference)
		}
		return err
	}

	s.metrics.IncSubmissions()
	notify(ctx, s.notifier)
	return nil
}

func (s *scoringService) GetAnswers(ctx context.Context, judgeID, competitorID int) (map[int]int, error) {
	answers, err := s.answerRepo.ListByPair(ctx, nil, judgeID, competitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	result := make(map[int]int, len(answers))
	for _, ans := range answers {
		result[ans.QuestionID] = ans.Value
	}
	return result, nil
}

func (s *scoringService) SubmitScores(ctx context.Context, judgeID, competitorID int, levels map[int]int) error {
	questions, err := s.questionRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoActiveQuestions
	}

	active := make(map[int]bool, len(questions))
	for _, q := range questions {
		active[q.ID] = true
	}
	for questionID, level := range levels {
		if level < 0 || level > scoring.MaxLevel {
			s.metrics.IncSubmissionRejected(rejectInvalid)
			return fmt.Errorf("%w: question %d has level %d", ErrInvalidScoreValue, questionID, level)
		}
		if !active[questionID] {
			s.metrics.IncSubmissionRejected(rejectReference)
			return fmt.Errorf("%w: question %d", ErrReference, questionID)
		}
	}

	values := make(map[int]int, len(questions))
	for _, q := range questions {
		level := levels[q.ID]
		if level == 0 {
			s.metrics.IncSubmissionRejected(rejectIncomplete)
			return fmt.Errorf("%w: question %d has no level", ErrIncompleteSubmission, q.ID)
		}
		values[q.ID] = scoring.LevelToValue(level)
	}

	return s.RecordAnswers(ctx, judgeID, competitorID, values)
}

func (s *scoringService) GetLevels(ctx context.Context, judgeID, competitorID int) (map[int]int, error) {
	answers, err := s.GetAnswers(ctx, judgeID, competitorID)
	if err != nil {
		return nil, err
	}
	levels := make(map[int]int, len(answers))
	for questionID, value := range answers {
		levels[questionID] = scoring.ValueToLevel(value)
	}
	return levels, nil
}

func (s *scoringService) RecomputePair(ctx context.Context, judgeID, competitorID int) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.agg.recomputePair(ctx, tx, judgeID, competitorID)
	})
	if err != nil {
		return err
	}
	notify(ctx, s.notifier)
	return nil
}

func (s *scoringService) RecomputeAll(ctx context.Context) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.agg.recomputeAll(ctx, tx)
	})
	if err != nil {
		return err
	}
	notify(ctx, s.notifier)
	return nil
}

func (s *scoringService) GetCompositesForJudge(ctx context.Context, judgeID int) (map[int]float64, error) {
	scores, err := s.compositeRepo.ListByJudge(ctx, nil, judgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load composites for judge %d: %w", judgeID, err)
	}
	result := make(map[int]float64, len(scores))
	for _, sc := range scores {
		result[sc.CompetitorID] = sc.Value
	}
	return result, nil
}
