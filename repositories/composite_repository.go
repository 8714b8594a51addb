package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/judging-system/models"
)

var ErrCompositeScoreNotFound = errors.New("composite score not found")

type CompositeScoreRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, score models.CompositeScore) error
	GetByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) (*models.CompositeScore, error)
	ListByJudge(ctx context.Context, exec SQLExecutor, judgeID int) ([]models.CompositeScore, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.CompositeScore, error)
	BatchCreate(ctx context.Context, exec SQLExecutor, scores []models.CompositeScore) error
	DeleteByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) error
	DeleteByJudge(ctx context.Context, exec SQLExecutor, judgeID int) error
	DeleteByCompetitor(ctx context.Context, exec SQLExecutor, competitorID int) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type sqlCompositeScoreRepository struct {
	baseRepository
}

func NewCompositeScoreRepository(db *sql.DB) CompositeScoreRepository {
	return &sqlCompositeScoreRepository{baseRepository{db: db}}
}

func (r *sqlCompositeScoreRepository) Upsert(ctx context.Context, exec SQLExecutor, score models.CompositeScore) error {
	query := `
		INSERT INTO composite_scores (judge_id, competitor_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (judge_id, competitor_id) DO UPDATE SET value = excluded.value`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, score.JudgeID, score.CompetitorID, score.Value)
	return err
}

func (r *sqlCompositeScoreRepository) GetByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) (*models.CompositeScore, error) {
	var s models.CompositeScore
	err := r.getExecutor(exec).QueryRowContext(ctx, `
		SELECT judge_id, competitor_id, value
		FROM composite_scores
		WHERE judge_id = $1 AND competitor_id = $2`, judgeID, competitorID,
	).Scan(&s.JudgeID, &s.CompetitorID, &s.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompositeScoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqlCompositeScoreRepository) queryScores(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.CompositeScore, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.CompositeScore, 0)
	for rows.Next() {
		var s models.CompositeScore
		if err := rows.Scan(&s.JudgeID, &s.CompetitorID, &s.Value); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *sqlCompositeScoreRepository) ListByJudge(ctx context.Context, exec SQLExecutor, judgeID int) ([]models.CompositeScore, error) {
	return r.queryScores(ctx, exec, `
		SELECT judge_id, competitor_id, value
		FROM composite_scores
		WHERE judge_id = $1
		ORDER BY competitor_id ASC`, judgeID)
}

func (r *sqlCompositeScoreRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.CompositeScore, error) {
	return r.queryScores(ctx, exec, `
		SELECT judge_id, competitor_id, value
		FROM composite_scores
		ORDER BY competitor_id ASC, judge_id ASC`)
}

func (r *sqlCompositeScoreRepository) BatchCreate(ctx context.Context, exec SQLExecutor, scores []models.CompositeScore) error {
	if len(scores) == 0 {
		return nil
	}

	stmt, err := r.getExecutor(exec).PrepareContext(ctx, `
		INSERT INTO composite_scores (judge_id, competitor_id, value)
		VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("BatchCreate failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range scores {
		if _, err := stmt.ExecContext(ctx, s.JudgeID, s.CompetitorID, s.Value); err != nil {
			return fmt.Errorf("BatchCreate failed for judge %d competitor %d: %w", s.JudgeID, s.CompetitorID, err)
		}
	}
	return nil
}

func (r *sqlCompositeScoreRepository) DeleteByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx,
		`DELETE FROM composite_scores WHERE judge_id = $1 AND competitor_id = $2`, judgeID, competitorID)
	return err
}

func (r *sqlCompositeScoreRepository) DeleteByJudge(ctx context.Context, exec SQLExecutor, judgeID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM composite_scores WHERE judge_id = $1`, judgeID)
	return err
}

func (r *sqlCompositeScoreRepository) DeleteByCompetitor(ctx context.Context, exec SQLExecutor, competitorID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM composite_scores WHERE competitor_id = $1`, competitorID)
	return err
}

func (r *sqlCompositeScoreRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM composite_scores`)
	return err
}
