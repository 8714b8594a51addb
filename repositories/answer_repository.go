package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/judging-system/models"
)

// ErrAnswerReferenceInvalid is returned when an answer points at a judge,
// competitor or question that no longer exists.
var ErrAnswerReferenceInvalid = errors.New("answer references a missing judge, competitor or question")

type AnswerRepository interface {
	ListByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) ([]models.Answer, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.Answer, error)
	BatchCreate(ctx context.Context, exec SQLExecutor, answers []models.Answer) error
	DeleteByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) error
	DeleteByJudge(ctx context.Context, exec SQLExecutor, judgeID int) error
	DeleteByCompetitor(ctx context.Context, exec SQLExecutor, competitorID int) error
	DeleteByQuestion(ctx context.Context, exec SQLExecutor, questionID int) error
}

type sqlAnswerRepository struct {
	baseRepository
}

func NewAnswerRepository(db *sql.DB) AnswerRepository {
	return &sqlAnswerRepository{baseRepository{db: db}}
}

func (r *sqlAnswerRepository) queryAnswers(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Answer, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]models.Answer, 0)
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.JudgeID, &a.CompetitorID, &a.QuestionID, &a.Value); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *sqlAnswerRepository) ListByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) ([]models.Answer, error) {
	return r.queryAnswers(ctx, exec, `
		SELECT judge_id, competitor_id, question_id, value
		FROM answers
		WHERE judge_id = $1 AND competitor_id = $2
		ORDER BY question_id ASC`, judgeID, competitorID)
}

func (r *sqlAnswerRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.Answer, error) {
	return r.queryAnswers(ctx, exec, `
		SELECT judge_id, competitor_id, question_id, value
		FROM answers
		ORDER BY judge_id ASC, competitor_id ASC, question_id ASC`)
}

func (r *sqlAnswerRepository) BatchCreate(ctx context.Context, exec SQLExecutor, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	stmt, err := r.getExecutor(exec).PrepareContext(ctx, `
		INSERT INTO answers (judge_id, competitor_id, question_id, value)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("BatchCreate failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range answers {
		if _, err := stmt.ExecContext(ctx, a.JudgeID, a.CompetitorID, a.QuestionID, a.Value); err != nil {
			if kind, _ := classifyConstraintError(err); kind == violationForeignKey {
				return fmt.Errorf("%w (question %d)", ErrAnswerReferenceInvalid, a.QuestionID)
			}
			return fmt.Errorf("BatchCreate failed for question %d: %w", a.QuestionID, err)
		}
	}
	return nil
}

func (r *sqlAnswerRepository) DeleteByPair(ctx context.Context, exec SQLExecutor, judgeID, competitorID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx,
		`DELETE FROM answers WHERE judge_id = $1 AND competitor_id = $2`, judgeID, competitorID)
	return err
}

func (r *sqlAnswerRepository) DeleteByJudge(ctx context.Context, exec SQLExecutor, judgeID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM answers WHERE judge_id = $1`, judgeID)
	return err
}

func (r *sqlAnswerRepository) DeleteByCompetitor(ctx context.Context, exec SQLExecutor, competitorID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM answers WHERE competitor_id = $1`, competitorID)
	return err
}

func (r *sqlAnswerRepository) DeleteByQuestion(ctx context.Context, exec SQLExecutor, questionID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM answers WHERE question_id = $1`, questionID)
	return err
}
