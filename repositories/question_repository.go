package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/judging-system/models"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, question *models.Question) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Question, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Question, error)
	Update(ctx context.Context, exec SQLExecutor, question *models.Question) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type sqlQuestionRepository struct {
	baseRepository
}

func NewQuestionRepository(db *sql.DB) QuestionRepository {
	return &sqlQuestionRepository{baseRepository{db: db}}
}

func (r *sqlQuestionRepository) Create(ctx context.Context, exec SQLExecutor, question *models.Question) error {
	query := `INSERT INTO questions (prompt, created_at) VALUES ($1, $2) RETURNING id`
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now().UTC()
	}
	return r.getExecutor(exec).QueryRowContext(ctx, query, question.Prompt, question.CreatedAt).Scan(&question.ID)
}

func (r *sqlQuestionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Question, error) {
	var q models.Question
	err := r.getExecutor(exec).QueryRowContext(ctx,
		`SELECT id, prompt, created_at FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Prompt, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *sqlQuestionRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Question, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, `SELECT id, prompt, created_at FROM questions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Prompt, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *sqlQuestionRepository) Update(ctx context.Context, exec SQLExecutor, question *models.Question) error {
	result, err := r.getExecutor(exec).ExecContext(ctx,
		`UPDATE questions SET prompt = $1 WHERE id = $2`, question.Prompt, question.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrQuestionNotFound)
}

func (r *sqlQuestionRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrQuestionNotFound)
}
