package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/judging-system/models"
)

var (
	ErrJudgeNotFound      = errors.New("judge not found")
	ErrJudgeEmailConflict = errors.New("judge email conflict")
)

type JudgeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, judge *models.Judge) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Judge, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Judge, error)
	Update(ctx context.Context, exec SQLExecutor, judge *models.Judge) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type sqlJudgeRepository struct {
	baseRepository
}

func NewJudgeRepository(db *sql.DB) JudgeRepository {
	return &sqlJudgeRepository{baseRepository{db: db}}
}

func mapJudgeError(err error) error {
	if kind, constraint := classifyConstraintError(err); kind == violationUnique && constraint == "judges_email_key" {
		return ErrJudgeEmailConflict
	}
	return err
}

func (r *sqlJudgeRepository) Create(ctx context.Context, exec SQLExecutor, judge *models.Judge) error {
	query := `INSERT INTO judges (name, email, created_at) VALUES ($1, $2, $3) RETURNING id`
	if judge.CreatedAt.IsZero() {
		judge.CreatedAt = time.Now().UTC()
	}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, judge.Name, judge.Email, judge.CreatedAt).Scan(&judge.ID)
	if err != nil {
		return mapJudgeError(err)
	}
	return nil
}

func (r *sqlJudgeRepository) scanJudge(rowScanner interface{ Scan(...interface{}) error }) (*models.Judge, error) {
	var j models.Judge
	var username sql.NullString
	err := rowScanner.Scan(&j.ID, &j.Name, &j.Email, &j.CreatedAt, &username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJudgeNotFound
		}
		return nil, err
	}
	if username.Valid {
		j.Username = &username.String
	}
	return &j, nil
}

func (r *sqlJudgeRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Judge, error) {
	query := `
		SELECT j.id, j.name, j.email, j.created_at, u.username
		FROM judges j
		LEFT JOIN users u ON u.judge_id = j.id AND u.role = 'judge'
		WHERE j.id = $1`
	return r.scanJudge(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *sqlJudgeRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Judge, error) {
	query := `
		SELECT j.id, j.name, j.email, j.created_at, u.username
		FROM judges j
		LEFT JOIN users u ON u.judge_id = j.id AND u.role = 'judge'
		ORDER BY j.id ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	judges := make([]models.Judge, 0)
	for rows.Next() {
		j, err := r.scanJudge(rows)
		if err != nil {
			return nil, err
		}
		judges = append(judges, *j)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return judges, nil
}

func (r *sqlJudgeRepository) Update(ctx context.Context, exec SQLExecutor, judge *models.Judge) error {
	query := `UPDATE judges SET name = $1, email = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, judge.Name, judge.Email, judge.ID)
	if err != nil {
		return mapJudgeError(err)
	}
	return checkAffectedRows(result, ErrJudgeNotFound)
}

func (r *sqlJudgeRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM judges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrJudgeNotFound)
}
