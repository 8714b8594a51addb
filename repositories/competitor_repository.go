package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/judging-system/models"
)

var ErrCompetitorNotFound = errors.New("competitor not found")

type CompetitorRepository interface {
	Create(ctx context.Context, exec SQLExecutor, competitor *models.Competitor) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Competitor, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Competitor, error)
	Update(ctx context.Context, exec SQLExecutor, competitor *models.Competitor) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type sqlCompetitorRepository struct {
	baseRepository
}

func NewCompetitorRepository(db *sql.DB) CompetitorRepository {
	return &sqlCompetitorRepository{baseRepository{db: db}}
}

func (r *sqlCompetitorRepository) Create(ctx context.Context, exec SQLExecutor, competitor *models.Competitor) error {
	query := `INSERT INTO competitors (name, notes, created_at) VALUES ($1, $2, $3) RETURNING id`
	if competitor.CreatedAt.IsZero() {
		competitor.CreatedAt = time.Now().UTC()
	}
	return r.getExecutor(exec).QueryRowContext(ctx, query,
		competitor.Name, competitor.Notes, competitor.CreatedAt,
	).Scan(&competitor.ID)
}

func (r *sqlCompetitorRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Competitor, error) {
	query := `SELECT id, name, notes, created_at FROM competitors WHERE id = $1`
	var c models.Competitor
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitorNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns competitors ordered by id; the leaderboard relies on this order
// for a deterministic placement of tied rows.
func (r *sqlCompetitorRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Competitor, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, `SELECT id, name, notes, created_at FROM competitors ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitors := make([]models.Competitor, 0)
	for rows.Next() {
		var c models.Competitor
		if err := rows.Scan(&c.ID, &c.Name, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		competitors = append(competitors, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return competitors, nil
}

func (r *sqlCompetitorRepository) Update(ctx context.Context, exec SQLExecutor, competitor *models.Competitor) error {
	query := `UPDATE competitors SET name = $1, notes = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, competitor.Name, competitor.Notes, competitor.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCompetitorNotFound)
}

func (r *sqlCompetitorRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM competitors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCompetitorNotFound)
}
