package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/judging-system/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserUsernameConflict = errors.New("user username conflict")
	ErrUserJudgeConflict    = errors.New("judge already has an account")
)

type UserRepository interface {
	Create(ctx context.Context, exec SQLExecutor, user *models.User) error
	GetByUsername(ctx context.Context, exec SQLExecutor, username string) (*models.User, error)
	GetByJudgeID(ctx context.Context, exec SQLExecutor, judgeID int) (*models.User, error)
	Update(ctx context.Context, exec SQLExecutor, user *models.User) error
	DeleteByJudgeID(ctx context.Context, exec SQLExecutor, judgeID int) error
	CountByRole(ctx context.Context, exec SQLExecutor, role models.UserRole) (int, error)
}

type sqlUserRepository struct {
	baseRepository
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &sqlUserRepository{baseRepository{db: db}}
}

func mapUserError(err error) error {
	kind, constraint := classifyConstraintError(err)
	if kind != violationUnique {
		return err
	}
	switch constraint {
	case "users_username_key":
		return ErrUserUsernameConflict
	case "users_judge_id_key":
		return ErrUserJudgeConflict
	}
	return err
}

func (r *sqlUserRepository) Create(ctx context.Context, exec SQLExecutor, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, judge_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.JudgeID,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return mapUserError(err)
	}
	return nil
}

func (r *sqlUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	var judgeID sql.NullInt64
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &judgeID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Role = models.UserRole(role)
	if judgeID.Valid {
		id := int(judgeID.Int64)
		u.JudgeID = &id
	}
	return &u, nil
}

func (r *sqlUserRepository) GetByUsername(ctx context.Context, exec SQLExecutor, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, judge_id, created_at
		FROM users WHERE username = $1`
	return r.scanUser(r.getExecutor(exec).QueryRowContext(ctx, query, username))
}

func (r *sqlUserRepository) GetByJudgeID(ctx context.Context, exec SQLExecutor, judgeID int) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, judge_id, created_at
		FROM users WHERE judge_id = $1 AND role = 'judge'`
	return r.scanUser(r.getExecutor(exec).QueryRowContext(ctx, query, judgeID))
}

func (r *sqlUserRepository) Update(ctx context.Context, exec SQLExecutor, user *models.User) error {
	query := `UPDATE users SET username = $1, password_hash = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, user.Username, user.PasswordHash, user.ID)
	if err != nil {
		return mapUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *sqlUserRepository) DeleteByJudgeID(ctx context.Context, exec SQLExecutor, judgeID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM users WHERE judge_id = $1`, judgeID)
	return err
}

func (r *sqlUserRepository) CountByRole(ctx context.Context, exec SQLExecutor, role models.UserRole) (int, error) {
	var count int
	err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&count)
	return count, err
}
