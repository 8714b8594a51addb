package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
)

type JudgeService interface {
	CreateJudge(ctx context.Context, input CreateJudgeInput) (*models.Judge, error)
	GetJudge(ctx context.Context, id int) (*models.Judge, error)
	ListJudges(ctx context.Context) ([]models.Judge, error)
	UpdateJudge(ctx context.Context, id int, input UpdateJudgeInput) (*models.Judge, error)
	// DeleteJudge removes the judge with its account, answers and composites.
	DeleteJudge(ctx context.Context, id int) error
}

type CreateJudgeInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateJudgeInput replaces the judge's profile. An empty Password keeps the
// current one.
type UpdateJudgeInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"max=72"`
}

type judgeService struct {
	db            *sql.DB
	judgeRepo     repositories.JudgeRepository
	userRepo      repositories.UserRepository
	answerRepo    repositories.AnswerRepository
	compositeRepo repositories.CompositeScoreRepository
	notifier      LeaderboardNotifier
}

func NewJudgeService(
	db *sql.DB,
	judgeRepo repositories.JudgeRepository,
	userRepo repositories.UserRepository,
	answerRepo repositories.AnswerRepository,
	compositeRepo repositories.CompositeScoreRepository,
	notifier LeaderboardNotifier,
) JudgeService {
	return &judgeService{
		db:            db,
		judgeRepo:     judgeRepo,
		userRepo:      userRepo,
		answerRepo:    answerRepo,
		compositeRepo: compositeRepo,
		notifier:      notifier,
	}
}

func normalizeJudgeFields(name, email, username *string) {
	*name = strings.TrimSpace(*name)
	*email = strings.ToLower(strings.TrimSpace(*email))
	*username = strings.TrimSpace(*username)
}

func mapAccountError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrJudgeEmailConflict):
		return fmt.Errorf("%w: %w", ErrConflict, ErrJudgeEmailConflict)
	case errors.Is(err, repositories.ErrUserUsernameConflict):
		return fmt.Errorf("%w: %w", ErrConflict, ErrUsernameConflict)
	case errors.Is(err, repositories.ErrJudgeNotFound):
		return ErrJudgeNotFound
	}
	return err
}

func (s *judgeService) CreateJudge(ctx context.Context, input CreateJudgeInput) (*models.Judge, error) {
	normalizeJudgeFields(&input.Name, &input.Email, &input.Username)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	judge := &models.Judge{Name: input.Name, Email: input.Email}
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.judgeRepo.Create(ctx, tx, judge); err != nil {
			return err
		}
		user := &models.User{
			Username:     input.Username,
			PasswordHash: hash,
			Role:         models.RoleJudge,
			JudgeID:      &judge.ID,
		}
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, mapAccountError(err)
	}

	judge.Username = &input.Username
	return judge, nil
}

func (s *judgeService) GetJudge(ctx context.Context, id int) (*models.Judge, error) {
	judge, err := s.judgeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapAccountError(err)
	}
	return judge, nil
}

func (s *judgeService) ListJudges(ctx context.Context) ([]models.Judge, error) {
	return s.judgeRepo.List(ctx, nil)
}

func (s *judgeService) UpdateJudge(ctx context.Context, id int, input UpdateJudgeInput) (*models.Judge, error) {
	normalizeJudgeFields(&input.Name, &input.Email, &input.Username)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var hash string
	if input.Password != "" {
		var err error
		if hash, err = hashPassword(input.Password); err != nil {
			return nil, err
		}
	}

	judge := &models.Judge{ID: id, Name: input.Name, Email: input.Email}
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.judgeRepo.Update(ctx, tx, judge); err != nil {
			return err
		}

		user, err := s.userRepo.GetByJudgeID(ctx, tx, id)
		if errors.Is(err, repositories.ErrUserNotFound) {
			if hash == "" {
				return ErrPasswordRequired
			}
			return s.userRepo.Create(ctx, tx, &models.User{
				Username:     input.Username,
				PasswordHash: hash,
				Role:         models.RoleJudge,
				JudgeID:      &judge.ID,
			})
		}
		if err != nil {
			return err
		}

		user.Username = input.Username
		if hash != "" {
			user.PasswordHash = hash
		}
		return s.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, mapAccountError(err)
	}

	return s.GetJudge(ctx, id)
}

func (s *judgeService) DeleteJudge(ctx context.Context, id int) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.answerRepo.DeleteByJudge(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete answers of judge %d: %w", id, err)
		}
		if err := s.compositeRepo.DeleteByJudge(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete composites of judge %d: %w", id, err)
		}
		if err := s.userRepo.DeleteByJudgeID(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete account of judge %d: %w", id, err)
		}
		return s.judgeRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return mapAccountError(err)
	}
	notify(ctx, s.notifier)
	return nil
}
