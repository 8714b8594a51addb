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

type CompetitorService interface {
	CreateCompetitor(ctx context.Context, input CompetitorInput) (*models.Competitor, error)
	GetCompetitor(ctx context.Context, id int) (*models.Competitor, error)
	ListCompetitors(ctx context.Context) ([]models.Competitor, error)
	UpdateCompetitor(ctx context.Context, id int, input UpdateCompetitorInput) (*models.Competitor, error)
	DeleteCompetitor(ctx context.Context, id int) error
}

type CompetitorInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Notes string `json:"notes" validate:"max=2000"`
}

// UpdateCompetitorInput leaves the notes unchanged when Notes is nil.
type UpdateCompetitorInput struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type competitorService struct {
	db             *sql.DB
	competitorRepo repositories.CompetitorRepository
	answerRepo     repositories.AnswerRepository
	compositeRepo  repositories.CompositeScoreRepository
	notifier       LeaderboardNotifier
}

func NewCompetitorService(
	db *sql.DB,
	competitorRepo repositories.CompetitorRepository,
	answerRepo repositories.AnswerRepository,
	compositeRepo repositories.CompositeScoreRepository,
	notifier LeaderboardNotifier,
) CompetitorService {
	return &competitorService{
		db:             db,
		competitorRepo: competitorRepo,
		answerRepo:     answerRepo,
		compositeRepo:  compositeRepo,
		notifier:       notifier,
	}
}

func mapCompetitorError(err error) error {
	if errors.Is(err, repositories.ErrCompetitorNotFound) {
		return ErrCompetitorNotFound
	}
	return err
}

func (s *competitorService) CreateCompetitor(ctx context.Context, input CompetitorInput) (*models.Competitor, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Notes = strings.TrimSpace(input.Notes)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	competitor := &models.Competitor{Name: input.Name, Notes: input.Notes}
	if err := s.competitorRepo.Create(ctx, nil, competitor); err != nil {
		return nil, fmt.Errorf("failed to create competitor: %w", err)
	}
	notify(ctx, s.notifier)
	return competitor, nil
}

func (s *competitorService) GetCompetitor(ctx context.Context, id int) (*models.Competitor, error) {
	competitor, err := s.competitorRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapCompetitorError(err)
	}
	return competitor, nil
}

func (s *competitorService) ListCompetitors(ctx context.Context) ([]models.Competitor, error) {
	return s.competitorRepo.List(ctx, nil)
}

func (s *competitorService) UpdateCompetitor(ctx context.Context, id int, input UpdateCompetitorInput) (*models.Competitor, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		input.Notes = &trimmed
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	competitor, err := s.competitorRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapCompetitorError(err)
	}
	competitor.Name = input.Name
	if input.Notes != nil {
		competitor.Notes = *input.Notes
	}
	if err := s.competitorRepo.Update(ctx, nil, competitor); err != nil {
		return nil, mapCompetitorError(err)
	}
	notify(ctx, s.notifier)
	return competitor, nil
}

func (s *competitorService) DeleteCompetitor(ctx context.Context, id int) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.answerRepo.DeleteByCompetitor(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete answers of competitor %d: %w", id, err)
		}
		if err := s.compositeRepo.DeleteByCompetitor(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete composites of competitor %d: %w", id, err)
		}
		return s.competitorRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return mapCompetitorError(err)
	}
	notify(ctx, s.notifier)
	return nil
}
