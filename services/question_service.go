package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
)

type QuestionService interface {
	CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error)
	GetQuestion(ctx context.Context, id int) (*models.Question, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, id int, input QuestionInput) (*models.Question, error)
	// DeleteQuestion drops the question and its answers, then rebuilds every
	// composite inside the same transaction.
	DeleteQuestion(ctx context.Context, id int) error
}

type QuestionInput struct {
	Prompt string `json:"prompt" validate:"required,max=1000"`
}

type questionService struct {
	db           *sql.DB
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	agg          *aggregator
	notifier     LeaderboardNotifier
}

func NewQuestionService(
	db *sql.DB,
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	compositeRepo repositories.CompositeScoreRepository,
	metricsManager *metrics.Manager,
	notifier LeaderboardNotifier,
) QuestionService {
	return &questionService{
		db:           db,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		agg:          &aggregator{answerRepo: answerRepo, compositeRepo: compositeRepo, metrics: metricsManager},
		notifier:     notifier,
	}
}

func mapQuestionError(err error) error {
	if errors.Is(err, repositories.ErrQuestionNotFound) {
		return ErrQuestionNotFound
	}
	return err
}

func (s *questionService) CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error) {
	input.Prompt = strings.TrimSpace(input.Prompt)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	question := &models.Question{Prompt: input.Prompt}
	if err := s.questionRepo.Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapQuestionError(err)
	}
	return question, nil
}

func (s *questionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.questionRepo.List(ctx, nil)
}

func (s *questionService) UpdateQuestion(ctx context.Context, id int, input QuestionInput) (*models.Question, error) {
	input.Prompt = strings.TrimSpace(input.Prompt)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	question := &models.Question{ID: id, Prompt: input.Prompt}
	if err := s.questionRepo.Update(ctx, nil, question); err != nil {
		return nil, mapQuestionError(err)
	}
	return s.GetQuestion(ctx, id)
}

func (s *questionService) DeleteQuestion(ctx context.Context, id int) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.answerRepo.DeleteByQuestion(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete answers of question %d: %w", id, err)
		}
		if err := s.questionRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.agg.recomputeAll(ctx, tx)
	})
	if err != nil {
		return mapQuestionError(err)
	}
	notify(ctx, s.notifier)
	return nil
}
