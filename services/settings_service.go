package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
)

const maxIntroMessageLength = 5000

type SettingsService interface {
	// GetIntroMessage returns the judge intro text, or "" when none is set.
	GetIntroMessage(ctx context.Context) (string, error)
	// SetIntroMessage stores the trimmed text. Blank text clears the message.
	SetIntroMessage(ctx context.Context, message string) (string, error)
	ClearIntroMessage(ctx context.Context) error
}

type settingsService struct {
	settingRepo repositories.SettingRepository
}

func NewSettingsService(settingRepo repositories.SettingRepository) SettingsService {
	return &settingsService{settingRepo: settingRepo}
}

func (s *settingsService) GetIntroMessage(ctx context.Context) (string, error) {
	message, err := s.settingRepo.Get(ctx, models.SettingKeyIntroMessage)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load intro message: %w", err)
	}
	return message, nil
}

func (s *settingsService) SetIntroMessage(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", s.ClearIntroMessage(ctx)
	}
	if len([]rune(message)) > maxIntroMessageLength {
		return "", &ValidationError{Fields: map[string]string{
			"message": fmt.Sprintf("must be at most %d characters", maxIntroMessageLength),
		}}
	}
	if err := s.settingRepo.Set(ctx, models.SettingKeyIntroMessage, message); err != nil {
		return "", fmt.Errorf("failed to store intro message: %w", err)
	}
	return message, nil
}

func (s *settingsService) ClearIntroMessage(ctx context.Context) error {
	if err := s.settingRepo.Delete(ctx, models.SettingKeyIntroMessage); err != nil {
		return fmt.Errorf("failed to clear intro message: %w", err)
	}
	return nil
}
