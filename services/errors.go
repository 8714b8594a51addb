package services

import "errors"

// Shared errors used across services and by the HTTP error mapping.
var (
	ErrValidationFailed = errors.New("validation failed")

	// ErrReference means a judge, competitor or question referenced by a
	// request no longer exists; callers should refresh their view.
	ErrReference = errors.New("referenced judge, competitor or question does not exist")

	ErrConflict           = errors.New("conflict with existing data")
	ErrJudgeEmailConflict = errors.New("judge email is already in use")
	ErrUsernameConflict   = errors.New("username is already in use")

	ErrJudgeNotFound      = errors.New("judge not found")
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrQuestionNotFound   = errors.New("question not found")

	ErrIncompleteSubmission = errors.New("every active question must be scored before saving")
	ErrNoActiveQuestions    = errors.New("no questions have been configured for scoring")
	ErrInvalidScoreValue    = errors.New("score value is not an allowed rubric level")

	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrPasswordRequired       = errors.New("password is required to create an account")

	ErrBannerNotFound        = errors.New("banner image not found")
	ErrBannerTooLarge        = errors.New("banner image exceeds the maximum upload size")
	ErrBannerUnsupportedType = errors.New("banner image must be png, jpeg or webp")
	ErrStorageNotConfigured  = errors.New("object storage is not configured")
)
