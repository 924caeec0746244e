package utils

import "errors"

var (
	ErrInvalidInputForStage = errors.New("input does not match current dialogue stage")
	ErrSessionNotFound      = errors.New("session not found")
	ErrMissingPreconditions = errors.New("session is missing preferences required for a search")
	ErrProviderUnavailable  = errors.New("geo provider unavailable")
	ErrProviderRejected     = errors.New("geo provider rejected the request")
	ErrUserNotFound         = errors.New("user not found")
	ErrDatabaseError        = errors.New("database error")
)
