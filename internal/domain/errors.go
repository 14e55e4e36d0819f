package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownField     = errors.New("unknown prompt field")
	ErrPromptNotReady   = errors.New("prompt not ready")
	ErrAnalysisStarted  = errors.New("analysis already started")
	ErrTurnInFlight     = errors.New("chat turn already in flight")
	ErrProviderFailure  = errors.New("provider failure")
	ErrNoImageAvailable = errors.New("no image available")
)
