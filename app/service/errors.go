package service

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrProviderUnavailable  = errors.New("payment provider unavailable")
	ErrNotEntitled          = errors.New("active subscription required")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)
