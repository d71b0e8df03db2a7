package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNoProfile       = errors.New("no user profile")
	ErrScreenNotFound  = errors.New("screen not found")
	ErrActionDisabled  = errors.New("action disabled")
	ErrInvalidImage    = errors.New("invalid image")

	ErrAIUnavailable       = errors.New("ai service unavailable")
	ErrMalformedAIResponse = errors.New("malformed ai response")
	ErrNoImageGenerated    = errors.New("no image generated")
)
