package participant

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrPendingNotFound     = errors.New("pending registration not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrCodeMismatch        = errors.New("verification code does not match")
	ErrCodeExpired         = errors.New("verification code expired")
)
