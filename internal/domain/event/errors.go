package event

import "errors"

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventCancelled        = errors.New("cancelled events cannot be drawn")
	ErrAlreadyDrawn          = errors.New("already drawn, create a new event to redo")
	ErrEventNotActive        = errors.New("event is not active")
	ErrNoDrawHistory         = errors.New("no draw to undo")
	ErrNotEnoughParticipants = errors.New("at least two participants required")
	ErrParticipantUnknown    = errors.New("participant not found")
	ErrStatusConflict        = errors.New("event status changed concurrently")
)
