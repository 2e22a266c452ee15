package event

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateEvent(ctx context.Context, event *Event, participantIDs []string) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	// UpdateStatusIf writes the new status only when the stored status
	// still matches from, and reports whether the write happened.
	UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error)
	ListParticipantIDs(ctx context.Context, eventID string) ([]string, error)
	AddParticipant(ctx context.Context, eventID, participantID string) error
	RemoveParticipant(ctx context.Context, eventID, participantID string) error
	ListHistory(ctx context.Context, eventID string) ([]DrawHistoryEntry, error)
}
