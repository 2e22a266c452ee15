package draw

import (
	"context"

	"secret-santa-go/internal/domain/event"
)

// Repository persists tickets and the pieces of event state a draw
// mutates. Transaction scopes the status flip, ticket writes and
// history change into one atomic unit.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	UpdateEventStatusIf(ctx context.Context, eventID, from, to string) (bool, error)
	CreateTickets(ctx context.Context, tickets []Ticket) error
	ListTicketsByIDs(ctx context.Context, ids []string) ([]Ticket, error)
	DeleteTicketsByIDs(ctx context.Context, ids []string) error
	CountTicketsByEvent(ctx context.Context, eventID string) (int64, error)
	IsTicketCodeTaken(ctx context.Context, code string) (bool, error)
	AppendHistoryEntry(ctx context.Context, entry *event.DrawHistoryEntry) error
	LatestHistoryEntry(ctx context.Context, eventID string) (*event.DrawHistoryEntry, error)
	DeleteHistoryEntry(ctx context.Context, entryID string) error
}

// EventStore is the slice of the event domain the engine reads.
type EventStore interface {
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	ListParticipantIDs(ctx context.Context, eventID string) ([]string, error)
}
