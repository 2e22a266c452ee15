package participant

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreatePending(ctx context.Context, pending *PendingParticipant) error
	GetPending(ctx context.Context, id string) (*PendingParticipant, error)
	UpdatePendingCode(ctx context.Context, id, code string, expiresAt time.Time) error
	DeletePending(ctx context.Context, id string) error
	CreateParticipant(ctx context.Context, participant *Participant) error
	GetParticipant(ctx context.Context, id string) (*Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	ListVerifiedByIDs(ctx context.Context, ids []string) ([]Participant, error)
	ListVerifiedIDs(ctx context.Context) ([]string, error)
	DeleteParticipant(ctx context.Context, id string) error
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}
