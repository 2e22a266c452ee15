package gifts

import "context"

type Repository interface {
	CreateItem(ctx context.Context, item *GiftItem) error
	GetItem(ctx context.Context, id string) (*GiftItem, error)
	UpdateItem(ctx context.Context, item *GiftItem) error
	DeleteItem(ctx context.Context, id string) error
	ListByParticipant(ctx context.Context, participantID string) ([]GiftItem, error)
	ListByParticipants(ctx context.Context, participantIDs []string) ([]GiftItem, error)
}
