package gifts

import (
	"context"
	"errors"

	giftsdomain "secret-santa-go/internal/domain/gifts"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *giftsdomain.GiftItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) GetItem(ctx context.Context, id string) (*giftsdomain.GiftItem, error) {
	var item giftsdomain.GiftItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, giftsdomain.ErrGiftItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *giftsdomain.GiftItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&giftsdomain.GiftItem{}, "id = ?", id).Error
}

func (r *PostgresRepository) ListByParticipant(ctx context.Context, participantID string) ([]giftsdomain.GiftItem, error) {
	var items []giftsdomain.GiftItem
	if err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("priority desc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListByParticipants(ctx context.Context, participantIDs []string) ([]giftsdomain.GiftItem, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}
	var items []giftsdomain.GiftItem
	if err := r.db.WithContext(ctx).
		Where("participant_id IN ?", participantIDs).
		Order("priority desc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
