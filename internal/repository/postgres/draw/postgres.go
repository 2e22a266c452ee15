package draw

import (
	"context"
	"errors"

	drawdomain "secret-santa-go/internal/domain/draw"
	eventdomain "secret-santa-go/internal/domain/event"
	"gorm.io/gorm"
)

// PostgresRepository spans tickets, draw history and the event status
// column so one draw commits as a single transaction.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(drawdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) UpdateEventStatusIf(ctx context.Context, eventID, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&eventdomain.Event{}).
		Where("id = ? AND status = ?", eventID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) CreateTickets(ctx context.Context, tickets []drawdomain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tickets).Error
}

func (r *PostgresRepository) ListTicketsByIDs(ctx context.Context, ids []string) ([]drawdomain.Ticket, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tickets []drawdomain.Ticket
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *PostgresRepository) DeleteTicketsByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&drawdomain.Ticket{}, "id IN ?", ids).Error
}

func (r *PostgresRepository) CountTicketsByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&drawdomain.Ticket{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) IsTicketCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&drawdomain.Ticket{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) AppendHistoryEntry(ctx context.Context, entry *eventdomain.DrawHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) LatestHistoryEntry(ctx context.Context, eventID string) (*eventdomain.DrawHistoryEntry, error) {
	var entry eventdomain.DrawHistoryEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("drawn_at desc").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresRepository) DeleteHistoryEntry(ctx context.Context, entryID string) error {
	return r.db.WithContext(ctx).Delete(&eventdomain.DrawHistoryEntry{}, "id = ?", entryID).Error
}
