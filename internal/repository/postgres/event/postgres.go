package event

import (
	"context"
	"errors"

	eventdomain "secret-santa-go/internal/domain/event"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(eventdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateEvent(ctx context.Context, created *eventdomain.Event, participantIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(created).Error; err != nil {
			return err
		}
		for position, participantID := range participantIDs {
			entry := eventdomain.EventParticipant{
				EventID:       created.ID,
				ParticipantID: participantID,
				Position:      position,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresRepository) GetEvent(ctx context.Context, id string) (*eventdomain.Event, error) {
	var found eventdomain.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrEventNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) ListEvents(ctx context.Context) ([]eventdomain.Event, error) {
	var events []eventdomain.Event
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateStatusIf is the compare-and-swap that serializes concurrent
// lifecycle transitions: the write only lands when the stored status
// still matches the expected one.
func (r *PostgresRepository) UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&eventdomain.Event{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListParticipantIDs(ctx context.Context, eventID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&eventdomain.EventParticipant{}).
		Where("event_id = ?", eventID).
		Order("position asc").
		Pluck("participant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) AddParticipant(ctx context.Context, eventID, participantID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&eventdomain.EventParticipant{}).
			Where("event_id = ?", eventID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		entry := eventdomain.EventParticipant{
			EventID:       eventID,
			ParticipantID: participantID,
			Position:      maxPosition + 1,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
	})
}

func (r *PostgresRepository) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	return r.db.WithContext(ctx).
		Delete(&eventdomain.EventParticipant{}, "event_id = ? AND participant_id = ?", eventID, participantID).Error
}

func (r *PostgresRepository) ListHistory(ctx context.Context, eventID string) ([]eventdomain.DrawHistoryEntry, error) {
	var entries []eventdomain.DrawHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("drawn_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
