package participant

import (
	"context"
	"errors"
	"time"

	participantdomain "secret-santa-go/internal/domain/participant"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(participantdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreatePending(ctx context.Context, pending *participantdomain.PendingParticipant) error {
	return r.db.WithContext(ctx).Create(pending).Error
}

func (r *PostgresRepository) GetPending(ctx context.Context, id string) (*participantdomain.PendingParticipant, error) {
	var pending participantdomain.PendingParticipant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, participantdomain.ErrPendingNotFound
		}
		return nil, err
	}
	return &pending, nil
}

func (r *PostgresRepository) UpdatePendingCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&participantdomain.PendingParticipant{}).
		Where("id = ?", id).
		Updates(map[string]any{"code": code, "code_expires_at": expiresAt}).Error
}

func (r *PostgresRepository) DeletePending(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&participantdomain.PendingParticipant{}, "id = ?", id).Error
}

func (r *PostgresRepository) CreateParticipant(ctx context.Context, participant *participantdomain.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *PostgresRepository) GetParticipant(ctx context.Context, id string) (*participantdomain.Participant, error) {
	var participant participantdomain.Participant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, participantdomain.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (r *PostgresRepository) ListParticipants(ctx context.Context) ([]participantdomain.Participant, error) {
	var participants []participantdomain.Participant
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *PostgresRepository) ListVerifiedByIDs(ctx context.Context, ids []string) ([]participantdomain.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var participants []participantdomain.Participant
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND email_verified = ?", ids, true).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *PostgresRepository) ListVerifiedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&participantdomain.Participant{}).
		Where("email_verified = ?", true).
		Order("created_at asc").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) DeleteParticipant(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&participantdomain.Participant{}, "id = ?", id).Error
}

func (r *PostgresRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&participantdomain.Participant{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&participantdomain.PendingParticipant{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
