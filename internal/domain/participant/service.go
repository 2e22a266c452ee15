package participant

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"secret-santa-go/pkg/logger"
)

const (
	verificationCodeLength = 6
	defaultCodeTTL         = 24 * time.Hour
)

// Notifier delivers verification codes. Failures are logged, not
// surfaced to the registrant.
type Notifier interface {
	SendVerificationCode(ctx context.Context, name, email, code string) error
}

type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	GuardianEmail *string
}

type Service struct {
	repo     Repository
	notifier Notifier
	codeTTL  time.Duration
	log      logger.Logger
}

func NewService(repo Repository, notifier Notifier, codeTTL time.Duration, log logger.Logger) *Service {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		codeTTL:  codeTTL,
		log:      log,
	}
}

// Register creates a pending registration and sends its verification
// code. The registrant becomes a Participant only after Verify.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*PendingParticipant, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.FirstName == "" {
		return nil, fmt.Errorf("first name is required")
	}
	if input.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if input.GuardianEmail != nil {
		guardian := strings.ToLower(strings.TrimSpace(*input.GuardianEmail))
		if guardian == "" {
			input.GuardianEmail = nil
		} else {
			input.GuardianEmail = &guardian
		}
	}

	code, err := generateCode(verificationCodeLength)
	if err != nil {
		return nil, err
	}

	pending := PendingParticipant{
		ID:            uuid.NewString(),
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		GuardianEmail: input.GuardianEmail,
		Code:          code,
		CodeExpiresAt: time.Now().UTC().Add(s.codeTTL),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsEmailTaken(ctx, pending.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		return tx.CreatePending(ctx, &pending)
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendVerificationCode(ctx, pending.DisplayName(), pending.NotifyEmail(), pending.Code); err != nil {
		s.log.InternalError("participants.register: verification code dispatch failed", err, "pending_id", pending.ID)
	}

	return &pending, nil
}

// Verify promotes a pending registration to a verified Participant.
func (s *Service) Verify(ctx context.Context, id, code string) (*Participant, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	var result Participant
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		pending, err := tx.GetPending(ctx, id)
		if err != nil {
			return err
		}
		if time.Now().UTC().After(pending.CodeExpiresAt) {
			return ErrCodeExpired
		}
		if pending.Code != code {
			return ErrCodeMismatch
		}

		verified := Participant{
			ID:            pending.ID,
			FirstName:     pending.FirstName,
			LastName:      pending.LastName,
			Email:         pending.Email,
			GuardianEmail: pending.GuardianEmail,
			EmailVerified: true,
		}
		if err := tx.CreateParticipant(ctx, &verified); err != nil {
			return err
		}
		if err := tx.DeletePending(ctx, pending.ID); err != nil {
			return err
		}

		result = verified
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ResendCode issues a fresh code for a pending registration, replacing
// the previous one.
func (s *Service) ResendCode(ctx context.Context, id string) error {
	pending, err := s.repo.GetPending(ctx, id)
	if err != nil {
		return err
	}

	code, err := generateCode(verificationCodeLength)
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(s.codeTTL)
	if err := s.repo.UpdatePendingCode(ctx, pending.ID, code, expiresAt); err != nil {
		return err
	}

	if err := s.notifier.SendVerificationCode(ctx, pending.DisplayName(), pending.NotifyEmail(), code); err != nil {
		s.log.InternalError("participants.resend: verification code dispatch failed", err, "pending_id", pending.ID)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Participant, error) {
	return s.repo.GetParticipant(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Participant, error) {
	return s.repo.ListParticipants(ctx)
}

// VerifiedByIDs resolves ids to verified participants only; ids
// matching no verified participant are silently dropped.
func (s *Service) VerifiedByIDs(ctx context.Context, ids []string) ([]Participant, error) {
	return s.repo.ListVerifiedByIDs(ctx, ids)
}

func (s *Service) VerifiedIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListVerifiedIDs(ctx)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetParticipant(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrParticipantNotFound) {
		return false, nil
	}
	return false, err
}

// Remove deletes a participant. The gift list goes with it via the
// foreign key cascade.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.GetParticipant(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteParticipant(ctx, id)
}

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
