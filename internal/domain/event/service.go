package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"secret-santa-go/pkg/logger"
)

// ParticipantDirectory is the slice of the participant domain the
// event roster needs.
type ParticipantDirectory interface {
	VerifiedIDs(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type CreateEventInput struct {
	Name           string
	Location       string
	ParticipantIDs []string
}

type Service struct {
	repo         Repository
	participants ParticipantDirectory
	log          logger.Logger
}

func NewService(repo Repository, participants ParticipantDirectory, log logger.Logger) *Service {
	return &Service{
		repo:         repo,
		participants: participants,
		log:          log,
	}
}

// CreateEvent creates an active event. When no roster is supplied it
// is populated from every currently verified participant.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	ids := dedupe(input.ParticipantIDs)
	if len(ids) == 0 {
		verified, err := s.participants.VerifiedIDs(ctx)
		if err != nil {
			return nil, err
		}
		ids = verified
	} else {
		for _, id := range ids {
			exists, err := s.participants.Exists(ctx, id)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, fmt.Errorf("%w: %s", ErrParticipantUnknown, id)
			}
		}
	}
	if len(ids) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	created := Event{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Location: strings.TrimSpace(input.Location),
		Status:   StatusActive,
	}
	if err := s.repo.CreateEvent(ctx, &created, ids); err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *Service) ParticipantIDs(ctx context.Context, eventID string) ([]string, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListParticipantIDs(ctx, eventID)
}

// CancelEvent moves an active event to cancelled. Cancellation is
// terminal: cancelled events cannot be drawn, undone or reactivated.
func (s *Service) CancelEvent(ctx context.Context, id string) (*Event, error) {
	current, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusCancelled || current.Status == StatusDrawn {
		return nil, fmt.Errorf("%w: cannot cancel event in status %q", ErrEventNotActive, current.Status)
	}

	ok, err := s.repo.UpdateStatusIf(ctx, id, current.Status, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStatusConflict
	}

	current.Status = StatusCancelled
	return current, nil
}

// IncludeParticipant adds a participant to the roster. Adding an id
// already on the roster is a no-op. Rejected unless the event is
// active.
func (s *Service) IncludeParticipant(ctx context.Context, eventID, participantID string) error {
	current, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if current.Status != StatusActive {
		return fmt.Errorf("%w: cannot change roster in status %q", ErrEventNotActive, current.Status)
	}

	exists, err := s.participants.Exists(ctx, participantID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrParticipantUnknown, participantID)
	}

	return s.repo.AddParticipant(ctx, eventID, participantID)
}

// ExcludeParticipant removes a participant from the roster. Tickets
// from earlier draws are untouched.
func (s *Service) ExcludeParticipant(ctx context.Context, eventID, participantID string) error {
	current, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if current.Status != StatusActive {
		return fmt.Errorf("%w: cannot change roster in status %q", ErrEventNotActive, current.Status)
	}

	return s.repo.RemoveParticipant(ctx, eventID, participantID)
}

// History returns the event's draw history, most recent first.
func (s *Service) History(ctx context.Context, eventID string) ([]DrawHistoryEntry, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, eventID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
