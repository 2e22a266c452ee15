package draw

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"secret-santa-go/internal/domain/event"
	"secret-santa-go/internal/domain/gifts"
	"secret-santa-go/internal/domain/participant"
	"secret-santa-go/pkg/logger"
)

const (
	ticketCodeLength   = 8
	ticketCodeAttempts = 10
)

// ParticipantStore is the slice of the participant domain the engine
// reads.
type ParticipantStore interface {
	VerifiedByIDs(ctx context.Context, ids []string) ([]participant.Participant, error)
}

// GiftLists supplies wish-list snapshots for notification bodies.
type GiftLists interface {
	Snapshot(ctx context.Context, participantIDs []string) (map[string][]gifts.GiftItem, error)
}

// Notifier delivers draw results and undo notices. Failures are
// collected and logged per recipient, never folded back into the draw.
type Notifier interface {
	SendDrawResult(ctx context.Context, giver, receiver participant.Participant, wishlist []gifts.GiftItem) error
	SendUndoNotice(ctx context.Context, affected participant.Participant) error
}

// Metrics receives draw and notification outcomes. The zero
// implementation drops everything.
type Metrics interface {
	DrawCompleted(ticketCount int)
	DrawFailed()
	NotificationSent(kind string, err error)
}

type noopMetrics struct{}

func (noopMetrics) DrawCompleted(int)              {}
func (noopMetrics) DrawFailed()                    {}
func (noopMetrics) NotificationSent(string, error) {}

// EngineOptions tune randomness; the zero value uses the process-wide
// PRNG and the default retry bound.
type EngineOptions struct {
	Source          Source
	ShuffleAttempts int
}

type Engine struct {
	repo         Repository
	events       EventStore
	participants ParticipantStore
	gifts        GiftLists
	notifier     Notifier
	metrics      Metrics
	src          Source
	attempts     int
	log          logger.Logger
}

type systemSource struct{}

func (systemSource) IntN(n int) int {
	return mrand.IntN(n)
}

func NewEngine(repo Repository, events EventStore, participants ParticipantStore, giftLists GiftLists, notifier Notifier, metrics Metrics, opts EngineOptions, log logger.Logger) *Engine {
	src := opts.Source
	if src == nil {
		src = systemSource{}
	}
	attempts := opts.ShuffleAttempts
	if attempts <= 0 {
		attempts = DefaultShuffleAttempts
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine{
		repo:         repo,
		events:       events,
		participants: participants,
		gifts:        giftLists,
		notifier:     notifier,
		metrics:      metrics,
		src:          src,
		attempts:     attempts,
		log:          log,
	}
}

// Draw pairs every verified participant of an active event with a
// distinct recipient, persists one ticket per pairing, appends a
// history entry and flips the event to drawn, all in one transaction
// guarded by a compare-and-swap on the status. Notifications go out
// after the commit and cannot fail the draw. The returned result
// carries only the ticket count, never the mapping.
func (e *Engine) Draw(ctx context.Context, eventID string) (*Result, error) {
	current, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	switch current.Status {
	case event.StatusActive:
	case event.StatusCancelled:
		e.metrics.DrawFailed()
		return nil, event.ErrEventCancelled
	case event.StatusDrawn:
		e.metrics.DrawFailed()
		return nil, event.ErrAlreadyDrawn
	default:
		e.metrics.DrawFailed()
		return nil, fmt.Errorf("%w: status %q", event.ErrEventNotActive, current.Status)
	}

	givers, err := e.verifiedRoster(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(givers) < 2 {
		e.metrics.DrawFailed()
		return nil, ErrTooFewParticipants
	}
	if len(givers)%2 != 0 {
		e.metrics.DrawFailed()
		return nil, ErrOddParticipants
	}

	giverIDs := make([]string, len(givers))
	byID := make(map[string]participant.Participant, len(givers))
	for i, giver := range givers {
		giverIDs[i] = giver.ID
		byID[giver.ID] = giver
	}

	receiverIDs := Derange(giverIDs, e.src, e.attempts)

	tickets := make([]Ticket, len(givers))
	ticketIDs := make([]string, len(givers))
	for i := range givers {
		code, err := e.uniqueTicketCode(ctx)
		if err != nil {
			return nil, err
		}
		tickets[i] = Ticket{
			ID:         uuid.NewString(),
			EventID:    eventID,
			GiverID:    giverIDs[i],
			ReceiverID: receiverIDs[i],
			Code:       code,
		}
		ticketIDs[i] = tickets[i].ID
	}

	entry := event.DrawHistoryEntry{
		ID:      uuid.NewString(),
		EventID: eventID,
		DrawnAt: time.Now().UTC(),
	}
	if err := entry.SetTicketIDs(ticketIDs); err != nil {
		return nil, err
	}

	err = e.repo.Transaction(ctx, func(tx Repository) error {
		flipped, err := tx.UpdateEventStatusIf(ctx, eventID, event.StatusActive, event.StatusDrawn)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("%w: event %s left active state", event.ErrStatusConflict, eventID)
		}
		if err := tx.CreateTickets(ctx, tickets); err != nil {
			return err
		}
		return tx.AppendHistoryEntry(ctx, &entry)
	})
	if err != nil {
		e.metrics.DrawFailed()
		return nil, err
	}

	e.metrics.DrawCompleted(len(tickets))
	e.log.Info("draw: committed", "event_id", eventID, "tickets", len(tickets))

	e.dispatchDrawResults(ctx, tickets, byID)

	return &Result{
		EventID:     eventID,
		Status:      event.StatusDrawn,
		TicketCount: len(tickets),
	}, nil
}

// UndoLastDraw removes the most recent history entry and its tickets
// and reverts the event to active. Affected participants get a
// best-effort notice.
func (e *Engine) UndoLastDraw(ctx context.Context, eventID string) (*event.Event, error) {
	current, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	switch current.Status {
	case event.StatusDrawn:
	case event.StatusCancelled:
		return nil, fmt.Errorf("%w: cannot undo a cancelled event", event.ErrEventNotActive)
	default:
		return nil, event.ErrNoDrawHistory
	}

	entry, err := e.repo.LatestHistoryEntry(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, event.ErrNoDrawHistory
	}

	ticketIDs, err := entry.TicketIDList()
	if err != nil {
		return nil, err
	}

	tickets, err := e.repo.ListTicketsByIDs(ctx, ticketIDs)
	if err != nil {
		return nil, err
	}

	err = e.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteHistoryEntry(ctx, entry.ID); err != nil {
			return err
		}
		if err := tx.DeleteTicketsByIDs(ctx, ticketIDs); err != nil {
			return err
		}
		reverted, err := tx.UpdateEventStatusIf(ctx, eventID, event.StatusDrawn, event.StatusActive)
		if err != nil {
			return err
		}
		if !reverted {
			return fmt.Errorf("%w: event %s left drawn state", event.ErrStatusConflict, eventID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("draw: undone", "event_id", eventID, "tickets_removed", len(ticketIDs))

	e.dispatchUndoNotices(ctx, tickets)

	current.Status = event.StatusActive
	return current, nil
}

// verifiedRoster resolves the event roster to verified participants,
// preserving roster order.
func (e *Engine) verifiedRoster(ctx context.Context, eventID string) ([]participant.Participant, error) {
	rosterIDs, err := e.events.ListParticipantIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	verified, err := e.participants.VerifiedByIDs(ctx, rosterIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]participant.Participant, len(verified))
	for _, p := range verified {
		byID[p.ID] = p
	}

	roster := make([]participant.Participant, 0, len(verified))
	for _, id := range rosterIDs {
		if p, ok := byID[id]; ok {
			roster = append(roster, p)
		}
	}
	return roster, nil
}

func (e *Engine) dispatchDrawResults(ctx context.Context, tickets []Ticket, byID map[string]participant.Participant) []NotificationOutcome {
	receiverIDs := make([]string, len(tickets))
	for i, ticket := range tickets {
		receiverIDs[i] = ticket.ReceiverID
	}

	snapshot, err := e.gifts.Snapshot(ctx, receiverIDs)
	if err != nil {
		e.log.InternalError("draw: wish-list snapshot failed, notifying without lists", err)
		snapshot = map[string][]gifts.GiftItem{}
	}

	outcomes := make([]NotificationOutcome, 0, len(tickets))
	for _, ticket := range tickets {
		giver := byID[ticket.GiverID]
		receiver := byID[ticket.ReceiverID]
		sendErr := e.notifier.SendDrawResult(ctx, giver, receiver, snapshot[ticket.ReceiverID])
		e.metrics.NotificationSent("draw_result", sendErr)
		if sendErr != nil {
			e.log.InternalError("draw: notification dispatch failed", sendErr, "giver_id", giver.ID)
		}
		outcomes = append(outcomes, NotificationOutcome{ParticipantID: giver.ID, Err: sendErr})
	}
	return outcomes
}

func (e *Engine) dispatchUndoNotices(ctx context.Context, tickets []Ticket) {
	affectedIDs := make([]string, 0, len(tickets))
	seen := make(map[string]struct{}, len(tickets))
	for _, ticket := range tickets {
		for _, id := range []string{ticket.GiverID, ticket.ReceiverID} {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			affectedIDs = append(affectedIDs, id)
		}
	}

	affected, err := e.participants.VerifiedByIDs(ctx, affectedIDs)
	if err != nil {
		e.log.InternalError("draw: resolving affected participants for undo notices failed", err)
		return
	}

	for _, p := range affected {
		sendErr := e.notifier.SendUndoNotice(ctx, p)
		e.metrics.NotificationSent("undo_notice", sendErr)
		if sendErr != nil {
			e.log.InternalError("draw: undo notice dispatch failed", sendErr, "participant_id", p.ID)
		}
	}
}

func (e *Engine) uniqueTicketCode(ctx context.Context) (string, error) {
	for i := 0; i < ticketCodeAttempts; i++ {
		code, err := generateTicketCode(ticketCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := e.repo.IsTicketCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func generateTicketCode(length int) (string, error) {
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
