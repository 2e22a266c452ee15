package event

import (
	"context"
	"errors"
	"slices"
	"testing"

	"secret-santa-go/pkg/logger"
)

type fakeEventRepo struct {
	events  map[string]*Event
	rosters map[string][]string
	history map[string][]DrawHistoryEntry
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:  make(map[string]*Event),
		rosters: make(map[string][]string),
		history: make(map[string][]DrawHistoryEntry),
	}
}

func (r *fakeEventRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeEventRepo) CreateEvent(ctx context.Context, created *Event, participantIDs []string) error {
	r.events[created.ID] = created
	r.rosters[created.ID] = slices.Clone(participantIDs)
	return nil
}

func (r *fakeEventRepo) GetEvent(ctx context.Context, id string) (*Event, error) {
	created, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return created, nil
}

func (r *fakeEventRepo) ListEvents(ctx context.Context) ([]Event, error) {
	result := make([]Event, 0, len(r.events))
	for _, created := range r.events {
		result = append(result, *created)
	}
	return result, nil
}

func (r *fakeEventRepo) UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error) {
	created, ok := r.events[id]
	if !ok || created.Status != from {
		return false, nil
	}
	created.Status = to
	return true, nil
}

func (r *fakeEventRepo) ListParticipantIDs(ctx context.Context, eventID string) ([]string, error) {
	return slices.Clone(r.rosters[eventID]), nil
}

func (r *fakeEventRepo) AddParticipant(ctx context.Context, eventID, participantID string) error {
	if slices.Contains(r.rosters[eventID], participantID) {
		return nil
	}
	r.rosters[eventID] = append(r.rosters[eventID], participantID)
	return nil
}

func (r *fakeEventRepo) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	roster := r.rosters[eventID]
	if i := slices.Index(roster, participantID); i >= 0 {
		r.rosters[eventID] = slices.Delete(roster, i, i+1)
	}
	return nil
}

func (r *fakeEventRepo) ListHistory(ctx context.Context, eventID string) ([]DrawHistoryEntry, error) {
	entries := slices.Clone(r.history[eventID])
	slices.Reverse(entries)
	return entries, nil
}

type fakeDirectory struct {
	verified []string
	known    map[string]bool
}

func (d *fakeDirectory) VerifiedIDs(ctx context.Context) ([]string, error) {
	return d.verified, nil
}

func (d *fakeDirectory) Exists(ctx context.Context, id string) (bool, error) {
	return d.known[id], nil
}

func newEventService(repo *fakeEventRepo, dir *fakeDirectory) *Service {
	if dir == nil {
		dir = &fakeDirectory{known: map[string]bool{}}
	}
	return NewService(repo, dir, logger.NewFromEnv())
}

func TestCreateEventDedupesRoster(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newEventService(repo, &fakeDirectory{known: map[string]bool{"a": true, "b": true, "c": true}})

	created, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Name:           "  Xmas 2026 ",
		ParticipantIDs: []string{"a", "b", "a", " ", "c"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != StatusActive {
		t.Fatalf("expected active status, got %q", created.Status)
	}
	if created.Name != "Xmas 2026" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	roster := repo.rosters[created.ID]
	if len(roster) != 3 {
		t.Fatalf("expected deduped roster of 3, got %v", roster)
	}
}

func TestCreateEventAutoPopulatesFromVerified(t *testing.T) {
	repo := newFakeEventRepo()
	dir := &fakeDirectory{verified: []string{"a", "b", "c", "d"}}
	svc := newEventService(repo, dir)

	created, err := svc.CreateEvent(context.Background(), CreateEventInput{Name: "Xmas"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.rosters[created.ID]) != 4 {
		t.Fatalf("expected roster from verified participants, got %v", repo.rosters[created.ID])
	}
}

func TestCreateEventTooFewParticipants(t *testing.T) {
	repo := newFakeEventRepo()
	dir := &fakeDirectory{verified: []string{"only-one"}}
	svc := newEventService(repo, dir)

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{Name: "Xmas"})
	if !errors.Is(err, ErrNotEnoughParticipants) {
		t.Fatalf("expected ErrNotEnoughParticipants, got %v", err)
	}
}

func TestCreateEventUnknownParticipant(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newEventService(repo, &fakeDirectory{known: map[string]bool{"a": true}})

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Name:           "Xmas",
		ParticipantIDs: []string{"a", "ghost"},
	})
	if !errors.Is(err, ErrParticipantUnknown) {
		t.Fatalf("expected ErrParticipantUnknown, got %v", err)
	}
}

func TestCancelEventIsTerminal(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Status: StatusActive}
	svc := newEventService(repo, nil)

	cancelled, err := svc.CancelEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", cancelled.Status)
	}

	_, err = svc.CancelEvent(context.Background(), "ev-1")
	if !errors.Is(err, ErrEventNotActive) {
		t.Fatalf("expected ErrEventNotActive on second cancel, got %v", err)
	}
}

func TestCancelDrawnEventRejected(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Status: StatusDrawn}
	svc := newEventService(repo, nil)

	_, err := svc.CancelEvent(context.Background(), "ev-1")
	if !errors.Is(err, ErrEventNotActive) {
		t.Fatalf("expected ErrEventNotActive, got %v", err)
	}
}

func TestIncludeParticipantIdempotent(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Status: StatusActive}
	repo.rosters["ev-1"] = []string{"a"}
	dir := &fakeDirectory{known: map[string]bool{"a": true, "b": true}}
	svc := newEventService(repo, dir)

	if err := svc.IncludeParticipant(context.Background(), "ev-1", "b"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.IncludeParticipant(context.Background(), "ev-1", "b"); err != nil {
		t.Fatalf("expected idempotent include, got %v", err)
	}
	if got := repo.rosters["ev-1"]; len(got) != 2 {
		t.Fatalf("expected roster [a b], got %v", got)
	}
}

func TestIncludeUnknownParticipant(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Status: StatusActive}
	svc := newEventService(repo, &fakeDirectory{known: map[string]bool{}})

	err := svc.IncludeParticipant(context.Background(), "ev-1", "ghost")
	if !errors.Is(err, ErrParticipantUnknown) {
		t.Fatalf("expected ErrParticipantUnknown, got %v", err)
	}
}

func TestRosterChangesRejectedOnceDrawn(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Status: StatusDrawn}
	repo.rosters["ev-1"] = []string{"a", "b"}
	dir := &fakeDirectory{known: map[string]bool{"c": true}}
	svc := newEventService(repo, dir)

	if err := svc.IncludeParticipant(context.Background(), "ev-1", "c"); !errors.Is(err, ErrEventNotActive) {
		t.Fatalf("expected ErrEventNotActive on include, got %v", err)
	}
	if err := svc.ExcludeParticipant(context.Background(), "ev-1", "a"); !errors.Is(err, ErrEventNotActive) {
		t.Fatalf("expected ErrEventNotActive on exclude, got %v", err)
	}
	if got := repo.rosters["ev-1"]; len(got) != 2 {
		t.Fatalf("expected roster untouched, got %v", got)
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusActive, true},
		{StatusActive, StatusDrawn, true},
		{StatusActive, StatusCancelled, true},
		{StatusDrawn, StatusActive, true},
		{StatusDrawn, StatusCancelled, false},
		{StatusCancelled, StatusActive, false},
		{StatusCancelled, StatusDrawn, false},
		{StatusDrawn, StatusDrawn, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestHistoryMissingEvent(t *testing.T) {
	svc := newEventService(newFakeEventRepo(), nil)

	_, err := svc.History(context.Background(), "missing")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
