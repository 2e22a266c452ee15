package gifts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultSnapshotTTL = time.Minute

type Service struct {
	repo        Repository
	cache       SnapshotCache
	snapshotTTL time.Duration
}

func NewService(repo Repository, cache SnapshotCache, snapshotTTL time.Duration) *Service {
	if cache == nil {
		cache = noopSnapshotCache{}
	}
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}
	return &Service{
		repo:        repo,
		cache:       cache,
		snapshotTTL: snapshotTTL,
	}
}

func (s *Service) AddItem(ctx context.Context, input AddItemInput) (*GiftItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.ParticipantID == "" {
		return nil, fmt.Errorf("participant id is required")
	}

	item := GiftItem{
		ID:            uuid.NewString(),
		ParticipantID: input.ParticipantID,
		Name:          input.Name,
		URL:           input.URL,
		Notes:         input.Notes,
		Priority:      input.Priority,
	}
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	s.cache.DeleteByParticipantID(item.ParticipantID)
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*GiftItem, error) {
	item, err := s.repo.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		item.Name = name
	}
	if input.URL != nil {
		item.URL = input.URL
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}
	if input.Priority != nil {
		item.Priority = *input.Priority
	}
	if input.Purchased != nil {
		item.Purchased = *input.Purchased
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.cache.DeleteByParticipantID(item.ParticipantID)
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.cache.DeleteByParticipantID(item.ParticipantID)
	return nil
}

func (s *Service) ListForParticipant(ctx context.Context, participantID string) ([]GiftItem, error) {
	return s.repo.ListByParticipant(ctx, participantID)
}

// Snapshot returns each participant's current wish list keyed by
// participant id, sorted by priority. Served from cache within the TTL.
func (s *Service) Snapshot(ctx context.Context, participantIDs []string) (map[string][]GiftItem, error) {
	result := make(map[string][]GiftItem, len(participantIDs))

	missing := make([]string, 0, len(participantIDs))
	for _, id := range participantIDs {
		if items, ok := s.cache.GetByParticipantID(id); ok {
			result[id] = items
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		items, err := s.repo.ListByParticipants(ctx, missing)
		if err != nil {
			return nil, err
		}

		fetched := make(map[string][]GiftItem, len(missing))
		for _, item := range items {
			fetched[item.ParticipantID] = append(fetched[item.ParticipantID], item)
		}
		for _, id := range missing {
			list := fetched[id]
			sortByPriority(list)
			result[id] = list
			s.cache.SetByParticipantID(id, list, s.snapshotTTL)
		}
	}

	return result, nil
}

func sortByPriority(items []GiftItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority > items[j].Priority
	})
}
