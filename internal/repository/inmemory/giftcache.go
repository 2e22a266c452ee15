package inmemory

import (
	"sync"
	"time"

	giftsdomain "secret-santa-go/internal/domain/gifts"
)

// InMemoryGiftSnapshotCache keeps per-participant wish-list snapshots
// with a TTL. Values are cloned on the way in and out so callers can
// never alias cached state.
type InMemoryGiftSnapshotCache struct {
	mu    sync.RWMutex
	items map[string]snapshotItem
}

type snapshotItem struct {
	value     []giftsdomain.GiftItem
	expiresAt time.Time
}

func NewInMemoryGiftSnapshotCache() *InMemoryGiftSnapshotCache {
	return &InMemoryGiftSnapshotCache{
		items: make(map[string]snapshotItem),
	}
}

func (c *InMemoryGiftSnapshotCache) GetByParticipantID(participantID string) ([]giftsdomain.GiftItem, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[participantID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[participantID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, participantID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneGiftItems(item.value), true
}

func (c *InMemoryGiftSnapshotCache) SetByParticipantID(participantID string, items []giftsdomain.GiftItem, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByParticipantID(participantID)
		return
	}

	c.mu.Lock()
	c.items[participantID] = snapshotItem{
		value:     cloneGiftItems(items),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryGiftSnapshotCache) DeleteByParticipantID(participantID string) {
	c.mu.Lock()
	delete(c.items, participantID)
	c.mu.Unlock()
}

func cloneGiftItems(items []giftsdomain.GiftItem) []giftsdomain.GiftItem {
	if items == nil {
		return nil
	}
	cloned := make([]giftsdomain.GiftItem, len(items))
	for i := range items {
		cloned[i] = items[i]
		if items[i].URL != nil {
			url := *items[i].URL
			cloned[i].URL = &url
		}
		if items[i].Notes != nil {
			notes := *items[i].Notes
			cloned[i].Notes = &notes
		}
	}
	return cloned
}
