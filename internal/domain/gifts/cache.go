package gifts

import "time"

// SnapshotCache holds short-lived per-participant wish-list snapshots
// used when composing draw notifications.
type SnapshotCache interface {
	GetByParticipantID(participantID string) ([]GiftItem, bool)
	SetByParticipantID(participantID string, items []GiftItem, ttl time.Duration)
	DeleteByParticipantID(participantID string)
}

type noopSnapshotCache struct{}

func (noopSnapshotCache) GetByParticipantID(string) ([]GiftItem, bool) {
	return nil, false
}

func (noopSnapshotCache) SetByParticipantID(string, []GiftItem, time.Duration) {}

func (noopSnapshotCache) DeleteByParticipantID(string) {}
