package event

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Event statuses. Draft is reserved; events are created active.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusDrawn     = "drawn"
	StatusCancelled = "cancelled"
)

type Event struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Location  string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// EventParticipant is one roster entry. Position preserves insertion
// order; the draw iterates the roster in this order.
type EventParticipant struct {
	EventID       string    `gorm:"type:uuid;primaryKey"`
	ParticipantID string    `gorm:"type:uuid;primaryKey"`
	Position      int       `gorm:"not null"`
	AddedAt       time.Time `gorm:"autoCreateTime"`
}

// DrawHistoryEntry records one completed draw. Append-only; only the
// undo operation removes an entry, and only the most recent one.
type DrawHistoryEntry struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	EventID   string         `gorm:"type:uuid;not null;index"`
	TicketIDs datatypes.JSON `gorm:"not null"`
	DrawnAt   time.Time      `gorm:"not null"`
}

func (e *DrawHistoryEntry) TicketIDList() ([]string, error) {
	if len(e.TicketIDs) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(e.TicketIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (e *DrawHistoryEntry) SetTicketIDs(ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	e.TicketIDs = datatypes.JSON(raw)
	return nil
}

// CanTransition reports whether the lifecycle permits moving an event
// from one status to another. Undo (drawn to active) is the single
// reverse edge.
func CanTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusActive || to == StatusCancelled
	case StatusActive:
		return to == StatusDrawn || to == StatusCancelled
	case StatusDrawn:
		return to == StatusActive
	default:
		return false
	}
}
