package draw

import "time"

// Ticket is one directed giver-to-receiver pairing for an event. The
// code is the human-shareable handle; the mapping itself is never
// returned by the API.
type Ticket struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	EventID    string    `gorm:"type:uuid;not null;index"`
	GiverID    string    `gorm:"type:uuid;not null"`
	ReceiverID string    `gorm:"type:uuid;not null"`
	Code       string    `gorm:"size:8;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Result is what a completed draw exposes to callers: the new event
// status and how many tickets were issued. Never the pairing.
type Result struct {
	EventID     string `json:"event_id"`
	Status      string `json:"status"`
	TicketCount int    `json:"ticket_count"`
}

// NotificationOutcome captures one per-giver dispatch attempt after a
// draw commits.
type NotificationOutcome struct {
	ParticipantID string
	Err           error
}
