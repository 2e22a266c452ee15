package participant

import (
	"strings"
	"time"
)

// Participant is a registrant whose email (or guardian email, for
// children) has been confirmed. Only verified participants take part
// in a draw.
type Participant struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	FirstName     string    `gorm:"not null"`
	LastName      string    `gorm:"not null"`
	Email         string    `gorm:"not null;uniqueIndex"`
	GuardianEmail *string   `gorm:"type:text"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// PendingParticipant is a registration awaiting code verification.
type PendingParticipant struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	FirstName     string    `gorm:"not null"`
	LastName      string    `gorm:"not null"`
	Email         string    `gorm:"not null;uniqueIndex"`
	GuardianEmail *string   `gorm:"type:text"`
	Code          string    `gorm:"size:6;not null"`
	CodeExpiresAt time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (p Participant) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NotifyEmail returns the address notifications go to: the guardian
// address when one is set, the participant's own otherwise.
func (p Participant) NotifyEmail() string {
	if p.GuardianEmail != nil && *p.GuardianEmail != "" {
		return *p.GuardianEmail
	}
	return p.Email
}

func (p PendingParticipant) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p PendingParticipant) NotifyEmail() string {
	if p.GuardianEmail != nil && *p.GuardianEmail != "" {
		return *p.GuardianEmail
	}
	return p.Email
}
