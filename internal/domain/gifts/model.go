package gifts

import "time"

// GiftItem is one entry on a participant's wish list.
type GiftItem struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	ParticipantID string    `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"not null"`
	URL           *string   `gorm:"type:text"`
	Notes         *string   `gorm:"type:text"`
	Priority      int       `gorm:"not null;default:0"`
	Purchased     bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

type AddItemInput struct {
	ParticipantID string
	Name          string
	URL           *string
	Notes         *string
	Priority      int
}

type UpdateItemInput struct {
	ItemID    string
	Name      *string
	URL       *string
	Notes     *string
	Priority  *int
	Purchased *bool
}
