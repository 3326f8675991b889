package entity

import (
	"time"

	"github.com/google/uuid"
)

// BroadcastAudience selects who a broadcast targets
type BroadcastAudience string

const (
	BroadcastAudienceAll      BroadcastAudience = "all"
	BroadcastAudienceDoctors  BroadcastAudience = "doctors"
	BroadcastAudiencePatients BroadcastAudience = "patients"
)

// Broadcast is a message sent to a group of clinic users. Persisted for the
// archive and published on the messaging channel at creation time.
type Broadcast struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string            `gorm:"type:varchar(200);not null" json:"title"`
	Body      string            `gorm:"type:text;not null" json:"body"`
	Audience  BroadcastAudience `gorm:"type:varchar(20);not null;default:'all'" json:"audience"`
	SentBy    *uuid.UUID        `gorm:"type:uuid" json:"sent_by,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Broadcast) TableName() string {
	return "broadcasts"
}

// ValidBroadcastAudience reports whether a is one of the enumerated values.
func ValidBroadcastAudience(a BroadcastAudience) bool {
	switch a {
	case BroadcastAudienceAll, BroadcastAudienceDoctors, BroadcastAudiencePatients:
		return true
	}
	return false
}
