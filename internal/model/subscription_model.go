package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionModel carries no uniqueness constraint on the pair; counting
// code treats every row as one subscriber.
type SubscriptionModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	ChannelID    string `gorm:"type:uuid;not null;index"`
	SubscriberID string `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
