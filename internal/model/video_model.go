package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	OwnerID     string `gorm:"type:uuid;not null;index"`
	Title       string `gorm:"not null"`
	Description string
	VideoFile   string  `gorm:"type:varchar(500);not null"`
	Thumbnail   string  `gorm:"type:varchar(500)"`
	Duration    float64 `gorm:"not null;default:0"`
	Views       int64   `gorm:"not null;default:0"`
	IsPublished bool    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
