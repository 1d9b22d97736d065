package model

import (
	"strings"
	"time"

	"vidtube/pkg/password"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserModel struct {
	ID         string `gorm:"type:uuid;primary_key"`
	Username   string `gorm:"uniqueIndex;not null"`
	Email      string `gorm:"uniqueIndex;not null"`
	FullName   string `gorm:"not null"`
	Avatar     string `gorm:"type:varchar(500);not null"`
	CoverImage string `gorm:"type:varchar(500)"`
	Password   string `gorm:"not null"`
	// PlainPassword is never persisted; BeforeSave replaces it with a hash.
	PlainPassword string         `gorm:"-"`
	RefreshToken  *string        `gorm:"type:text"`
	WatchHistory  pq.StringArray `gorm:"type:uuid[];not null;default:'{}'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave runs for both creates and updates. Plaintext only ever lives in
// PlainPassword for the duration of the write.
func (u *UserModel) BeforeSave(tx *gorm.DB) error {
	if u.Username != "" {
		u.Username = strings.ToLower(u.Username)
	}
	if u.PlainPassword == "" {
		return nil
	}
	hashed, err := password.Hash(u.PlainPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.PlainPassword = ""
	return nil
}
