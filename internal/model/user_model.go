package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PhoneNumber  string `gorm:"type:varchar(20);uniqueIndex;not null"`
	FullName     string `gorm:"type:varchar(100);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	// JSON-encoded capability array
	Capabilities      string `gorm:"type:jsonb;default:'[]'"`
	VerificationLevel string `gorm:"type:varchar(20);not null;default:'unverified'"`

	IsActive bool `gorm:"default:true"`

	Address string `gorm:"type:text"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(50)"`
	LGA     string `gorm:"type:varchar(100)"`

	PhoneVerificationCode   string `gorm:"type:varchar(6)"`
	PhoneVerificationExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
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
