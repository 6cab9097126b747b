package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	OwnerID     string `gorm:"type:uuid;not null;index"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null"`
	PropertyType string `gorm:"type:varchar(20);not null;index"`
	ListingType  string `gorm:"type:varchar(20);not null;index"`

	Address  string `gorm:"type:varchar(255);not null"`
	City     string `gorm:"type:varchar(100);not null;index"`
	State    string `gorm:"type:varchar(50);not null;index"`
	LGA      string `gorm:"type:varchar(100);not null"`
	Landmark string `gorm:"type:varchar(100)"`

	Price        float64 `gorm:"not null;index"`
	Bedrooms     *int
	Bathrooms    *int
	Toilets      *int
	SquareMeters *float64
	PlotSize     string `gorm:"type:varchar(50)"`

	// JSON-encoded arrays, marshalled in the persistent mappers
	Features           string `gorm:"type:jsonb;default:'[]'"`
	OwnershipDocuments string `gorm:"type:jsonb;default:'[]'"`

	MainImage     string `gorm:"type:varchar(255)"`
	VideoURL      string `gorm:"type:varchar(500)"`
	VideoProvider string `gorm:"type:varchar(20)"`

	VerificationStatus string `gorm:"type:varchar(30);not null;default:'pending_verification';index"`
	VerificationNotes  *string `gorm:"type:text"`
	VerifiedBy         *string `gorm:"type:uuid"`
	VerifiedAt         *time.Time

	ViewCount int `gorm:"not null;default:0"`
	Version   int `gorm:"not null;default:1"`

	Images []PropertyImageModel `gorm:"foreignKey:PropertyID"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PropertyModel) TableName() string {
	return "properties"
}

func (p *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PropertyImageModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	PropertyID   string `gorm:"type:uuid;not null;index"`
	ImageURL     string `gorm:"type:varchar(255);not null"`
	IsMain       bool   `gorm:"default:false"`
	Caption      string `gorm:"type:varchar(100)"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PropertyImageModel) TableName() string {
	return "property_images"
}

func (pi *PropertyImageModel) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
