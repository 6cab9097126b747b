package entity

import (
	"strings"
	"time"
)

type PropertyType string

const (
	PropertyTypeHouse       PropertyType = "house"
	PropertyTypeApartment   PropertyType = "apartment"
	PropertyTypeLand        PropertyType = "land"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeShop        PropertyType = "shop"
	PropertyTypeOffice      PropertyType = "office"
	PropertyTypeWarehouse   PropertyType = "warehouse"
	PropertyTypeEventCenter PropertyType = "event_center"
	PropertyTypeShortlet    PropertyType = "shortlet"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeLand,
		PropertyTypeCommercial, PropertyTypeShop, PropertyTypeOffice,
		PropertyTypeWarehouse, PropertyTypeEventCenter, PropertyTypeShortlet:
		return true
	}
	return false
}

type ListingType string

const (
	ListingTypeRent     ListingType = "rent"
	ListingTypeSale     ListingType = "sale"
	ListingTypeLease    ListingType = "lease"
	ListingTypeShortlet ListingType = "shortlet"
)

func (t ListingType) Valid() bool {
	switch t {
	case ListingTypeRent, ListingTypeSale, ListingTypeLease, ListingTypeShortlet:
		return true
	}
	return false
}

// VerificationStatus is the listing's position in the admin review lifecycle.
// Only VERIFIED listings are visible to public search.
type VerificationStatus string

const (
	StatusDraft               VerificationStatus = "draft"
	StatusPendingVerification VerificationStatus = "pending_verification"
	StatusVerified            VerificationStatus = "verified"
	StatusRejected            VerificationStatus = "rejected"
)

type VideoProvider string

const (
	VideoProviderYouTube VideoProvider = "youtube"
	VideoProviderVimeo   VideoProvider = "vimeo"
)

// VideoProviderFromURL derives the provider from a video URL host.
// Returns empty string when the host is not a supported provider.
func VideoProviderFromURL(url string) VideoProvider {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		return VideoProviderYouTube
	case strings.Contains(lower, "vimeo.com"):
		return VideoProviderVimeo
	}
	return ""
}

type PropertyImage struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	ImageURL     string    `json:"image_url"`
	IsMain       bool      `json:"is_main"`
	Caption      string    `json:"caption,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PropertyVideo struct {
	VideoURL string        `json:"video_url"`
	Provider VideoProvider `json:"provider"`
}

// OwnershipDocument is a proof-of-ownership reference supplied by the
// owner for admin review. DocumentType is the only required key.
type OwnershipDocument struct {
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number,omitempty"`
	IssuedBy       string `json:"issued_by,omitempty"`
	FileURL        string `json:"file_url,omitempty"`
}

type Property struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	PropertyType PropertyType `json:"property_type"`
	ListingType  ListingType  `json:"listing_type"`

	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	LGA      string `json:"lga"`
	Landmark string `json:"landmark,omitempty"`

	Price        float64  `json:"price"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	Toilets      *int     `json:"toilets,omitempty"`
	SquareMeters *float64 `json:"square_meters,omitempty"`
	PlotSize     string   `json:"plot_size,omitempty"`
	Features     []string `json:"features"`

	MainImage string          `json:"main_image,omitempty"`
	Images    []PropertyImage `json:"images,omitempty"`
	Video     *PropertyVideo  `json:"video,omitempty"`

	OwnershipDocuments []OwnershipDocument `json:"ownership_documents"`
	VerificationStatus VerificationStatus  `json:"verification_status"`
	VerificationNotes  string              `json:"verification_notes,omitempty"`
	VerifiedBy         *string             `json:"verified_by,omitempty"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty"`

	ViewCount int `json:"view_count"`

	// Version backs optimistic concurrency on every write.
	Version int `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPubliclyVisible reports whether the listing may appear in public search.
func (p *Property) IsPubliclyVisible() bool {
	return p.VerificationStatus == StatusVerified
}

// ResetVerification returns the listing to admin review and clears the
// previous verifier sign-off. Called whenever ownership documents change,
// regardless of current status.
func (p *Property) ResetVerification() {
	p.VerificationStatus = StatusPendingVerification
	p.VerificationNotes = ""
	p.VerifiedBy = nil
	p.VerifiedAt = nil
}
