package entity

import "time"

// Capability is an enumerated permission token. Authorization is the set
// of capabilities granted to a user, not a single role.
type Capability string

const (
	CapabilityBrowseProperties Capability = "browse_properties"
	CapabilitySaveFavorites    Capability = "save_favorites"
	CapabilityContactLandlord  Capability = "contact_landlord"
	CapabilityReceiveInquiries Capability = "receive_inquiries"
	CapabilityCreateListing    Capability = "create_listing"
	CapabilityVerifyListing    Capability = "verify_listing"
	CapabilityAdminAccess      Capability = "admin_access"
)

// DefaultCapabilities are granted to every new account.
func DefaultCapabilities() []Capability {
	return []Capability{CapabilityBrowseProperties, CapabilitySaveFavorites}
}

// VerificationLevel reflects how strongly a user's identity has been proven.
type VerificationLevel string

const (
	LevelUnverified       VerificationLevel = "unverified"
	LevelPhoneVerified    VerificationLevel = "phone_verified"
	LevelIdentityVerified VerificationLevel = "identity_verified"
	LevelLandlordVerified VerificationLevel = "landlord_verified"
)

var verificationLevelRank = map[VerificationLevel]int{
	LevelUnverified:       0,
	LevelPhoneVerified:    1,
	LevelIdentityVerified: 2,
	LevelLandlordVerified: 3,
}

// AtLeast reports whether l meets or exceeds min in the level hierarchy.
// Unknown levels rank lowest.
func (l VerificationLevel) AtLeast(min VerificationLevel) bool {
	return verificationLevelRank[l] >= verificationLevelRank[min]
}

type User struct {
	ID                string
	Email             string
	PhoneNumber       string
	FullName          string
	Password          string
	Capabilities      []Capability
	VerificationLevel VerificationLevel
	IsActive          bool
	Address           string
	City              string
	State             string
	LGA               string

	PhoneVerificationCode   string
	PhoneVerificationExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapability reports whether the capability was granted. It ignores
// the active flag; use capability.Authority for authorization decisions.
func (u *User) HasCapability(c Capability) bool {
	for _, granted := range u.Capabilities {
		if granted == c {
			return true
		}
	}
	return false
}

// GrantCapability adds c to the user's set if not already present.
func (u *User) GrantCapability(c Capability) {
	if !u.HasCapability(c) {
		u.Capabilities = append(u.Capabilities, c)
	}
}
