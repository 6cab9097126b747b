package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVideoProviderFromURL(t *testing.T) {
	assert.Equal(t, VideoProviderYouTube, VideoProviderFromURL("https://www.youtube.com/watch?v=abc"))
	assert.Equal(t, VideoProviderYouTube, VideoProviderFromURL("https://youtu.be/abc"))
	assert.Equal(t, VideoProviderVimeo, VideoProviderFromURL("https://vimeo.com/12345"))
	assert.Equal(t, VideoProvider(""), VideoProviderFromURL("https://dailymotion.com/video/abc"))
}

func TestIsPubliclyVisible(t *testing.T) {
	p := &Property{VerificationStatus: StatusPendingVerification}
	assert.False(t, p.IsPubliclyVisible())

	p.VerificationStatus = StatusRejected
	assert.False(t, p.IsPubliclyVisible())

	p.VerificationStatus = StatusVerified
	assert.True(t, p.IsPubliclyVisible())
}

func TestResetVerification(t *testing.T) {
	adminID := "admin-1"
	now := time.Now()
	p := &Property{
		VerificationStatus: StatusRejected,
		VerificationNotes:  "document expired",
		VerifiedBy:         &adminID,
		VerifiedAt:         &now,
	}

	p.ResetVerification()

	assert.Equal(t, StatusPendingVerification, p.VerificationStatus)
	assert.Empty(t, p.VerificationNotes)
	assert.Nil(t, p.VerifiedBy)
	assert.Nil(t, p.VerifiedAt)
}

func TestPropertyTypeValid(t *testing.T) {
	assert.True(t, PropertyTypeApartment.Valid())
	assert.True(t, PropertyTypeEventCenter.Valid())
	assert.False(t, PropertyType("castle").Valid())
}

func TestListingTypeValid(t *testing.T) {
	assert.True(t, ListingTypeRent.Valid())
	assert.False(t, ListingType("barter").Valid())
}

func TestVerificationLevelAtLeast(t *testing.T) {
	assert.True(t, LevelLandlordVerified.AtLeast(LevelPhoneVerified))
	assert.True(t, LevelPhoneVerified.AtLeast(LevelPhoneVerified))
	assert.False(t, LevelUnverified.AtLeast(LevelPhoneVerified))
	assert.False(t, VerificationLevel("unknown").AtLeast(LevelPhoneVerified))
}

func TestGrantCapabilityIdempotent(t *testing.T) {
	u := &User{Capabilities: DefaultCapabilities()}

	u.GrantCapability(CapabilityCreateListing)
	u.GrantCapability(CapabilityCreateListing)

	count := 0
	for _, c := range u.Capabilities {
		if c == CapabilityCreateListing {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
