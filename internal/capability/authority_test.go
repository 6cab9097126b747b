package capability

import (
	"testing"

	"homefind/internal/entity"

	"github.com/stretchr/testify/assert"
)

func activeUser(caps ...entity.Capability) *entity.User {
	return &entity.User{
		ID:           "user-1",
		IsActive:     true,
		Capabilities: caps,
	}
}

func TestAuthorize_Granted(t *testing.T) {
	authority := NewAuthority()
	user := activeUser(entity.CapabilityCreateListing, entity.CapabilityBrowseProperties)

	assert.True(t, authority.Authorize(user, entity.CapabilityCreateListing))
}

func TestAuthorize_MissingCapability(t *testing.T) {
	authority := NewAuthority()
	user := activeUser(entity.CapabilityBrowseProperties)

	assert.False(t, authority.Authorize(user, entity.CapabilityVerifyListing))
}

func TestAuthorize_NilUser(t *testing.T) {
	authority := NewAuthority()

	assert.False(t, authority.Authorize(nil, entity.CapabilityBrowseProperties))
}

func TestAuthorize_InactiveUserAlwaysDenied(t *testing.T) {
	authority := NewAuthority()
	user := activeUser(entity.CapabilityAdminAccess, entity.CapabilityVerifyListing)
	user.IsActive = false

	assert.False(t, authority.Authorize(user, entity.CapabilityAdminAccess))
}

func TestAuthorize_CompositeGate(t *testing.T) {
	authority := NewAuthority()
	user := activeUser(entity.CapabilityVerifyListing)

	// Requires the full set, not just one of them
	assert.False(t, authority.Authorize(user, entity.CapabilityVerifyListing, entity.CapabilityAdminAccess))

	user.GrantCapability(entity.CapabilityAdminAccess)
	assert.True(t, authority.Authorize(user, entity.CapabilityVerifyListing, entity.CapabilityAdminAccess))
}

func TestAuthorize_NoRequirements(t *testing.T) {
	authority := NewAuthority()

	// An empty required set still demands an active, authenticated user
	assert.True(t, authority.Authorize(activeUser()))
	assert.False(t, authority.Authorize(nil))
}
