package usecase

import (
	"context"
	"testing"
	"time"

	"homefind/internal/capability"
	"homefind/internal/entity"
	"homefind/pkg/jwt"
	"homefind/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase(userRepo *MockUserRepository) AuthUseCase {
	return NewAuthUseCase(userRepo, jwt.NewService("test-secret-key"), capability.NewAuthority(), logger.New())
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, entity.ErrNotFound)
	userRepo.On("GetByPhoneNumber", mock.Anything, "+2348012345678").Return(nil, entity.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		u.ID = "user-1"
		return u.Email == "ada@example.com" && u.IsActive
	})).Return(nil)

	user, token, err := uc.Register(context.Background(), RegisterInput{
		Email:       "Ada@Example.com",
		PhoneNumber: "+2348012345678",
		FullName:    "Ada Obi",
		Password:    "correct-horse",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.LevelUnverified, user.VerificationLevel)
	assert.ElementsMatch(t, entity.DefaultCapabilities(), user.Capabilities)
	assert.False(t, user.HasCapability(entity.CapabilityCreateListing))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&entity.User{ID: "existing"}, nil)

	user, token, err := uc.Register(context.Background(), RegisterInput{
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		FullName:    "Ada Obi",
		Password:    "correct-horse",
	})

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, entity.ErrValidation)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShortPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	user, _, err := uc.Register(context.Background(), RegisterInput{
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		FullName:    "Ada Obi",
		Password:    "short",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	stored := &entity.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Password: hashedPassword(t, "correct-horse"),
		IsActive: true,
	}
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	user, token, err := uc.Login(context.Background(), "ada@example.com", "correct-horse")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	stored := &entity.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Password: hashedPassword(t, "correct-horse"),
		IsActive: true,
	}
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	user, token, err := uc.Login(context.Background(), "ada@example.com", "wrong")

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestLogin_InactiveAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	stored := &entity.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Password: hashedPassword(t, "correct-horse"),
		IsActive: false,
	}
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	_, _, err := uc.Login(context.Background(), "ada@example.com", "correct-horse")

	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestAdminLogin_RegularAccountDenied(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	stored := &entity.User{
		ID:           "user-1",
		Email:        "ada@example.com",
		Password:     hashedPassword(t, "correct-horse"),
		IsActive:     true,
		Capabilities: entity.DefaultCapabilities(),
	}
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	user, token, err := uc.AdminLogin(context.Background(), "ada@example.com", "correct-horse")

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestAdminLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	stored := &entity.User{
		ID:       "admin-1",
		Email:    "admin@example.com",
		Password: hashedPassword(t, "correct-horse"),
		IsActive: true,
		Capabilities: []entity.Capability{
			entity.CapabilityAdminAccess,
			entity.CapabilityVerifyListing,
		},
	}
	userRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(stored, nil)

	user, token, err := uc.AdminLogin(context.Background(), "admin@example.com", "correct-horse")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin-1", user.ID)
}

func TestRequestPhoneVerification_Cooldown(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	// Issued just now, so still inside the sixty second window.
	expiry := time.Now().UTC().Add(phoneCodeTTL)
	stored := &entity.User{
		ID:                      "user-1",
		IsActive:                true,
		VerificationLevel:       entity.LevelUnverified,
		PhoneVerificationCode:   "123456",
		PhoneVerificationExpiry: &expiry,
	}
	userRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

	err := uc.RequestPhoneVerification(context.Background(), "user-1")

	assert.ErrorIs(t, err, entity.ErrValidation)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerifyPhone_GrantsLandlordCapabilities(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	expiry := time.Now().UTC().Add(5 * time.Minute)
	stored := &entity.User{
		ID:                      "user-1",
		IsActive:                true,
		Capabilities:            entity.DefaultCapabilities(),
		VerificationLevel:       entity.LevelUnverified,
		PhoneVerificationCode:   "123456",
		PhoneVerificationExpiry: &expiry,
	}
	userRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := uc.VerifyPhone(context.Background(), "user-1", "123456")

	assert.NoError(t, err)
	assert.Equal(t, entity.LevelPhoneVerified, user.VerificationLevel)
	assert.True(t, user.HasCapability(entity.CapabilityCreateListing))
	assert.True(t, user.HasCapability(entity.CapabilityContactLandlord))
	assert.Empty(t, user.PhoneVerificationCode)
	assert.Nil(t, user.PhoneVerificationExpiry)
}

func TestVerifyPhone_ExpiredCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	expiry := time.Now().UTC().Add(-time.Minute)
	stored := &entity.User{
		ID:                      "user-1",
		IsActive:                true,
		PhoneVerificationCode:   "123456",
		PhoneVerificationExpiry: &expiry,
	}
	userRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

	user, err := uc.VerifyPhone(context.Background(), "user-1", "123456")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestVerifyPhone_WrongCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo)

	expiry := time.Now().UTC().Add(5 * time.Minute)
	stored := &entity.User{
		ID:                      "user-1",
		IsActive:                true,
		PhoneVerificationCode:   "123456",
		PhoneVerificationExpiry: &expiry,
	}
	userRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

	user, err := uc.VerifyPhone(context.Background(), "user-1", "654321")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrValidation)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
