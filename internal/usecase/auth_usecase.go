package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"homefind/internal/capability"
	"homefind/internal/entity"
	"homefind/internal/repo/persistent"
	"homefind/pkg/jwt"
	"homefind/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	phoneCodeTTL      = 10 * time.Minute
	phoneCodeCooldown = 60 * time.Second
)

type RegisterInput struct {
	Email       string
	PhoneNumber string
	FullName    string
	Password    string
	Address     string
	City        string
	State       string
	LGA         string
}

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	AdminLogin(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	RequestPhoneVerification(ctx context.Context, userID string) error
	VerifyPhone(ctx context.Context, userID, code string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	authority  *capability.Authority
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, authority *capability.Authority, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		authority:  authority,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, string, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: email already registered", entity.ErrValidation)
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, "", err
	}
	if _, err := uc.userRepo.GetByPhoneNumber(ctx, input.PhoneNumber); err == nil {
		return nil, "", fmt.Errorf("%w: phone number already registered", entity.ErrValidation)
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:             email,
		PhoneNumber:       input.PhoneNumber,
		FullName:          input.FullName,
		Password:          string(hash),
		Capabilities:      entity.DefaultCapabilities(),
		VerificationLevel: entity.LevelUnverified,
		IsActive:          true,
		Address:           input.Address,
		City:              input.City,
		State:             input.State,
		LGA:               input.LGA,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("user %s registered", user.ID)
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// AdminLogin is Login with an extra gate: the account must hold
// admin_access. Regular accounts get the same unauthorized error as a
// wrong password would, so the endpoint does not leak which accounts
// are admins.
func (uc *authUseCase) AdminLogin(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if !uc.authority.Authorize(user, entity.CapabilityAdminAccess) {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// RequestPhoneVerification issues a fresh 6-digit code valid for ten
// minutes. A new code cannot be requested within sixty seconds of the
// previous one. Delivery is out of scope here; the code is handed to
// the SMS pipeline via the log in development.
func (uc *authUseCase) RequestPhoneVerification(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.VerificationLevel.AtLeast(entity.LevelPhoneVerified) {
		return fmt.Errorf("%w: phone number already verified", entity.ErrValidation)
	}

	if user.PhoneVerificationExpiry != nil {
		issuedAt := user.PhoneVerificationExpiry.Add(-phoneCodeTTL)
		if time.Since(issuedAt) < phoneCodeCooldown {
			return fmt.Errorf("%w: wait before requesting another code", entity.ErrValidation)
		}
	}

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	expiry := time.Now().UTC().Add(phoneCodeTTL)
	user.PhoneVerificationCode = code
	user.PhoneVerificationExpiry = &expiry

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	uc.logger.Info("phone verification code issued for user %s", userID)
	return nil
}

func (uc *authUseCase) VerifyPhone(ctx context.Context, userID, code string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.PhoneVerificationCode == "" || user.PhoneVerificationExpiry == nil {
		return nil, fmt.Errorf("%w: no verification code requested", entity.ErrValidation)
	}
	if time.Now().UTC().After(*user.PhoneVerificationExpiry) {
		return nil, fmt.Errorf("%w: verification code expired", entity.ErrValidation)
	}
	if user.PhoneVerificationCode != code {
		return nil, fmt.Errorf("%w: incorrect verification code", entity.ErrValidation)
	}

	user.PhoneVerificationCode = ""
	user.PhoneVerificationExpiry = nil
	if !user.VerificationLevel.AtLeast(entity.LevelPhoneVerified) {
		user.VerificationLevel = entity.LevelPhoneVerified
	}
	user.GrantCapability(entity.CapabilityContactLandlord)
	user.GrantCapability(entity.CapabilityCreateListing)
	user.GrantCapability(entity.CapabilityReceiveInquiries)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user %s verified phone number", userID)
	return user, nil
}

func (uc *authUseCase) authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is not active", entity.ErrUnauthorized)
	}
	return user, nil
}

func validateRegisterInput(input RegisterInput) error {
	switch {
	case !strings.Contains(input.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", entity.ErrValidation)
	case strings.TrimSpace(input.PhoneNumber) == "":
		return fmt.Errorf("%w: phone_number is required", entity.ErrValidation)
	case strings.TrimSpace(input.FullName) == "":
		return fmt.Errorf("%w: full_name is required", entity.ErrValidation)
	case len(input.Password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters", entity.ErrValidation)
	}
	return nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
