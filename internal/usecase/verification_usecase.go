package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homefind/internal/capability"
	"homefind/internal/entity"
	"homefind/internal/repo/persistent"
	"homefind/pkg/logger"
)

// ResultPublisher delivers review outcomes to the notification queue.
// Satisfied by pkg/queue.RabbitMQClient.
type ResultPublisher interface {
	PublishVerificationResult(task map[string]interface{}) error
}

type VerificationUseCase interface {
	Review(ctx context.Context, adminID, listingID string, approve bool, notes string) (*entity.Property, error)
	ListPending(ctx context.Context, adminID string, limit, offset int) ([]*entity.Property, error)
}

type verificationUseCase struct {
	propertyRepo persistent.PropertyRepository
	userRepo     persistent.UserRepository
	authority    *capability.Authority
	publisher    ResultPublisher
	cache        ListingCache
	logger       *logger.Logger
}

func NewVerificationUseCase(
	propertyRepo persistent.PropertyRepository,
	userRepo persistent.UserRepository,
	authority *capability.Authority,
	publisher ResultPublisher,
	cache ListingCache,
	logger *logger.Logger,
) VerificationUseCase {
	return &verificationUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		authority:    authority,
		publisher:    publisher,
		cache:        cache,
		logger:       logger,
	}
}

// Review applies an admin decision to a listing awaiting verification.
// Only PENDING_VERIFICATION listings can be decided; a rejection must
// carry notes so the owner knows what to fix. The write is guarded by
// the listing version, so two admins deciding the same listing cannot
// both win.
func (uc *verificationUseCase) Review(ctx context.Context, adminID, listingID string, approve bool, notes string) (*entity.Property, error) {
	admin, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !uc.authority.Authorize(admin, entity.CapabilityVerifyListing) {
		return nil, fmt.Errorf("%w: missing capability %s", entity.ErrUnauthorized, entity.CapabilityVerifyListing)
	}

	property, err := uc.propertyRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if property.VerificationStatus != entity.StatusPendingVerification {
		return nil, fmt.Errorf("%w: cannot review listing in status %s, expected %s",
			entity.ErrInvalidTransition, property.VerificationStatus, entity.StatusPendingVerification)
	}

	if !approve && strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: rejection notes are required", entity.ErrValidation)
	}

	before := property.VerificationStatus
	now := time.Now().UTC()
	if approve {
		property.VerificationStatus = entity.StatusVerified
	} else {
		property.VerificationStatus = entity.StatusRejected
	}
	property.VerificationNotes = notes
	property.VerifiedBy = &adminID
	property.VerifiedAt = &now

	if err := uc.propertyRepo.Update(ctx, property, property.Version); err != nil {
		return nil, err
	}

	uc.logger.Info("listing %s reviewed by %s: %s -> %s", listingID, adminID, before, property.VerificationStatus)

	uc.publishResult(property)
	uc.invalidateListing(ctx, listingID)

	return property, nil
}

func (uc *verificationUseCase) ListPending(ctx context.Context, adminID string, limit, offset int) ([]*entity.Property, error) {
	admin, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !uc.authority.Authorize(admin, entity.CapabilityAdminAccess) {
		return nil, fmt.Errorf("%w: missing capability %s", entity.ErrUnauthorized, entity.CapabilityAdminAccess)
	}

	return uc.propertyRepo.ListPending(ctx, limit, offset)
}

// publishResult notifies the owner asynchronously. Delivery is best
// effort; the decision is already durable by the time we get here.
func (uc *verificationUseCase) publishResult(property *entity.Property) {
	if uc.publisher == nil {
		return
	}

	task := map[string]interface{}{
		"listing_id": property.ID,
		"owner_id":   property.OwnerID,
		"status":     string(property.VerificationStatus),
		"notes":      property.VerificationNotes,
	}
	if err := uc.publisher.PublishVerificationResult(task); err != nil {
		uc.logger.Warn("failed to publish review result for %s: %v", property.ID, err)
	}
}

func (uc *verificationUseCase) invalidateListing(ctx context.Context, listingID string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Delete(ctx, listingID)
}
