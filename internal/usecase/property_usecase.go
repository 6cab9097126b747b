package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"homefind/internal/capability"
	"homefind/internal/entity"
	"homefind/internal/repo/persistent"
	"homefind/pkg/logger"

	"github.com/google/uuid"
)

// FileStore is the narrow contract to the media storage collaborator.
// Satisfied by pkg/s3.Client.
type FileStore interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
	KeyFromURL(url string) string
}

type ImageUpload struct {
	Reader       io.Reader
	FileName     string
	ContentType  string
	Caption      string
	DisplayOrder int
}

type ListingInput struct {
	Title        string
	Description  string
	PropertyType entity.PropertyType
	ListingType  entity.ListingType
	Address      string
	City         string
	State        string
	LGA          string
	Landmark     string
	Price        float64
	Bedrooms     *int
	Bathrooms    *int
	Toilets      *int
	SquareMeters *float64
	PlotSize     string
	Features     []string
	VideoURL     string
}

type PropertyUseCase interface {
	CreateListing(ctx context.Context, ownerID string, input ListingInput, images []ImageUpload, documents []entity.OwnershipDocument) (*entity.Property, error)
	UpdateListing(ctx context.Context, userID, listingID string, input ListingInput) (*entity.Property, error)
	ReplaceImages(ctx context.Context, userID, listingID string, uploads []ImageUpload) (*entity.Property, error)
	SubmitDocuments(ctx context.Context, userID, listingID string, documents []entity.OwnershipDocument) (*entity.Property, error)
	GetListing(ctx context.Context, listingID string) (*entity.Property, error)
	GetOwnerListings(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, error)
	DeleteListing(ctx context.Context, userID, listingID string) error
}

type propertyUseCase struct {
	propertyRepo persistent.PropertyRepository
	userRepo     persistent.UserRepository
	authority    *capability.Authority
	fileStore    FileStore
	cache        ListingCache
	logger       *logger.Logger
}

func NewPropertyUseCase(
	propertyRepo persistent.PropertyRepository,
	userRepo persistent.UserRepository,
	authority *capability.Authority,
	fileStore FileStore,
	cache ListingCache,
	logger *logger.Logger,
) PropertyUseCase {
	return &propertyUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		authority:    authority,
		fileStore:    fileStore,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *propertyUseCase) CreateListing(ctx context.Context, ownerID string, input ListingInput, images []ImageUpload, documents []entity.OwnershipDocument) (*entity.Property, error) {
	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !uc.authority.Authorize(owner, entity.CapabilityCreateListing) {
		return nil, fmt.Errorf("%w: missing capability %s", entity.ErrUnauthorized, entity.CapabilityCreateListing)
	}

	if err := validateListingInput(input); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", entity.ErrValidation)
	}
	if err := validateDocuments(documents); err != nil {
		return nil, err
	}

	video, err := videoFromURL(input.VideoURL)
	if err != nil {
		return nil, err
	}

	propertyImages, err := uc.uploadImages(ownerID, images, true)
	if err != nil {
		return nil, err
	}

	property := &entity.Property{
		OwnerID:            ownerID,
		Title:              input.Title,
		Description:        input.Description,
		PropertyType:       input.PropertyType,
		ListingType:        input.ListingType,
		Address:            input.Address,
		City:               input.City,
		State:              input.State,
		LGA:                input.LGA,
		Landmark:           input.Landmark,
		Price:              input.Price,
		Bedrooms:           input.Bedrooms,
		Bathrooms:          input.Bathrooms,
		Toilets:            input.Toilets,
		SquareMeters:       input.SquareMeters,
		PlotSize:           input.PlotSize,
		Features:           input.Features,
		Images:             propertyImages,
		MainImage:          propertyImages[0].ImageURL,
		Video:              video,
		OwnershipDocuments: documents,
		VerificationStatus: entity.StatusPendingVerification,
	}

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	uc.cacheListing(ctx, property)
	return property, nil
}

func (uc *propertyUseCase) UpdateListing(ctx context.Context, userID, listingID string, input ListingInput) (*entity.Property, error) {
	property, user, err := uc.loadForWrite(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != userID && !uc.authority.Authorize(user, entity.CapabilityAdminAccess) {
		return nil, fmt.Errorf("%w: you can only update your own listings", entity.ErrUnauthorized)
	}

	if err := validateListingInput(input); err != nil {
		return nil, err
	}
	video, err := videoFromURL(input.VideoURL)
	if err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.Description = input.Description
	property.PropertyType = input.PropertyType
	property.ListingType = input.ListingType
	property.Address = input.Address
	property.City = input.City
	property.State = input.State
	property.LGA = input.LGA
	property.Landmark = input.Landmark
	property.Price = input.Price
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.Toilets = input.Toilets
	property.SquareMeters = input.SquareMeters
	property.PlotSize = input.PlotSize
	property.Features = input.Features
	property.Video = video

	if err := uc.propertyRepo.Update(ctx, property, property.Version); err != nil {
		return nil, err
	}

	uc.invalidateListing(ctx, listingID)
	return property, nil
}

// ReplaceImages swaps the full image set. Display orders are validated
// before anything is uploaded or written; once the record update succeeds
// the old files are deleted best-effort, and a failed delete is only a
// warning because the record already stopped referencing them.
func (uc *propertyUseCase) ReplaceImages(ctx context.Context, userID, listingID string, uploads []ImageUpload) (*entity.Property, error) {
	property, user, err := uc.loadForWrite(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != userID && !uc.authority.Authorize(user, entity.CapabilityAdminAccess) {
		return nil, fmt.Errorf("%w: you can only update your own listings", entity.ErrUnauthorized)
	}

	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", entity.ErrValidation)
	}
	if err := validateDisplayOrders(uploads); err != nil {
		return nil, err
	}

	oldImages := property.Images

	newImages, err := uc.uploadImages(property.OwnerID, uploads, false)
	if err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.ReplaceImages(ctx, listingID, newImages); err != nil {
		// The record was not touched; clean up the files we just uploaded.
		uc.deleteFiles(newImages)
		return nil, fmt.Errorf("failed to replace images: %w", err)
	}

	uc.deleteFiles(oldImages)
	uc.invalidateListing(ctx, listingID)

	return uc.propertyRepo.GetByID(ctx, listingID)
}

// SubmitDocuments replaces the ownership document set and forces the
// listing back to PENDING_VERIFICATION, clearing the previous verifier
// sign-off. This applies from any status: changed proof of ownership
// always invalidates a prior decision.
func (uc *propertyUseCase) SubmitDocuments(ctx context.Context, userID, listingID string, documents []entity.OwnershipDocument) (*entity.Property, error) {
	property, _, err := uc.loadForWrite(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != userID {
		return nil, fmt.Errorf("%w: only the listing owner can submit documents", entity.ErrUnauthorized)
	}

	if err := validateDocuments(documents); err != nil {
		return nil, err
	}

	before := property.VerificationStatus
	property.OwnershipDocuments = documents
	property.ResetVerification()

	if err := uc.propertyRepo.Update(ctx, property, property.Version); err != nil {
		return nil, err
	}

	uc.logger.Info("listing %s documents resubmitted by %s: %s -> %s", listingID, userID, before, property.VerificationStatus)
	uc.invalidateListing(ctx, listingID)
	return property, nil
}

func (uc *propertyUseCase) GetListing(ctx context.Context, listingID string) (*entity.Property, error) {
	if uc.cache != nil {
		if property, ok := uc.cache.Get(ctx, listingID); ok {
			uc.bumpViewCount(ctx, property)
			return property, nil
		}
	}

	property, err := uc.propertyRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	uc.bumpViewCount(ctx, property)
	uc.cacheListing(ctx, property)
	return property, nil
}

// bumpViewCount increments the counter column once per successful read.
// The cached copy is not rewritten, so its view count drifts until the
// next invalidation; the counter column never promises exact reads.
func (uc *propertyUseCase) bumpViewCount(ctx context.Context, property *entity.Property) {
	if err := uc.propertyRepo.IncrementViewCount(ctx, property.ID); err != nil {
		uc.logger.Warn("failed to increment view count for %s: %v", property.ID, err)
		return
	}
	property.ViewCount++
}

func (uc *propertyUseCase) GetOwnerListings(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, error) {
	return uc.propertyRepo.GetByOwnerID(ctx, ownerID, limit, offset)
}

func (uc *propertyUseCase) DeleteListing(ctx context.Context, userID, listingID string) error {
	property, user, err := uc.loadForWrite(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if property.OwnerID != userID && !uc.authority.Authorize(user, entity.CapabilityAdminAccess) {
		return fmt.Errorf("%w: you can only delete your own listings", entity.ErrUnauthorized)
	}

	if err := uc.propertyRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	uc.deleteFiles(property.Images)
	uc.invalidateListing(ctx, listingID)
	return nil
}

func (uc *propertyUseCase) loadForWrite(ctx context.Context, userID, listingID string) (*entity.Property, *entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !uc.authority.Authorize(user) {
		return nil, nil, fmt.Errorf("%w: account is not active", entity.ErrUnauthorized)
	}
	property, err := uc.propertyRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, nil, err
	}
	return property, user, nil
}

func (uc *propertyUseCase) uploadImages(ownerID string, uploads []ImageUpload, orderByIndex bool) ([]entity.PropertyImage, error) {
	images := make([]entity.PropertyImage, 0, len(uploads))
	for i, upload := range uploads {
		contentType := upload.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}

		key := fmt.Sprintf("listings/%s/%s%s", ownerID, uuid.New().String(), strings.ToLower(path.Ext(upload.FileName)))
		url, err := uc.fileStore.UploadFile(key, upload.Reader, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}

		order := upload.DisplayOrder
		if orderByIndex {
			order = i
		}
		images = append(images, entity.PropertyImage{
			ImageURL:     url,
			IsMain:       order == 0,
			Caption:      upload.Caption,
			DisplayOrder: order,
		})
	}
	return images, nil
}

func (uc *propertyUseCase) deleteFiles(images []entity.PropertyImage) {
	for _, img := range images {
		key := uc.fileStore.KeyFromURL(img.ImageURL)
		if key == "" {
			continue
		}
		if err := uc.fileStore.DeleteFile(key); err != nil {
			// Orphaned files are an acceptable degraded state; an
			// inconsistent record is not. Log and move on.
			uc.logger.Warn("failed to delete stored file %s: %v", key, err)
		}
	}
}

func (uc *propertyUseCase) cacheListing(ctx context.Context, property *entity.Property) {
	if uc.cache == nil {
		return
	}
	uc.cache.Set(ctx, property)
}

func (uc *propertyUseCase) invalidateListing(ctx context.Context, listingID string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Delete(ctx, listingID)
}

func validateListingInput(input ListingInput) error {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return fmt.Errorf("%w: title is required", entity.ErrValidation)
	case strings.TrimSpace(input.Description) == "":
		return fmt.Errorf("%w: description is required", entity.ErrValidation)
	case strings.TrimSpace(input.Address) == "":
		return fmt.Errorf("%w: address is required", entity.ErrValidation)
	case strings.TrimSpace(input.City) == "":
		return fmt.Errorf("%w: city is required", entity.ErrValidation)
	case strings.TrimSpace(input.State) == "":
		return fmt.Errorf("%w: state is required", entity.ErrValidation)
	case strings.TrimSpace(input.LGA) == "":
		return fmt.Errorf("%w: lga is required", entity.ErrValidation)
	}

	if !input.PropertyType.Valid() {
		return fmt.Errorf("%w: unknown property type %q", entity.ErrValidation, input.PropertyType)
	}
	if !input.ListingType.Valid() {
		return fmt.Errorf("%w: unknown listing type %q", entity.ErrValidation, input.ListingType)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", entity.ErrValidation)
	}
	for name, v := range map[string]*int{"bedrooms": input.Bedrooms, "bathrooms": input.Bathrooms, "toilets": input.Toilets} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must not be negative", entity.ErrValidation, name)
		}
	}
	if input.SquareMeters != nil && *input.SquareMeters <= 0 {
		return fmt.Errorf("%w: square_meters must be positive", entity.ErrValidation)
	}
	return nil
}

func validateDocuments(documents []entity.OwnershipDocument) error {
	if len(documents) == 0 {
		return fmt.Errorf("%w: at least one ownership document is required", entity.ErrValidation)
	}
	for _, doc := range documents {
		if strings.TrimSpace(doc.DocumentType) == "" {
			return fmt.Errorf("%w: document_type is required on every document", entity.ErrValidation)
		}
	}
	return nil
}

func validateDisplayOrders(uploads []ImageUpload) error {
	seen := make(map[int]struct{}, len(uploads))
	for _, upload := range uploads {
		if _, dup := seen[upload.DisplayOrder]; dup {
			return fmt.Errorf("%w: duplicate display_order %d", entity.ErrValidation, upload.DisplayOrder)
		}
		seen[upload.DisplayOrder] = struct{}{}
	}
	return nil
}

func videoFromURL(videoURL string) (*entity.PropertyVideo, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, nil
	}
	provider := entity.VideoProviderFromURL(videoURL)
	if provider == "" {
		return nil, fmt.Errorf("%w: video_url must be a YouTube or Vimeo link", entity.ErrValidation)
	}
	return &entity.PropertyVideo{VideoURL: videoURL, Provider: provider}, nil
}
