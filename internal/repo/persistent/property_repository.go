package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homefind/internal/entity"
	"homefind/internal/model"
	"homefind/internal/search"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	GetByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, error)
	List(ctx context.Context, params search.FilterParams) ([]*entity.Property, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entity.Property, error)
	Update(ctx context.Context, property *entity.Property, expectedVersion int) error
	ReplaceImages(ctx context.Context, propertyID string, images []entity.PropertyImage) error
	IncrementViewCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("property_images.display_order ASC")
}

func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	propertyModel := ToPropertyModel(property)
	if propertyModel.ID == "" {
		propertyModel.ID = uuid.New().String()
	}
	if propertyModel.Version == 0 {
		propertyModel.Version = 1
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		images := propertyModel.Images
		propertyModel.Images = nil

		if err := tx.Create(propertyModel).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].PropertyID = propertyModel.ID
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		propertyModel.Images = images

		*property = *ToPropertyEntity(propertyModel)
		return nil
	})
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	var propertyModel model.PropertyModel
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Where("id = ?", id).
		First(&propertyModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing %s", entity.ErrNotFound, id)
		}
		return nil, err
	}
	return ToPropertyEntity(&propertyModel), nil
}

func (r *propertyRepository) GetByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	query := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return toPropertyEntities(propertyModels), nil
}

// List returns the candidate set for the search engine: every listing
// matching the structured filters. Visibility is restricted to VERIFIED
// unless OwnerID is set, in which case that owner's pending and rejected
// listings are included too. Ordering and pagination happen in the engine.
func (r *propertyRepository) List(ctx context.Context, params search.FilterParams) ([]*entity.Property, error) {
	query := r.db.WithContext(ctx).Preload("Images", preloadImages)

	if params.OwnerID != "" {
		query = query.Where(
			"verification_status = ? OR (owner_id = ? AND verification_status IN ?)",
			string(entity.StatusVerified),
			params.OwnerID,
			[]string{string(entity.StatusPendingVerification), string(entity.StatusRejected)},
		)
	} else {
		query = query.Where("verification_status = ?", string(entity.StatusVerified))
	}

	if params.State != "" {
		query = query.Where("state ILIKE ?", "%"+params.State+"%")
	}
	if params.City != "" {
		query = query.Where("city ILIKE ?", "%"+params.City+"%")
	}
	if params.PropertyType != "" {
		query = query.Where("property_type = ?", string(params.PropertyType))
	}
	if params.ListingType != "" {
		query = query.Where("listing_type = ?", string(params.ListingType))
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.MinBedrooms != nil && *params.MinBedrooms > 0 {
		query = query.Where("bedrooms >= ?", *params.MinBedrooms)
	}

	if cond, args := textSearchPredicate(params.Query); cond != "" {
		query = query.Where(cond, args...)
	}

	var propertyModels []model.PropertyModel
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return toPropertyEntities(propertyModels), nil
}

func (r *propertyRepository) ListPending(ctx context.Context, limit, offset int) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	query := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Where("verification_status = ?", string(entity.StatusPendingVerification)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return toPropertyEntities(propertyModels), nil
}

// Update writes the listing record guarded by an optimistic version
// check. A concurrent writer that raced ahead gets ErrConcurrentModification
// and must re-read before retrying; stale decisions are never merged.
func (r *propertyRepository) Update(ctx context.Context, property *entity.Property, expectedVersion int) error {
	propertyModel := ToPropertyModel(property)
	propertyModel.Version = expectedVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("id = ? AND version = ?", property.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "view_count", "deleted_at").
		Updates(propertyModel)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.PropertyModel{}).Where("id = ?", property.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: listing %s", entity.ErrNotFound, property.ID)
		}
		return fmt.Errorf("%w: listing %s was updated concurrently", entity.ErrConcurrentModification, property.ID)
	}

	property.Version = expectedVersion + 1
	return nil
}

// ReplaceImages swaps the image set in a single transaction. Old rows are
// deleted, never orphaned; the main image follows the new lowest display order.
func (r *propertyRepository) ReplaceImages(ctx context.Context, propertyID string, images []entity.PropertyImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Delete(&model.PropertyImageModel{}).Error; err != nil {
			return err
		}

		mainImage := ""
		for i := range images {
			imageModel := ToPropertyImageModel(&images[i])
			imageModel.PropertyID = propertyID
			if imageModel.ID == "" {
				imageModel.ID = uuid.New().String()
			}
			if err := tx.Create(imageModel).Error; err != nil {
				return err
			}
			if imageModel.IsMain || mainImage == "" {
				mainImage = imageModel.ImageURL
			}
		}

		return tx.Model(&model.PropertyModel{}).
			Where("id = ?", propertyID).
			Update("main_image", mainImage).Error
	})
}

// IncrementViewCount is a relaxed counter: a single atomic SQL increment,
// deliberately outside the optimistic version check.
func (r *propertyRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", clause.Expr{SQL: "view_count + ?", Vars: []interface{}{1}}).Error
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&model.PropertyImageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PropertyModel{}, "id = ?", id).Error
	})
}

var textSearchColumns = []string{"title", "description", "address", "city", "state", "landmark", "lga"}

// textSearchPredicate builds the candidate prefilter for a free-text
// query. The query is split on whitespace and a listing qualifies when
// ANY term appears in ANY searched column, mirroring how the ranking
// engine scores: a listing with a nonzero score must never be excluded
// here. Returns an empty condition for a blank query.
func textSearchPredicate(query string) (string, []interface{}) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return "", nil
	}

	groups := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms)*len(textSearchColumns))
	for _, term := range terms {
		pattern := "%" + term + "%"
		clauses := make([]string, 0, len(textSearchColumns))
		for _, column := range textSearchColumns {
			clauses = append(clauses, column+" ILIKE ?")
			args = append(args, pattern)
		}
		groups = append(groups, "("+strings.Join(clauses, " OR ")+")")
	}
	return strings.Join(groups, " OR "), args
}

func toPropertyEntities(propertyModels []model.PropertyModel) []*entity.Property {
	properties := make([]*entity.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = ToPropertyEntity(&propertyModels[i])
	}
	return properties
}
