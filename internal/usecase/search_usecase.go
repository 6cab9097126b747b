package usecase

import (
	"context"
	"errors"
	"fmt"

	"homefind/internal/entity"
	"homefind/internal/repo/persistent"
	"homefind/internal/search"
	"homefind/pkg/logger"
)

type SearchUseCase interface {
	Search(ctx context.Context, params search.FilterParams) ([]*entity.Property, error)
}

type searchUseCase struct {
	propertyRepo persistent.PropertyRepository
	engine       *search.Engine
	logger       *logger.Logger
}

func NewSearchUseCase(propertyRepo persistent.PropertyRepository, engine *search.Engine, logger *logger.Logger) SearchUseCase {
	return &searchUseCase{
		propertyRepo: propertyRepo,
		engine:       engine,
		logger:       logger,
	}
}

// Search filters candidates in the store, then scores, orders and pages
// them in the engine. Deadline overruns surface as ErrTimeout so the
// transport layer can answer with a retryable status.
func (uc *searchUseCase) Search(ctx context.Context, params search.FilterParams) ([]*entity.Property, error) {
	if params.Sort == "" {
		params.Sort = search.SortNewest
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return nil, fmt.Errorf("%w: min_price exceeds max_price", entity.ErrValidation)
	}

	candidates, err := uc.propertyRepo.List(ctx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: search did not complete in time", entity.ErrTimeout)
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: search did not complete in time", entity.ErrTimeout)
		}
		return nil, err
	}

	return uc.engine.Rank(candidates, params.Query, params.Sort, params.Limit, params.Offset), nil
}
