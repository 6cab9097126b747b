package search

import (
	"fmt"
	"sort"
	"strings"

	"homefind/internal/entity"
)

type SortMode string

const (
	SortNewest     SortMode = "newest"
	SortOldest     SortMode = "oldest"
	SortPriceLow   SortMode = "price_low"
	SortPriceHigh  SortMode = "price_high"
	SortMostViewed SortMode = "most_viewed"
	SortRelevance  SortMode = "relevance"
)

// ParseSortMode validates a caller-supplied sort string. An empty string
// defaults to newest.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortNewest, nil
	}
	mode := SortMode(s)
	switch mode {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortMostViewed, SortRelevance:
		return mode, nil
	}
	return "", fmt.Errorf("%w: unknown sort mode %q", entity.ErrValidation, s)
}

// FilterParams is a conjunction: a listing passes only if it matches
// every provided field.
type FilterParams struct {
	Query        string
	State        string
	City         string
	PropertyType entity.PropertyType
	ListingType  entity.ListingType
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	Sort         SortMode
	Limit        int
	Offset       int

	// OwnerID widens the candidate set with the owner's own unverified
	// listings. Empty for anonymous callers.
	OwnerID string
}

// Weights is the per-field relevance table. Values are policy constants
// loaded from configuration, not derived.
type Weights struct {
	Title       int
	Address     int
	City        int
	State       int
	Landmark    int
	LGA         int
	Description int
}

func DefaultWeights() Weights {
	return Weights{
		Title:       10,
		Address:     8,
		City:        7,
		State:       6,
		Landmark:    5,
		LGA:         4,
		Description: 3,
	}
}

// Engine scores and orders a candidate set of listings at query time.
// It holds no state besides the weight table.
type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Score returns the weighted relevance of a listing for a query. The
// query is split on whitespace; each term contributes the field weight
// once per field it appears in, case-insensitively.
func (e *Engine) Score(p *entity.Property, query string) int {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}

	fields := []struct {
		value  string
		weight int
	}{
		{p.Title, e.weights.Title},
		{p.Address, e.weights.Address},
		{p.City, e.weights.City},
		{p.State, e.weights.State},
		{p.Landmark, e.weights.Landmark},
		{p.LGA, e.weights.LGA},
		{p.Description, e.weights.Description},
	}

	score := 0
	for _, term := range terms {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f.value), term) {
				score += f.weight
			}
		}
	}
	return score
}

// Rank orders listings by the requested sort mode and returns the page
// [offset, offset+limit). Relevance mode drops zero-score listings and
// breaks ties by most-recently-created; every other mode is a total
// order with ties broken by identifier for deterministic pagination.
func (e *Engine) Rank(listings []*entity.Property, query string, mode SortMode, limit, offset int) []*entity.Property {
	ranked := make([]*entity.Property, len(listings))
	copy(ranked, listings)

	if mode == SortRelevance && strings.TrimSpace(query) != "" {
		scores := make(map[string]int, len(ranked))
		matched := ranked[:0]
		for _, p := range ranked {
			if s := e.Score(p, query); s > 0 {
				scores[p.ID] = s
				matched = append(matched, p)
			}
		}
		ranked = matched
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if scores[a.ID] != scores[b.ID] {
				return scores[a.ID] > scores[b.ID]
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})
		return page(ranked, limit, offset)
	}

	var less func(a, b *entity.Property) bool
	switch mode {
	case SortOldest:
		less = func(a, b *entity.Property) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	case SortPriceLow:
		less = func(a, b *entity.Property) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		}
	case SortPriceHigh:
		less = func(a, b *entity.Property) bool {
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.ID > b.ID
		}
	case SortMostViewed:
		less = func(a, b *entity.Property) bool {
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
			return a.ID < b.ID
		}
	default: // newest, and relevance without a query
		less = func(a, b *entity.Property) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	return page(ranked, limit, offset)
}

func page(listings []*entity.Property, limit, offset int) []*entity.Property {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(listings) {
		return []*entity.Property{}
	}
	end := len(listings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listings[offset:end]
}
