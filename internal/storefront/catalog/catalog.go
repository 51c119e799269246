// Package catalog fetches the store context and product data a page is composed from.
package catalog

import (
	"context"
	"errors"

	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/models"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrEmptySlug     = errors.New("store slug is required")
)

const (
	DefaultProductLimit = 12
	MaxProductLimit     = 100
)

// StoreFetcher loads a tenant by slug. It returns ErrStoreNotFound when the slug is unknown.
type StoreFetcher interface {
	FetchStore(ctx context.Context, slug string) (*models.Store, error)
}

// ProductFetcher loads products for a store, ordered for display.
type ProductFetcher interface {
	FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
}

// StoreFetcherFunc adapts a function to StoreFetcher.
type StoreFetcherFunc func(ctx context.Context, slug string) (*models.Store, error)

func (f StoreFetcherFunc) FetchStore(ctx context.Context, slug string) (*models.Store, error) {
	return f(ctx, slug)
}

// ProductFetcherFunc adapts a function to ProductFetcher.
type ProductFetcherFunc func(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)

func (f ProductFetcherFunc) FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return f(ctx, filter)
}

// clampLimit applies DefaultProductLimit to zero or negative limits and caps at MaxProductLimit.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultProductLimit
	}
	if limit > MaxProductLimit {
		return MaxProductLimit
	}
	return limit
}

// ClassifyError maps a fetch failure onto the job error taxonomy. source names the fetch.
func ClassifyError(source, slug string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStoreNotFound):
		return apperrors.NewStoreNotFoundError(slug)
	case errors.Is(err, ErrEmptySlug):
		return apperrors.NewInvalidInputError(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewFetchTimeoutError(source)
	default:
		return apperrors.NewDataFetchFailedError(source, err)
	}
}
