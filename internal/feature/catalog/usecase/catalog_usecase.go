// Package usecase implements the business logic for catalog lookups.
package usecase

import (
	"context"
	"errors"
	"strings"

	"skinfolio_backend/internal/feature/catalog/domain/entity"
)

const (
	// DefaultSearchLimit is used when the caller does not ask for a limit.
	DefaultSearchLimit = 20
	// MaxSearchLimit caps the number of search results.
	MaxSearchLimit = 50
)

// ErrItemNotFound is returned when an item id is not in the catalog.
var ErrItemNotFound = errors.New("item not found")

// ItemIndex is the read-only catalog.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ItemIndex interface {
	ItemByID(id int64) (entity.Item, bool)
	Search(q string, limit int) []entity.Item
}

// CatalogUsecase provides item lookups.
type CatalogUsecase struct {
	index ItemIndex
}

// NewCatalogUsecase creates a new CatalogUsecase.
func NewCatalogUsecase(index ItemIndex) *CatalogUsecase {
	return &CatalogUsecase{index: index}
}

// Search returns items whose name contains q, case-insensitively.
// limit is clamped to 1..MaxSearchLimit; 0 selects DefaultSearchLimit.
func (u *CatalogUsecase) Search(ctx context.Context, q string, limit int) ([]entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}
	return u.index.Search(strings.TrimSpace(q), limit), nil
}

// GetItem returns one item.
func (u *CatalogUsecase) GetItem(ctx context.Context, id int64) (entity.Item, error) {
	it, ok := u.index.ItemByID(id)
	if !ok {
		return entity.Item{}, ErrItemNotFound
	}
	return it, nil
}
