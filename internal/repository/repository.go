package repository

import (
	"context"
	"errors"

	"github.com/iyhunko/product-catalog/internal/model"
)

var (
	// ErrNotFound is returned when a product with the requested ID does not exist.
	ErrNotFound = errors.New("product not found")
)

// ProductStore is the only mutation surface of the product collection.
// Updating or removing an absent product is a no-op, reported through the bool result.
type ProductStore interface {
	Add(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (updated bool, err error)
	Remove(ctx context.Context, id string) (removed bool, err error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, query Query) ([]*model.Product, error)
}
