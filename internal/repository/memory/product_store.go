// Package memory keeps the product collection in process memory.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
)

var _ repository.ProductStore = (*ProductStore)(nil)

// ProductStore is an in-memory repository.ProductStore that keeps products in insertion order.
type ProductStore struct {
	mu       sync.RWMutex
	products []*model.Product
	lastSeq  int64
}

// NewProductStore creates a ProductStore holding copies of the seed products.
// Seed products get new IDs like any other added product.
func NewProductStore(seed ...*model.Product) *ProductStore {
	s := &ProductStore{}
	for _, p := range seed {
		s.add(p)
	}
	return s
}

// Add stores a copy of product under a freshly generated ID.
func (s *ProductStore) Add(_ context.Context, product *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.add(product).Clone(), nil
}

func (s *ProductStore) add(product *model.Product) *model.Product {
	stored := product.Clone()
	stored.InitMeta()
	s.lastSeq++
	stored.Seq = s.lastSeq
	s.products = append(s.products, stored)
	slog.Debug("product added", slog.String("product_id", stored.ID))
	return stored
}

// Update replaces the product with the same ID. Absent IDs leave the store unchanged.
func (s *ProductStore) Update(_ context.Context, product *model.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(product.ID)
	if i < 0 {
		slog.Debug("product to update not found", slog.String("product_id", product.ID))
		return false, nil
	}

	current := s.products[i]
	replacement := product.Clone()
	replacement.Seq = current.Seq
	replacement.CreatedAt = current.CreatedAt
	replacement.UpdatedAt = time.Now()
	s.products[i] = replacement
	return true, nil
}

// Remove deletes the product with the given ID. Absent IDs leave the store unchanged.
func (s *ProductStore) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return true, nil
}

// FindByID returns a copy of the product with the given ID.
func (s *ProductStore) FindByID(_ context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return s.products[i].Clone(), nil
}

// List returns copies of the products in insertion order.
func (s *ProductStore) List(_ context.Context, query repository.Query) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category := query.Values[repository.CategoryField]
	result := make([]*model.Product, 0, len(s.products))
	for _, p := range s.products {
		if query.Paginator != nil && p.Seq <= query.Paginator.LastSeq {
			continue
		}
		if category != "" && string(p.Category) != category {
			continue
		}
		result = append(result, p.Clone())
		if query.Limit > 0 && len(result) == query.Limit {
			break
		}
	}
	return result, nil
}

func (s *ProductStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
