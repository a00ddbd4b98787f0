package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product with its category specification and reviews.
type Product struct {
	ID          string
	Title       string
	Description string
	// Price is free text as entered, e.g. "500$".
	Price       string
	PurchasedAt *time.Time
	Category    Category
	Spec        Spec
	Reviews     []Review
	// Seq is the insertion position assigned by the store.
	Seq       int64
	UpdatedAt time.Time
	CreatedAt time.Time
}

// InitMeta initializes the product metadata including ID and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New().String()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// IsNew reports whether the product has not been saved yet.
func (p *Product) IsNew() bool {
	return p.ID == ""
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.PurchasedAt != nil {
		t := *p.PurchasedAt
		c.PurchasedAt = &t
	}
	if p.Reviews != nil {
		c.Reviews = make([]Review, len(p.Reviews))
		copy(c.Reviews, p.Reviews)
	}
	// Spec variants are value types, so copying the interface is enough.
	return &c
}
