package model

// ProductAction names the store operation a ProductEvent reports.
type ProductAction string

const (
	// ProductCreated is reported after a product is added to the store.
	ProductCreated ProductAction = "created"
	// ProductUpdated is reported after a product is replaced in the store.
	ProductUpdated ProductAction = "updated"
	// ProductDeleted is reported after a product is removed from the store.
	ProductDeleted ProductAction = "deleted"
)

// ProductEvent is sent to the notification collaborator after a store write.
type ProductEvent struct {
	Action    ProductAction `json:"action"`
	ProductID string        `json:"product_id"`
	Title     string        `json:"title"`
	Price     string        `json:"price"`
	Category  Category      `json:"category,omitempty"`
}

// NewProductEvent builds an event describing the product.
func NewProductEvent(action ProductAction, p *Product) ProductEvent {
	return ProductEvent{
		Action:    action,
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Category:  p.Category,
	}
}
