package memory

import (
	"time"

	"github.com/iyhunko/product-catalog/internal/model"
)

// DefaultProduct is the record the catalog starts with.
func DefaultProduct() *model.Product {
	purchasedAt := time.Now()
	return &model.Product{
		Title:       "Default",
		Price:       "500$",
		PurchasedAt: &purchasedAt,
		Category:    model.CategoryMobile,
		Spec: model.MobileSpec{
			RAMSize:      "6GB",
			StorageSize:  "64GB",
			SoftwareType: "Android",
		},
		Reviews: []model.Review{},
	}
}
