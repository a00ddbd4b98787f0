package wizard

import (
	"time"

	"github.com/iyhunko/product-catalog/internal/model"
)

// DetailsPatch carries base detail fields to change. Nil fields are left as they are.
type DetailsPatch struct {
	Title            *string
	Description      *string
	Price            *string
	PurchasedAt      *time.Time
	ClearPurchasedAt bool
}

// SpecificationPatch carries the category and specification fields to change.
// Fields of every category are accepted; each lands in its own category block.
type SpecificationPatch struct {
	Category *model.Category

	RAMSize      *string
	StorageSize  *string
	SoftwareType *string

	DisplaySize *string
	DeviceType  *string

	ClothType   *string
	ClothSize   *string
	ClothColor  *string
	ClothFabric *string
}

// draft is the product being edited. It keeps one specification block per
// category so switching back to a category restores what was entered for it.
type draft struct {
	product    model.Product
	mobile     model.MobileSpec
	television model.TelevisionSpec
	clothing   model.ClothingSpec
}

func newDraft(existing *model.Product) draft {
	d := draft{}
	if existing == nil {
		d.product.Category = model.DefaultCategory
		return d
	}

	d.product = *existing.Clone()
	d.product.Spec = nil
	d.product.Reviews = nil
	if d.product.Category == "" {
		d.product.Category = model.DefaultCategory
	}
	switch spec := existing.Spec.(type) {
	case model.MobileSpec:
		d.mobile = spec
	case model.TelevisionSpec:
		d.television = spec
	case model.ClothingSpec:
		d.clothing = spec
	}
	return d
}

func (d *draft) applyDetails(p DetailsPatch) bool {
	before := d.product
	setString(&d.product.Title, p.Title)
	setString(&d.product.Description, p.Description)
	setString(&d.product.Price, p.Price)

	switch {
	case p.ClearPurchasedAt:
		d.product.PurchasedAt = nil
	case p.PurchasedAt != nil:
		t := *p.PurchasedAt
		d.product.PurchasedAt = &t
	}

	return before.Title != d.product.Title ||
		before.Description != d.product.Description ||
		before.Price != d.product.Price ||
		!sameTime(before.PurchasedAt, d.product.PurchasedAt)
}

func (d *draft) applySpecification(p SpecificationPatch) bool {
	before := *d
	if p.Category != nil {
		d.product.Category = *p.Category
	}

	setString(&d.mobile.RAMSize, p.RAMSize)
	setString(&d.mobile.StorageSize, p.StorageSize)
	setString(&d.mobile.SoftwareType, p.SoftwareType)

	setString(&d.television.DisplaySize, p.DisplaySize)
	setString(&d.television.DeviceType, p.DeviceType)

	setString(&d.clothing.ClothType, p.ClothType)
	setString(&d.clothing.ClothSize, p.ClothSize)
	setString(&d.clothing.ClothColor, p.ClothColor)
	setString(&d.clothing.ClothFabric, p.ClothFabric)

	return before.product.Category != d.product.Category ||
		before.mobile != d.mobile ||
		before.television != d.television ||
		before.clothing != d.clothing
}

// spec returns the block of the selected category, or nil for an unknown category.
func (d *draft) spec() model.Spec {
	return d.specFor(d.product.Category)
}

func (d *draft) specFor(c model.Category) model.Spec {
	switch c {
	case model.CategoryMobile:
		return d.mobile
	case model.CategoryTelevision:
		return d.television
	case model.CategoryClothing:
		return d.clothing
	}
	return nil
}

// specs returns every category block held by the draft.
func (d *draft) specs() map[model.Category]model.Spec {
	return map[model.Category]model.Spec{
		model.CategoryMobile:     d.mobile,
		model.CategoryTelevision: d.television,
		model.CategoryClothing:   d.clothing,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
