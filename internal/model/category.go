package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Category classifies a product and decides which specification block applies.
type Category string

const (
	CategoryClothing   Category = "Clothing"
	CategoryTelevision Category = "Television"
	CategoryMobile     Category = "Mobile"
)

// DefaultCategory is preselected when a wizard opens on a new product.
const DefaultCategory = CategoryMobile

var (
	// ErrUnknownCategory is returned when a category name is not one of the known categories.
	ErrUnknownCategory = errors.New("unknown category")
)

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{CategoryMobile, CategoryTelevision, CategoryClothing}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryClothing, CategoryTelevision, CategoryMobile:
		return true
	}
	return false
}

// ParseCategory converts a name into a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// Spec is the category-specific specification block of a product.
// Exactly one implementation exists per category.
type Spec interface {
	Category() Category
}

// MobileSpec holds the specification fields of a Mobile product.
type MobileSpec struct {
	RAMSize      string `json:"ram_size" validate:"required"`
	StorageSize  string `json:"storage_size" validate:"required"`
	SoftwareType string `json:"software_type" validate:"required"`
}

func (MobileSpec) Category() Category { return CategoryMobile }

// TelevisionSpec holds the specification fields of a Television product.
type TelevisionSpec struct {
	DisplaySize string `json:"display_size" validate:"required"`
	DeviceType  string `json:"device_type" validate:"required"`
}

func (TelevisionSpec) Category() Category { return CategoryTelevision }

// ClothingSpec holds the specification fields of a Clothing product.
type ClothingSpec struct {
	ClothType   string `json:"cloth_type" validate:"required"`
	ClothSize   string `json:"cloth_size" validate:"required"`
	ClothColor  string `json:"cloth_color" validate:"required"`
	ClothFabric string `json:"cloth_fabric" validate:"required"`
}

func (ClothingSpec) Category() Category { return CategoryClothing }

// EmptySpec returns the zero specification block for the category.
func EmptySpec(c Category) (Spec, error) {
	switch c {
	case CategoryMobile:
		return MobileSpec{}, nil
	case CategoryTelevision:
		return TelevisionSpec{}, nil
	case CategoryClothing:
		return ClothingSpec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}

// EncodeSpec serializes a specification block to JSON. A nil spec encodes as an empty object.
func EncodeSpec(spec Spec) ([]byte, error) {
	if spec == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s spec: %w", spec.Category(), err)
	}
	return data, nil
}

// DecodeSpec deserializes the specification block of the given category.
func DecodeSpec(c Category, data []byte) (Spec, error) {
	var (
		spec Spec
		err  error
	)
	switch c {
	case CategoryMobile:
		var s MobileSpec
		err = decodeInto(data, &s)
		spec = s
	case CategoryTelevision:
		var s TelevisionSpec
		err = decodeInto(data, &s)
		spec = s
	case CategoryClothing:
		var s ClothingSpec
		err = decodeInto(data, &s)
		spec = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s spec: %w", c, err)
	}
	return spec, nil
}

func decodeInto(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
