// Package validation holds the per-step rules of the product wizard.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iyhunko/product-catalog/internal/model"
)

const (
	msgRequired   = "Required"
	ratingMessage = "Rating should be between 0 and 5 in steps of 0.25"
)

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AsErrors extracts field errors from err.
func AsErrors(err error) (Errors, bool) {
	var fieldErrs Errors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("quarter", quarterPoint); err != nil {
		panic(fmt.Sprintf("registering quarter validation: %v", err))
	}
	return v
}

// quarterPoint accepts numbers that are a whole multiple of model.RatingStep.
func quarterPoint(fl validator.FieldLevel) bool {
	steps := fl.Field().Float() / model.RatingStep
	return steps == math.Trunc(steps)
}

type details struct {
	Title string `json:"title" validate:"required,max=12"`
	Price string `json:"price" validate:"required"`
}

type specification struct {
	Category string `json:"category" validate:"required,oneof=Clothing Television Mobile"`
}

// Details validates the base details step: title and price.
func Details(p *model.Product) error {
	return check(details{Title: p.Title, Price: p.Price})
}

// Specification validates the category step. Only the block of the selected
// category is checked; a missing block counts as every field missing.
func Specification(category model.Category, spec model.Spec) error {
	if err := check(specification{Category: string(category)}); err != nil {
		return err
	}
	if spec == nil || spec.Category() != category {
		empty, err := model.EmptySpec(category)
		if err != nil {
			return err
		}
		spec = empty
	}
	return check(spec)
}

// Review validates a single review rating.
func Review(r model.Review) error {
	return check(r)
}

// Product validates every wizard step of a complete product.
func Product(p *model.Product) error {
	all := Errors{}
	if err := Details(p); err != nil {
		if fieldErrs, ok := AsErrors(err); ok {
			for k, v := range fieldErrs {
				all[k] = v
			}
		} else {
			return err
		}
	}
	if err := Specification(p.Category, p.Spec); err != nil {
		if fieldErrs, ok := AsErrors(err); ok {
			for k, v := range fieldErrs {
				all[k] = v
			}
		} else {
			return err
		}
	}
	for i, r := range p.Reviews {
		if err := Review(r); err != nil {
			all[fmt.Sprintf("reviews[%d].rating", i)] = ratingMessage
		}
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	fieldErrs := Errors{}
	for _, fe := range validationErrs {
		fieldErrs[fe.Field()] = message(fe)
	}
	return fieldErrs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("%s should not exceed %s characters", label(fe.Field()), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s should be one of %s", label(fe.Field()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte", "lte", "quarter":
		return ratingMessage
	}
	return fmt.Sprintf("%s is invalid", label(fe.Field()))
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + strings.ReplaceAll(field[1:], "_", " ")
}
