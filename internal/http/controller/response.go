package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"github.com/iyhunko/product-catalog/internal/service"
	"github.com/iyhunko/product-catalog/internal/validation"
	"github.com/iyhunko/product-catalog/internal/wizard"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields validation.Errors `json:"fields,omitempty"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	PurchasedAt *string        `json:"purchased_at,omitempty"`
	Category    model.Category `json:"category"`
	Spec        any            `json:"spec"`
	Reviews     []model.Review `json:"reviews"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}

func toProductResponse(product *model.Product) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Spec:        product.Spec,
		Reviews:     product.Reviews,
		CreatedAt:   formatTime(product.CreatedAt),
		UpdatedAt:   formatTime(product.UpdatedAt),
	}
	if resp.Reviews == nil {
		resp.Reviews = []model.Review{}
	}
	if product.PurchasedAt != nil {
		purchasedAt := product.PurchasedAt.Format(timeFormat)
		resp.PurchasedAt = &purchasedAt
	}
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	if fields, ok := validation.AsErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, wizard.ErrClosed):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "wizard session not found"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
	case errors.Is(err, wizard.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, wizard.ErrConfirmationRequired), errors.Is(err, wizard.ErrNotFinalStep):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", slog.Any("err", err), slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
