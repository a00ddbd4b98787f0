package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"github.com/iyhunko/product-catalog/internal/service"
)

// ProductController handles HTTP requests for stored products.
type ProductController struct {
	catalogService *service.CatalogService
}

// NewProductController creates a new ProductController with the given catalog service.
func NewProductController(catalogService *service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

// GetProduct handles the HTTP GET request for a single product.
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
// Deleting an unknown product succeeds with removed set to false.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	removed, err := pc.catalogService.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ListProductsRequest represents the query parameters for listing products.
type ListProductsRequest struct {
	Limit    int32  `form:"limit" binding:"gte=0"`
	Token    string `form:"token"`
	Category string `form:"category"`
}

// ListProductsResponse represents the response body for listing products.
type ListProductsResponse struct {
	Products      []ProductResponse `json:"products"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

// ListProducts handles the HTTP GET request for listing products in insertion order.
// Without limit and token the whole catalog is returned.
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	query := repository.NewQuery()
	if err := query.ApplyPagination(req.Limit, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Category != "" {
		category, err := model.ParseCategory(req.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		query.With(repository.CategoryField, string(category))
	}

	products, err := pc.catalogService.ListProducts(c.Request.Context(), *query)
	if err != nil {
		writeError(c, err)
		return
	}

	response := ListProductsResponse{
		Products: make([]ProductResponse, 0, len(products)),
	}
	for _, product := range products {
		response.Products = append(response.Products, toProductResponse(product))
	}

	// A full page means there may be more
	if query.Limit > 0 && len(products) == query.Limit {
		lastProduct := products[len(products)-1]
		paginator := repository.Paginator{
			LastID:  lastProduct.ID,
			LastSeq: lastProduct.Seq,
		}
		response.NextPageToken = paginator.Encode()
	}

	c.JSON(http.StatusOK, response)
}
