package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/config"
	"github.com/iyhunko/product-catalog/internal/model"
)

// Controller handles general HTTP requests.
type Controller struct {
	config *config.Config
}

// New creates a new Controller with the given configuration.
func New(config *config.Config) *Controller {
	return &Controller{
		config: config,
	}
}

// Ping handles the HTTP GET request for health check endpoint.
func (con *Controller) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// OptionsResponse lists the values a client offers in its pickers.
type OptionsResponse struct {
	Categories      []model.Category                       `json:"categories"`
	DefaultCategory model.Category                         `json:"default_category"`
	Specs           map[model.Category]map[string][]string `json:"specs"`
	MaxRating       float64                                `json:"max_rating"`
	RatingStep      float64                                `json:"rating_step"`
}

// Options handles the HTTP GET request for catalog option values.
func (con *Controller) Options(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Categories:      model.Categories(),
		DefaultCategory: model.DefaultCategory,
		Specs:           model.SpecOptions,
		MaxRating:       model.MaxRating,
		RatingStep:      model.RatingStep,
	})
}
