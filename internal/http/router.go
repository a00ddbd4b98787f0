package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/http/controller"
	"github.com/iyhunko/product-catalog/internal/http/middleware"
)

func InitRouter(server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController, wizardCtr *controller.WizardController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.Logger())
	server.Use(middleware.CORS())

	server.GET("/ping", ctr.Ping)
	server.GET("/catalog/options", ctr.Options)

	// Product endpoints
	products := server.Group("/products")
	{
		products.GET("", productCtr.ListProducts)
		products.GET("/:id", productCtr.GetProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	// Wizard endpoints
	wizards := server.Group("/wizards")
	{
		wizards.POST("", wizardCtr.OpenWizard)
		wizards.GET("/:id", wizardCtr.GetWizard)
		wizards.PATCH("/:id/details", wizardCtr.UpdateDetails)
		wizards.PATCH("/:id/specification", wizardCtr.UpdateSpecification)
		wizards.POST("/:id/advance", wizardCtr.Advance)
		wizards.POST("/:id/retreat", wizardCtr.Retreat)
		wizards.POST("/:id/jump/:step", wizardCtr.JumpTo)
		wizards.POST("/:id/reviews", wizardCtr.AddReview)
		wizards.PATCH("/:id/reviews/:index", wizardCtr.UpdateReview)
		wizards.POST("/:id/reviews/:index/confirm", wizardCtr.ConfirmReview)
		wizards.POST("/:id/reviews/:index/edit", wizardCtr.EditReview)
		wizards.DELETE("/:id/reviews/:index", wizardCtr.RemoveReview)
		wizards.POST("/:id/submit", wizardCtr.Submit)
		wizards.POST("/:id/discard", wizardCtr.Discard)
	}

	return server
}
