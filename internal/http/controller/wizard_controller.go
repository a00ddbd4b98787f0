package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/service"
	"github.com/iyhunko/product-catalog/internal/wizard"
)

// WizardController handles HTTP requests that drive wizard sessions.
type WizardController struct {
	catalogService *service.CatalogService
}

// NewWizardController creates a new WizardController with the given catalog service.
func NewWizardController(catalogService *service.CatalogService) *WizardController {
	return &WizardController{
		catalogService: catalogService,
	}
}

// OpenWizardRequest represents the optional request body for opening a wizard.
type OpenWizardRequest struct {
	ProductID string `json:"product_id"`
}

// DetailsRequest represents the request body for the details step.
type DetailsRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Price            *string    `json:"price"`
	PurchasedAt      *time.Time `json:"purchased_at"`
	ClearPurchasedAt bool       `json:"clear_purchased_at"`
}

// SpecificationRequest represents the request body for the specification step.
type SpecificationRequest struct {
	Category     *string `json:"category"`
	RAMSize      *string `json:"ram_size"`
	StorageSize  *string `json:"storage_size"`
	SoftwareType *string `json:"software_type"`
	DisplaySize  *string `json:"display_size"`
	DeviceType   *string `json:"device_type"`
	ClothType    *string `json:"cloth_type"`
	ClothSize    *string `json:"cloth_size"`
	ClothColor   *string `json:"cloth_color"`
	ClothFabric  *string `json:"cloth_fabric"`
}

// ReviewRequest represents the request body for changing a review.
type ReviewRequest struct {
	Rating   *float64 `json:"rating"`
	Feedback *string  `json:"feedback"`
}

// ConfirmReviewRequest represents the request body for committing review feedback.
type ConfirmReviewRequest struct {
	Feedback string `json:"feedback"`
}

// WizardResponse represents the response body for a wizard session.
type WizardResponse struct {
	ID        string                 `json:"id"`
	Step      wizard.Step            `json:"step"`
	StepName  string                 `json:"step_name"`
	Visited   []wizard.Step          `json:"visited"`
	CanJumpTo []wizard.Step          `json:"can_jump_to"`
	Dirty     bool                   `json:"dirty"`
	IsUpdate  bool                   `json:"is_update"`
	Product   ProductResponse        `json:"product"`
	Specs     map[model.Category]any `json:"specs"`
}

// SubmitResponse represents the response body for a submitted wizard.
type SubmitResponse struct {
	Product   ProductResponse `json:"product"`
	WasUpdate bool            `json:"was_update"`
}

// OpenWizard handles the HTTP POST request for opening a wizard on a new or stored product.
func (wc *WizardController) OpenWizard(c *gin.Context) {
	var req OpenWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := wc.catalogService.OpenWizard(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWizardResponse(view))
}

// GetWizard handles the HTTP GET request for a wizard session.
func (wc *WizardController) GetWizard(c *gin.Context) {
	view, err := wc.catalogService.GetWizard(c.Request.Context(), c.Param("id"))
	wc.respond(c, view, err)
}

// UpdateDetails handles the HTTP PATCH request for the details step fields.
func (wc *WizardController) UpdateDetails(c *gin.Context) {
	var req DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		return w.UpdateDetails(wizard.DetailsPatch{
			Title:            req.Title,
			Description:      req.Description,
			Price:            req.Price,
			PurchasedAt:      req.PurchasedAt,
			ClearPurchasedAt: req.ClearPurchasedAt,
		})
	})
	wc.respond(c, view, err)
}

// UpdateSpecification handles the HTTP PATCH request for the category and specification fields.
func (wc *WizardController) UpdateSpecification(c *gin.Context) {
	var req SpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	patch := wizard.SpecificationPatch{
		RAMSize:      req.RAMSize,
		StorageSize:  req.StorageSize,
		SoftwareType: req.SoftwareType,
		DisplaySize:  req.DisplaySize,
		DeviceType:   req.DeviceType,
		ClothType:    req.ClothType,
		ClothSize:    req.ClothSize,
		ClothColor:   req.ClothColor,
		ClothFabric:  req.ClothFabric,
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		patch.Category = &category
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		return w.UpdateSpecification(patch)
	})
	wc.respond(c, view, err)
}

// Advance handles the HTTP POST request for moving to the next step.
func (wc *WizardController) Advance(c *gin.Context) {
	view, err := wc.catalogService.AdvanceWizard(c.Request.Context(), c.Param("id"))
	wc.respond(c, view, err)
}

// Retreat handles the HTTP POST request for moving to the previous step.
func (wc *WizardController) Retreat(c *gin.Context) {
	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		w.Retreat()
		return nil
	})
	wc.respond(c, view, err)
}

// JumpTo handles the HTTP POST request for moving to a visited step.
// Unreached or out-of-range steps leave the wizard where it is.
func (wc *WizardController) JumpTo(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid step"})
		return
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		w.JumpTo(wizard.Step(step))
		return nil
	})
	wc.respond(c, view, err)
}

// AddReview handles the HTTP POST request for appending an empty review.
func (wc *WizardController) AddReview(c *gin.Context) {
	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		_, err := w.AddReview()
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWizardResponse(view))
}

// UpdateReview handles the HTTP PATCH request for changing a review rating or feedback.
func (wc *WizardController) UpdateReview(c *gin.Context) {
	index, ok := reviewIndex(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		return w.UpdateReview(index, wizard.ReviewPatch{Rating: req.Rating, Feedback: req.Feedback})
	})
	wc.respond(c, view, err)
}

// ConfirmReview handles the HTTP POST request for committing review feedback.
func (wc *WizardController) ConfirmReview(c *gin.Context) {
	index, ok := reviewIndex(c)
	if !ok {
		return
	}
	var req ConfirmReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		return w.ConfirmReview(index, req.Feedback)
	})
	wc.respond(c, view, err)
}

// EditReview handles the HTTP POST request for reopening review feedback.
func (wc *WizardController) EditReview(c *gin.Context) {
	index, ok := reviewIndex(c)
	if !ok {
		return
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		return w.EditReview(index)
	})
	wc.respond(c, view, err)
}

// RemoveReview handles the HTTP DELETE request for removing a review.
func (wc *WizardController) RemoveReview(c *gin.Context) {
	index, ok := reviewIndex(c)
	if !ok {
		return
	}

	view, err := wc.catalogService.EditWizard(c.Param("id"), func(w *wizard.Wizard) error {
		return w.RemoveReview(index)
	})
	wc.respond(c, view, err)
}

// Submit handles the HTTP POST request for saving the wizard product.
func (wc *WizardController) Submit(c *gin.Context) {
	result, err := wc.catalogService.SubmitWizard(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Product:   toProductResponse(result.Product),
		WasUpdate: result.WasUpdate,
	})
}

// Discard handles the HTTP POST request for closing the wizard without saving.
func (wc *WizardController) Discard(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"

	if err := wc.catalogService.DiscardWizard(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (wc *WizardController) respond(c *gin.Context, view service.WizardView, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWizardResponse(view))
}

func reviewIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid review index"})
		return 0, false
	}
	return index, true
}

func toWizardResponse(view service.WizardView) WizardResponse {
	specs := make(map[model.Category]any, len(view.Specs))
	for category, spec := range view.Specs {
		specs[category] = spec
	}
	visited := view.State.VisitedSteps()
	canJumpTo := make([]wizard.Step, 0, len(visited))
	for _, step := range visited {
		if view.State.CanJumpTo(step) {
			canJumpTo = append(canJumpTo, step)
		}
	}
	return WizardResponse{
		ID:        view.ID,
		Step:      view.State.Current,
		StepName:  view.State.Current.String(),
		Visited:   visited,
		CanJumpTo: canJumpTo,
		Dirty:     view.State.Dirty,
		IsUpdate:  view.IsUpdate,
		Product:   toProductResponse(view.Product),
		Specs:     specs,
	}
}
