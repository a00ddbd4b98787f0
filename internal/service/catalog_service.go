package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iyhunko/product-catalog/internal/metrics"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"github.com/iyhunko/product-catalog/internal/validation"
	"github.com/iyhunko/product-catalog/internal/wizard"
)

// WizardView is a snapshot of a wizard session taken while holding it.
type WizardView struct {
	ID       string
	State    wizard.State
	IsUpdate bool
	Product  *model.Product
	Specs    map[model.Category]model.Spec
}

// SubmitResult describes a product saved by a wizard.
type SubmitResult struct {
	Product   *model.Product
	WasUpdate bool
}

type CatalogService struct {
	store    repository.ProductStore
	sessions *Sessions
	notifier Notifier
}

// NewCatalogService wires the store, wizard sessions and an optional notifier.
func NewCatalogService(store repository.ProductStore, sessions *Sessions, notifier Notifier) *CatalogService {
	return &CatalogService{
		store:    store,
		sessions: sessions,
		notifier: notifier,
	}
}

func (cs *CatalogService) ListProducts(ctx context.Context, query repository.Query) ([]*model.Product, error) {
	return cs.store.List(ctx, query)
}

func (cs *CatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return cs.store.FindByID(ctx, id)
}

// DeleteProduct removes a product with its reviews. An unknown ID is a no-op
// and reports false.
func (cs *CatalogService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	// Find the product first to get its details for the event
	product, err := cs.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	removed, err := cs.store.Remove(ctx, id)
	if err != nil || !removed {
		return false, err
	}

	metrics.ProductsDeleted.Inc()
	cs.notify(ctx, model.NewProductEvent(model.ProductDeleted, product))
	return true, nil
}

// OpenWizard starts a wizard for a new product when productID is empty, or
// for a copy of the stored product otherwise.
func (cs *CatalogService) OpenWizard(ctx context.Context, productID string) (WizardView, error) {
	var existing *model.Product
	if productID != "" {
		product, err := cs.store.FindByID(ctx, productID)
		if err != nil {
			return WizardView{}, err
		}
		existing = product
	}

	w := wizard.Open(existing)
	id := cs.sessions.Open(w)
	metrics.WizardsOpened.Inc()
	slog.Debug("Wizard opened", slog.String("session_id", id), slog.Bool("is_update", w.IsUpdate()))

	return newWizardView(id, w), nil
}

func (cs *CatalogService) GetWizard(_ context.Context, id string) (WizardView, error) {
	return cs.EditWizard(id, func(*wizard.Wizard) error { return nil })
}

// EditWizard applies fn to the wizard of session id. The returned view
// reflects the wizard after fn ran, also when fn failed.
func (cs *CatalogService) EditWizard(id string, fn func(w *wizard.Wizard) error) (WizardView, error) {
	var view WizardView
	err := cs.sessions.Do(id, func(w *wizard.Wizard) error {
		fnErr := fn(w)
		view = newWizardView(id, w)
		return fnErr
	})
	return view, err
}

// AdvanceWizard validates the current step and moves forward.
func (cs *CatalogService) AdvanceWizard(_ context.Context, id string) (WizardView, error) {
	return cs.EditWizard(id, func(w *wizard.Wizard) error {
		step := w.State().Current
		err := w.Advance()
		if _, ok := validation.AsErrors(err); ok {
			metrics.ValidationFailures.WithLabelValues(step.String()).Inc()
		}
		return err
	})
}

// SubmitWizard saves the wizard product: added when new, replaced otherwise.
// The session is closed once the store accepted the product.
func (cs *CatalogService) SubmitWizard(ctx context.Context, id string) (SubmitResult, error) {
	var result SubmitResult
	err := cs.sessions.Do(id, func(w *wizard.Wizard) error {
		result.WasUpdate = w.IsUpdate()
		err := w.SubmitFinal(func(p *model.Product) error {
			saved, err := cs.persist(ctx, p)
			if err != nil {
				return err
			}
			result.Product = saved
			return nil
		})
		if _, ok := validation.AsErrors(err); ok {
			metrics.ValidationFailures.WithLabelValues("submit").Inc()
		}
		return err
	})
	if err != nil {
		return SubmitResult{}, err
	}

	metrics.WizardsSubmitted.Inc()
	action := model.ProductCreated
	if result.WasUpdate {
		metrics.ProductsUpdated.Inc()
		action = model.ProductUpdated
	} else {
		metrics.ProductsCreated.Inc()
	}
	cs.notify(ctx, model.NewProductEvent(action, result.Product))

	return result, nil
}

// DiscardWizard closes the session without saving. Modified wizards need confirmed set.
func (cs *CatalogService) DiscardWizard(_ context.Context, id string, confirmed bool) error {
	err := cs.sessions.Do(id, func(w *wizard.Wizard) error {
		return w.Discard(confirmed)
	})
	if err != nil {
		return err
	}
	metrics.WizardsDiscarded.WithLabelValues("user").Inc()
	return nil
}

func (cs *CatalogService) persist(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.IsNew() {
		return cs.store.Add(ctx, p)
	}

	updated, err := cs.store.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("product %s was removed while being edited: %w", p.ID, repository.ErrNotFound)
	}
	return cs.store.FindByID(ctx, p.ID)
}

func (cs *CatalogService) notify(ctx context.Context, event model.ProductEvent) {
	if cs.notifier == nil {
		return
	}
	if err := cs.notifier.Notify(ctx, event); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to send product notification", slog.Any("err", err),
			slog.String("action", string(event.Action)), slog.String("product_id", event.ProductID))
	}
}

func newWizardView(id string, w *wizard.Wizard) WizardView {
	return WizardView{
		ID:       id,
		State:    w.State(),
		IsUpdate: w.IsUpdate(),
		Product:  w.Product(),
		Specs:    w.Specs(),
	}
}
