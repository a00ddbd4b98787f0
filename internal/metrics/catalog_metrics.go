package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "The total number of products deleted",
	})

	WizardsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_wizards_opened_total",
		Help: "The total number of wizard sessions opened",
	})

	WizardsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_wizards_submitted_total",
		Help: "The total number of wizard sessions submitted",
	})

	// WizardsDiscarded counts sessions closed without saving, including expired ones.
	WizardsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_wizards_discarded_total",
		Help: "The total number of wizard sessions closed without saving",
	}, []string{"reason"})

	// ValidationFailures counts rejected step advances and submissions by step name.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_validation_failures_total",
		Help: "The total number of failed wizard validations",
	}, []string{"step"})
)
