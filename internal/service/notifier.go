package service

import (
	"context"
	"log/slog"

	"github.com/iyhunko/product-catalog/internal/model"
)

// Notifier receives an event after every successful product write.
type Notifier interface {
	Notify(ctx context.Context, event model.ProductEvent) error
}

// LogNotifier writes product events to the default logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, event model.ProductEvent) error {
	slog.Info("Product notification",
		slog.String("action", string(event.Action)),
		slog.String("product_id", event.ProductID),
		slog.String("title", event.Title),
		slog.String("price", event.Price),
		slog.String("category", string(event.Category)),
	)
	return nil
}
