package services

import (
	"context"

	"github.com/Atlas00000/productvisualizer/models"

	"go.uber.org/zap"
)

// CartSink receives add-to-cart events. Implementations live in the kafka and
// awsclient packages.
type CartSink interface {
	Publish(ctx context.Context, event models.CartEvent) error
}

// LogSink writes cart events to the application log. It is the default when
// no broker is configured.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Publish(_ context.Context, event models.CartEvent) error {
	s.Logger.Info("Cart item added",
		zap.String("customization_id", event.CustomizationID),
		zap.String("product_id", event.ProductID),
		zap.String("user_id", event.UserID),
		zap.Float64("total_price", event.TotalPrice),
	)
	return nil
}
