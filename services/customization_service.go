package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Atlas00000/productvisualizer/models"
	"github.com/Atlas00000/productvisualizer/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	customizationNotFound = "Customization not found"
	idempotencyTTL        = 24 * time.Hour
)

// CustomizationService saves priced product configurations and hands them to the cart.
type CustomizationService interface {
	Create(ctx context.Context, req CustomizationCreateRequest, idempotencyKey string) (*models.Customization, bool, error)
	GetByID(ctx context.Context, id string) (*models.Customization, error)
	ListByUser(ctx context.Context, userID string) ([]models.Customization, error)
	Deactivate(ctx context.Context, id string) error
}

type customizationServiceImpl struct {
	products       repository.ProductRepo
	customizations repository.CustomizationRepo
	idempotency    repository.IdempotencyStore
	cart           CartSink
	logger         *zap.Logger
	now            func() time.Time
}

// NewCustomizationService wires the customization flow. idem may be nil, in
// which case Idempotency-Key headers are ignored.
func NewCustomizationService(
	products repository.ProductRepo,
	customizations repository.CustomizationRepo,
	idem repository.IdempotencyStore,
	cart CartSink,
	logger *zap.Logger,
) CustomizationService {
	if cart == nil {
		cart = LogSink{Logger: logger}
	}
	return &customizationServiceImpl{
		products:       products,
		customizations: customizations,
		idempotency:    idem,
		cart:           cart,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create prices the selection against the live product and stores a snapshot.
// The returned bool is true when an earlier request with the same key is replayed.
func (s *customizationServiceImpl) Create(ctx context.Context, req CustomizationCreateRequest, idempotencyKey string) (*models.Customization, bool, error) {
	if err := validateStruct(req); err != nil {
		return nil, false, err
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		return nil, false, err
	}

	idempotencyKey = strings.TrimSpace(idempotencyKey)
	reserved := false
	if idempotencyKey != "" && s.idempotency != nil {
		ok, err := s.idempotency.Reserve(ctx, idempotencyKey, idempotencyTTL)
		switch {
		case err != nil:
			s.logger.Warn("Idempotency reservation failed", zap.String("key", idempotencyKey), zap.Error(err))
		case ok:
			reserved = true
		default:
			existing, err := s.replay(ctx, idempotencyKey)
			if err != nil {
				return nil, false, err
			}
			if existing != nil {
				return existing, true, nil
			}
		}
	}

	c, product, err := s.create(ctx, req, productID)
	if err != nil {
		if reserved {
			if rerr := s.idempotency.Release(ctx, idempotencyKey); rerr != nil {
				s.logger.Warn("Failed to release idempotency key", zap.String("key", idempotencyKey), zap.Error(rerr))
			}
		}
		return nil, false, err
	}

	if idempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Set(ctx, idempotencyKey, c.ID.Hex(), idempotencyTTL); err != nil {
			s.logger.Warn("Failed to store idempotency key", zap.String("key", idempotencyKey), zap.Error(err))
		}
	}

	event := models.CartEvent{
		EventType:          models.CartEventItemAdded,
		CustomizationID:    c.ID.Hex(),
		ProductID:          product.ID.Hex(),
		ProductName:        product.Name,
		UserID:             c.UserID,
		SelectedColor:      c.Configuration.SelectedColor,
		SelectedMaterial:   c.Configuration.SelectedMaterial,
		SelectedComponents: c.Configuration.SelectedComponents,
		TotalPrice:         c.TotalPrice,
		Timestamp:          c.CreatedAt,
	}
	if err := s.cart.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish cart event", zap.String("customization_id", c.ID.Hex()), zap.Error(err))
	}

	s.logger.Info("Customization created",
		zap.String("id", c.ID.Hex()),
		zap.String("product_id", product.ID.Hex()),
		zap.Float64("total_price", c.TotalPrice),
	)
	return c, false, nil
}

func (s *customizationServiceImpl) create(ctx context.Context, req CustomizationCreateRequest, productID primitive.ObjectID) (*models.Customization, *models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, fromRepoError(err, productNotFound)
	}
	if !product.IsActive {
		return nil, nil, newNotFound(productNotFound)
	}

	quote, err := QuoteSelection(product, Selection{
		Color:      req.SelectedColor,
		Material:   req.SelectedMaterial,
		Components: req.SelectedComponents,
	})
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	c := &models.Customization{
		ProductID: product.ID,
		UserID:    strings.TrimSpace(req.UserID),
		Configuration: models.Configuration{
			SelectedColor:      req.SelectedColor,
			SelectedMaterial:   req.SelectedMaterial,
			SelectedComponents: append([]string{}, req.SelectedComponents...),
		},
		TotalPrice: quote.Total,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := validateStruct(c); err != nil {
		return nil, nil, err
	}
	if err := s.customizations.Create(ctx, c); err != nil {
		return nil, nil, fromRepoError(err, customizationNotFound)
	}
	return c, product, nil
}

// replay loads the customization recorded for a key that is already held.
// A key whose first request is still running is a conflict. It returns nil
// when the key expired or its record can no longer be loaded.
func (s *customizationServiceImpl) replay(ctx context.Context, key string) (*models.Customization, error) {
	recordID, err := s.idempotency.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	switch recordID {
	case "":
		return nil, nil
	case repository.IdempotencyPending:
		return nil, &ServiceError{
			Kind:       KindConflict,
			StatusCode: http.StatusConflict,
			Message:    "A request with this Idempotency-Key is still in progress",
		}
	}
	oid, err := parseID(recordID)
	if err != nil {
		return nil, nil
	}
	existing, err := s.customizations.FindByID(ctx, oid)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Idempotent replay failed", zap.String("key", key), zap.Error(err))
		}
		return nil, nil
	}
	return existing, nil
}

func (s *customizationServiceImpl) GetByID(ctx context.Context, id string) (*models.Customization, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, err := s.customizations.FindByID(ctx, oid)
	if err != nil {
		return nil, fromRepoError(err, customizationNotFound)
	}
	return c, nil
}

func (s *customizationServiceImpl) ListByUser(ctx context.Context, userID string) ([]models.Customization, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, newValidationError("userId is required")
	}
	list, err := s.customizations.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, fromRepoError(err, customizationNotFound)
	}
	if list == nil {
		list = []models.Customization{}
	}
	return list, nil
}

func (s *customizationServiceImpl) Deactivate(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.customizations.SetActive(ctx, oid, false, s.now()); err != nil {
		return fromRepoError(err, customizationNotFound)
	}
	s.logger.Info("Customization deactivated", zap.String("id", id))
	return nil
}
