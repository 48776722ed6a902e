package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Atlas00000/productvisualizer/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable is returned by every call when the store was never connected.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ProductRepo defines the product persistence operations.
// Implementations must update a single document atomically.
type ProductRepo interface {
	FindActive(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateMany(ctx context.Context, products []models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, patch ProductPatch) (*models.Product, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
}

// CustomizationRepo defines the customization persistence operations.
type CustomizationRepo interface {
	Create(ctx context.Context, c *models.Customization) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customization, error)
	FindActiveByUser(ctx context.Context, userID string) ([]models.Customization, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error
}

// ProductPatch is a partial product update. Nil fields are not written, so a
// concurrent change to another field (a soft delete, say) survives.
type ProductPatch struct {
	Name        *string
	Description *string
	BasePrice   *float64
	ModelURL    *string
	IsActive    *bool
	Colors      *[]models.ColorOption
	Materials   *[]models.MaterialOption
	Components  *[]models.ComponentOption
	UpdatedAt   time.Time
}

// IdempotencyPending is the value held by a key whose request is still running.
const IdempotencyPending = "pending"

// IdempotencyStore remembers which record a client request key produced.
type IdempotencyStore interface {
	// Reserve claims key for a new request. It reports false when the key is
	// already held, by a finished or an in-flight request.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Get returns the record id, IdempotencyPending, or "" for an unknown key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, recordID string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// Stats is the product count summary printed by the seed tool and health check.
type Stats struct {
	TotalProducts  int64 `json:"totalProducts"`
	ActiveProducts int64 `json:"activeProducts"`
}
