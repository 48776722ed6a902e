package repository

import (
	"context"
	"time"

	"github.com/Atlas00000/productvisualizer/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unavailable stands in for a store that could not be connected at startup.
// Every operation fails with ErrStoreUnavailable so callers get a typed
// result instead of probing a readiness flag.
type Unavailable struct {
	Reason error
}

func (u Unavailable) err() error { return ErrStoreUnavailable }

func (u Unavailable) FindActive(context.Context) ([]models.Product, error) { return nil, u.err() }

func (u Unavailable) FindByID(context.Context, primitive.ObjectID) (*models.Product, error) {
	return nil, u.err()
}

func (u Unavailable) Create(context.Context, *models.Product) error { return u.err() }

func (u Unavailable) CreateMany(context.Context, []models.Product) error { return u.err() }

func (u Unavailable) Update(context.Context, primitive.ObjectID, ProductPatch) (*models.Product, error) {
	return nil, u.err()
}

func (u Unavailable) SetActive(context.Context, primitive.ObjectID, bool, time.Time) error {
	return u.err()
}

func (u Unavailable) DeleteAll(context.Context) (int64, error) { return 0, u.err() }

func (u Unavailable) Stats(context.Context) (Stats, error) { return Stats{}, u.err() }

func (u Unavailable) Ping(context.Context) error {
	if u.Reason != nil {
		return u.Reason
	}
	return u.err()
}

// UnavailableCustomizations is the CustomizationRepo counterpart of Unavailable.
type UnavailableCustomizations struct{}

func (UnavailableCustomizations) Create(context.Context, *models.Customization) error {
	return ErrStoreUnavailable
}

func (UnavailableCustomizations) FindByID(context.Context, primitive.ObjectID) (*models.Customization, error) {
	return nil, ErrStoreUnavailable
}

func (UnavailableCustomizations) FindActiveByUser(context.Context, string) ([]models.Customization, error) {
	return nil, ErrStoreUnavailable
}

func (UnavailableCustomizations) SetActive(context.Context, primitive.ObjectID, bool, time.Time) error {
	return ErrStoreUnavailable
}
