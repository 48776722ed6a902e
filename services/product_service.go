package services

import (
	"context"
	"strings"
	"time"

	"github.com/Atlas00000/productvisualizer/models"
	"github.com/Atlas00000/productvisualizer/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const productNotFound = "Product not found"

// ProductService defines the catalog operations.
type ProductService interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*models.Product, error)
	SoftDelete(ctx context.Context, id string) error
}

type productServiceImpl struct {
	repo   repository.ProductRepo
	logger *zap.Logger
	now    func() time.Time
}

// NewProductService creates a new ProductService over repo.
func NewProductService(repo repository.ProductRepo, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *productServiceImpl) ListActive(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fromRepoError(err, productNotFound)
	}
	return products, nil
}

func (s *productServiceImpl) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fromRepoError(err, productNotFound)
	}
	return product, nil
}

func (s *productServiceImpl) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	applyProductInput(product, in)
	if err := validateCreate(product, in); err != nil {
		return nil, err
	}

	now := s.now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fromRepoError(err, productNotFound)
	}

	s.logger.Info("Product created", zap.String("id", product.ID.Hex()), zap.String("name", product.Name))
	return product, nil
}

// Update validates the present fields of in merged onto the stored product,
// then writes only those fields. Fields it does not carry, isActive among
// them, keep whatever the store holds at write time.
func (s *productServiceImpl) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fromRepoError(err, productNotFound)
	}

	merged := *current
	applyProductInput(&merged, in)
	if err := validateStruct(&merged); err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, oid, productPatch(in, s.now()))
	if err != nil {
		return nil, fromRepoError(err, productNotFound)
	}

	s.logger.Info("Product updated", zap.String("id", id))
	return product, nil
}

// SoftDelete marks the product inactive. Customizations that reference it are
// left as they are.
func (s *productServiceImpl) SoftDelete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, oid, false, s.now()); err != nil {
		return fromRepoError(err, productNotFound)
	}
	s.logger.Info("Product deactivated", zap.String("id", id))
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, newMalformedID(id)
	}
	return oid, nil
}

func applyProductInput(p *models.Product, in ProductInput) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.BasePrice != nil {
		p.BasePrice = *in.BasePrice
	}
	if in.ModelURL != nil {
		p.ModelURL = *in.ModelURL
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if opts := in.CustomizationOptions; opts != nil {
		if opts.Colors != nil {
			p.CustomizationOptions.Colors = *opts.Colors
		}
		if opts.Materials != nil {
			p.CustomizationOptions.Materials = *opts.Materials
		}
		if opts.Components != nil {
			p.CustomizationOptions.Components = *opts.Components
		}
	}
	// Stored and returned as [] rather than null.
	if p.CustomizationOptions.Colors == nil {
		p.CustomizationOptions.Colors = []models.ColorOption{}
	}
	if p.CustomizationOptions.Materials == nil {
		p.CustomizationOptions.Materials = []models.MaterialOption{}
	}
	if p.CustomizationOptions.Components == nil {
		p.CustomizationOptions.Components = []models.ComponentOption{}
	}
}

func productPatch(in ProductInput, at time.Time) repository.ProductPatch {
	patch := repository.ProductPatch{
		Description: in.Description,
		BasePrice:   in.BasePrice,
		ModelURL:    in.ModelURL,
		IsActive:    in.IsActive,
		UpdatedAt:   at,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if opts := in.CustomizationOptions; opts != nil {
		if opts.Colors != nil {
			colors := orEmpty(*opts.Colors)
			patch.Colors = &colors
		}
		if opts.Materials != nil {
			materials := orEmpty(*opts.Materials)
			patch.Materials = &materials
		}
		if opts.Components != nil {
			components := orEmpty(*opts.Components)
			patch.Components = &components
		}
	}
	return patch
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// validateCreate also catches a missing basePrice, which the zero value would hide.
func validateCreate(p *models.Product, in ProductInput) error {
	var details []string
	if in.BasePrice == nil {
		details = append(details, "basePrice is required")
	}
	if err := validateStruct(p); err != nil {
		verr, ok := err.(*ServiceError)
		if !ok {
			return err
		}
		details = append(details, verr.Details...)
	}
	if len(details) > 0 {
		return newValidationError(details...)
	}
	return nil
}
