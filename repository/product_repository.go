package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Atlas00000/productvisualizer/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const ProductsCollection = "products"

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(ProductsCollection),
	}
}

func (r *ProductRepository) FindActive(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, storeError("find active products", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, storeError("decode products", err)
	}
	return products, nil
}

// FindByID returns the product regardless of its active flag.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("find product "+id.Hex(), err)
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return storeError("insert product", err)
	}
	return nil
}

func (r *ProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, products[i])
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return storeError("insert products", err)
	}
	return nil
}

// Update applies patch with one $set and returns the document as stored
// afterwards. Fields the patch leaves nil are not touched.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch ProductPatch) (*models.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patchFields(patch)}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("update product "+id.Hex(), err)
	}
	return &product, nil
}

func patchFields(patch ProductPatch) bson.M {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.BasePrice != nil {
		set["basePrice"] = *patch.BasePrice
	}
	if patch.ModelURL != nil {
		set["modelUrl"] = *patch.ModelURL
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}
	if patch.Colors != nil {
		set["customizationOptions.colors"] = *patch.Colors
	}
	if patch.Materials != nil {
		set["customizationOptions.materials"] = *patch.Materials
	}
	if patch.Components != nil {
		set["customizationOptions.components"] = *patch.Components
	}
	return set
}

// SetActive flips the soft-delete flag. The document is never removed.
func (r *ProductRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": at}},
	)
	if err != nil {
		return storeError("update product "+id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, storeError("clear products", err)
	}
	return result.DeletedCount, nil
}

func (r *ProductRepository) Stats(ctx context.Context) (Stats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return Stats{}, storeError("count products", err)
	}
	active, err := r.collection.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return Stats{}, storeError("count active products", err)
	}
	return Stats{TotalProducts: total, ActiveProducts: active}, nil
}

func (r *ProductRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}
