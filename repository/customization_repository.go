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
)

const CustomizationsCollection = "customizations"

type CustomizationRepository struct {
	collection *mongo.Collection
}

func NewCustomizationRepository(db *mongo.Database) *CustomizationRepository {
	return &CustomizationRepository{
		collection: db.Collection(CustomizationsCollection),
	}
}

func (r *CustomizationRepository) Create(ctx context.Context, c *models.Customization) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return storeError("insert customization", err)
	}
	return nil
}

func (r *CustomizationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customization, error) {
	var c models.Customization
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("find customization "+id.Hex(), err)
	}
	return &c, nil
}

// FindActiveByUser returns the user's active customizations, newest first.
func (r *CustomizationRepository) FindActiveByUser(ctx context.Context, userID string) ([]models.Customization, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID, "isActive": true}, opts)
	if err != nil {
		return nil, storeError("find customizations", err)
	}
	defer cursor.Close(ctx)

	result := []models.Customization{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, storeError("decode customizations", err)
	}
	return result, nil
}

func (r *CustomizationRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": at}},
	)
	if err != nil {
		return storeError("update customization "+id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup index used by FindActiveByUser.
func (r *CustomizationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}},
	})
	if err != nil {
		return storeError("create customization index", err)
	}
	return nil
}
