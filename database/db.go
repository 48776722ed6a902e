package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNoURI is returned by ConnectMongo when no connection string is configured.
var ErrNoURI = errors.New("mongodb uri not set")

// Mongo is a live connection handle. Repositories are built from DB; a nil
// *Mongo means the store is not connected.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongo connects to MongoDB using the provided URI and database name.
func ConnectMongo(ctx context.Context, mongoURL, dbName string, logger *zap.Logger) (*Mongo, error) {
	if mongoURL == "" {
		return nil, ErrNoURI
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Info("Connecting to MongoDB...")
	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("MongoDB connected", zap.String("database", dbName))
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Close disconnects from MongoDB
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
