// Command seed loads the starter catalog into the configured product store.
//
//	go run ./tools/seed [-reset] [-stats]
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/Atlas00000/productvisualizer/awsclient"
	"github.com/Atlas00000/productvisualizer/config"
	"github.com/Atlas00000/productvisualizer/database"
	"github.com/Atlas00000/productvisualizer/logger"
	"github.com/Atlas00000/productvisualizer/repository"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "remove existing products before seeding")
	statsOnly := flag.Bool("stats", false, "only print product counts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Config load failed", zap.Error(err))
	}
	log := logger.Initialize(cfg.AppEnv)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo, closeFn, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Store connection failed", zap.Error(err))
	}
	defer closeFn()

	if !*statsOnly {
		if err := seed(ctx, repo, *reset, time.Now().UTC(), log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		log.Fatal("Failed to read stats", zap.Error(err))
	}
	fmt.Printf("Database Stats:\n- Total products: %d\n- Active products: %d\n", stats.TotalProducts, stats.ActiveProducts)
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.ProductRepo, func(), error) {
	if cfg.StoreDriver == config.DriverDynamo {
		awsCfg, err := awsclient.LoadAWSConfig(ctx, awsclient.Options{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.AWSEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		adapter := repository.NewDynamoAdapter(awsclient.NewDynamoClient(awsCfg), cfg.DynamoTable)
		if err := adapter.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("dynamodb table %s: %w", cfg.DynamoTable, err)
		}
		return adapter, func() {}, nil
	}

	conn, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewProductRepository(conn.DB), func() { _ = conn.Close(context.Background()) }, nil
}

// seed inserts the sample catalog, first clearing the store when reset is set.
func seed(ctx context.Context, repo repository.ProductRepo, reset bool, now time.Time, log *zap.Logger) error {
	if reset {
		removed, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		log.Info("Cleared existing products", zap.Int64("removed", removed))
	}

	products := sampleProducts(now)
	if err := repo.CreateMany(ctx, products); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	log.Info("Seeded products", zap.Int("count", len(products)))
	for _, p := range products {
		log.Info("Seeded product", zap.String("id", p.ID.Hex()), zap.String("name", p.Name), zap.Float64("base_price", p.BasePrice))
	}
	return nil
}
