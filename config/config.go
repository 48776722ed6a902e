package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverDynamo = "dynamodb"
)

// Cart sinks.
const (
	SinkLog   = "log"
	SinkKafka = "kafka"
	SinkSNS   = "sns"
)

// Config holds all configuration for the API server and the seed tool.
type Config struct {
	Port   string
	AppEnv string

	MongoURI    string
	MongoDB     string
	StoreDriver string
	DynamoTable string
	CORSOrigin  string
	RedisURL    string

	CartSink        string
	KafkaBrokers    []string
	KafkaCartTopic  string
	CartSNSTopicARN string

	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	S3Prefix           string

	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		AppEnv:             getEnv("APP_ENV", "development"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDB:            getEnv("MONGODB_DB", "productvisualizer"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		DynamoTable:        getEnv("DDB_TABLE_PRODUCTS", "Products"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:8000"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		CartSink:           strings.ToLower(getEnv("CART_SINK", SinkLog)),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaCartTopic:     getEnv("KAFKA_CART_TOPIC", "cart.item-added"),
		CartSNSTopicARN:    os.Getenv("CART_SNS_TOPIC_ARN"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:           getEnv("AWS_S3_BUCKET", "productvisualizer-assets"),
		S3Prefix:           getEnv("AWS_S3_PREFIX", "models/"),
	}

	var err error
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverDynamo:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.CartSink {
	case SinkLog, SinkKafka, SinkSNS:
	default:
		return nil, fmt.Errorf("unknown CART_SINK %q", cfg.CartSink)
	}
	if cfg.S3Prefix != "" && !strings.HasSuffix(cfg.S3Prefix, "/") {
		cfg.S3Prefix += "/"
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV selects production logging.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
