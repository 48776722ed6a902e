package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "MONGODB_URI", "MONGODB_DB", "STORE_DRIVER", "CART_SINK", "KAFKA_BROKERS", "AWS_S3_PREFIX", "RATE_LIMIT_PER_MINUTE", "REQUEST_TIMEOUT", "CORS_ORIGIN"} {
		t.Setenv(k, "")
	}

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, "productvisualizer", cfg.MongoDB)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "http://localhost:8000", cfg.CORSOrigin)
	assert.Equal(t, SinkLog, cfg.CartSink)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "models/", cfg.S3Prefix)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "DynamoDB")
	t.Setenv("CART_SINK", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("AWS_S3_PREFIX", "assets")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "20")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverDynamo, cfg.StoreDriver)
	assert.Equal(t, SinkKafka, cfg.CartSink)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "assets/", cfg.S3Prefix)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"bad rate":    {"RATE_LIMIT_PER_MINUTE", "lots"},
		"bad timeout": {"REQUEST_TIMEOUT", "30"},
		"bad driver":  {"STORE_DRIVER", "postgres"},
		"bad sink":    {"CART_SINK", "email"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := fromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0][:5])
		})
	}
}
