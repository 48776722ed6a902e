package awsclient

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"go.uber.org/zap"
)

// Options controls how the shared AWS config is built.
type Options struct {
	Region   string
	Endpoint string // LocalStack or another S3/SNS/DynamoDB compatible endpoint
	// Static credentials, used only with a custom endpoint.
	AccessKeyID     string
	SecretAccessKey string
}

// LoadAWSConfig loads the default credential chain and, when an endpoint is
// given, points every client at it.
func LoadAWSConfig(ctx context.Context, opts Options, logger *zap.Logger) (sdkaws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Endpoint != "" && opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(opts.Endpoint)
		logger.Info("Custom AWS endpoint configured", zap.String("endpoint", opts.Endpoint), zap.String("region", cfg.Region))
	}
	return cfg, nil
}
