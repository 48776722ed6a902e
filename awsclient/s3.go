package awsclient

import (
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewPresigner builds an S3 presign client. Custom endpoints use path-style
// addressing, which LocalStack expects.
func NewPresigner(cfg sdkaws.Config) *s3.PresignClient {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != nil {
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client)
}

// PublicBaseURL is where objects in bucket can be read once uploaded.
func PublicBaseURL(bucket, region, endpoint string) string {
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	if region == "" || region == "us-east-1" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}
