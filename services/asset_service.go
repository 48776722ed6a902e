package services

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Atlas00000/productvisualizer/repository"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPresignExpiry = 15 * time.Minute
	maxPresignExpiry     = time.Hour
)

// Presigner is the subset of *s3.PresignClient used for uploads.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AssetConfig locates uploaded product assets.
type AssetConfig struct {
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

var assetKinds = map[string]bool{
	"model":     true,
	"texture":   true,
	"component": true,
}

// extension used when the filename carries none
var assetContentTypes = map[string]string{
	"model/gltf+json":          ".gltf",
	"model/gltf-binary":        ".glb",
	"application/octet-stream": ".bin",
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/webp":               ".webp",
}

// AssetService hands out presigned S3 URLs for product 3D models and textures.
type AssetService interface {
	PresignUpload(ctx context.Context, productID string, req PresignRequest) (*PresignedUpload, error)
}

type assetServiceImpl struct {
	products  repository.ProductRepo
	presigner Presigner
	cfg       AssetConfig
	logger    *zap.Logger
}

// NewAssetService creates an AssetService. A nil presigner disables uploads.
func NewAssetService(products repository.ProductRepo, presigner Presigner, cfg AssetConfig, logger *zap.Logger) AssetService {
	return &assetServiceImpl{products: products, presigner: presigner, cfg: cfg, logger: logger}
}

func (s *assetServiceImpl) PresignUpload(ctx context.Context, productID string, req PresignRequest) (*PresignedUpload, error) {
	oid, err := parseID(productID)
	if err != nil {
		return nil, err
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	filename := path.Base(strings.TrimSpace(req.Filename))

	var details []string
	if !assetKinds[kind] {
		details = append(details, "kind must be one of model, texture, component")
	}
	if filename == "" || filename == "." || filename == "/" {
		details = append(details, "filename is required")
	}
	defaultExt, ok := assetContentTypes[contentType]
	if !ok {
		details = append(details, fmt.Sprintf("contentType %q is not supported", req.ContentType))
	}
	// compared in seconds: converting first can overflow
	if req.ExpiresSeconds < 0 || req.ExpiresSeconds > int64(maxPresignExpiry/time.Second) {
		details = append(details, fmt.Sprintf("expiresIn must be between 0 and %d", int64(maxPresignExpiry.Seconds())))
	}
	if len(details) > 0 {
		return nil, newValidationError(details...)
	}

	if _, err := s.products.FindByID(ctx, oid); err != nil {
		return nil, fromRepoError(err, productNotFound)
	}

	if s.presigner == nil || s.cfg.Bucket == "" {
		return nil, &ServiceError{
			Kind:       KindStoreUnavailable,
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Asset storage not configured",
			Note:       "Set AWS_S3_BUCKET and AWS credentials to enable uploads",
		}
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = defaultExt
	}
	key := fmt.Sprintf("%s%s/%s/%s%s", s.cfg.Prefix, oid.Hex(), kind, uuid.NewString(), ext)

	expiry := defaultPresignExpiry
	if req.ExpiresSeconds > 0 {
		expiry = time.Duration(req.ExpiresSeconds) * time.Second
	}

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.Bucket,
		Key:         &key,
		ContentType: &contentType,
	}, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, &ServiceError{Kind: KindUnhandled, StatusCode: http.StatusInternalServerError, Message: "Server error", Err: err}
	}

	headers := make(map[string]string, len(presigned.SignedHeader))
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	s.logger.Info("Asset upload presigned", zap.String("product_id", oid.Hex()), zap.String("key", key))
	return &PresignedUpload{
		UploadURL: presigned.URL,
		Method:    presigned.Method,
		Key:       key,
		PublicURL: strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key,
		Headers:   headers,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}
