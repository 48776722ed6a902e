package services_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Atlas00000/productvisualizer/services"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePresigner struct {
	input   *s3.PutObjectInput
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = params
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{
		URL:          "https://assets.example.com/" + *params.Key + "?X-Amz-Signature=abc",
		Method:       http.MethodPut,
		SignedHeader: http.Header{"Content-Type": []string{*params.ContentType}, "Host": []string{"assets.example.com"}},
	}, nil
}

var testAssetConfig = services.AssetConfig{
	Bucket:        "productvisualizer-assets",
	Prefix:        "models/",
	PublicBaseURL: "https://productvisualizer-assets.s3.amazonaws.com",
}

func TestAssetService_PresignUpload(t *testing.T) {
	f := newCustomizationFixture(t)
	presigner := &fakePresigner{}
	svc := services.NewAssetService(f.products, presigner, testAssetConfig, zap.NewNop())

	up, err := svc.PresignUpload(context.Background(), f.product.ID.Hex(), services.PresignRequest{
		Kind:        "model",
		Filename:    "chair.GLB",
		ContentType: "model/gltf-binary",
	})
	require.NoError(t, err)

	prefix := "models/" + f.product.ID.Hex() + "/model/"
	assert.True(t, strings.HasPrefix(up.Key, prefix), up.Key)
	assert.True(t, strings.HasSuffix(up.Key, ".glb"), up.Key)
	assert.Equal(t, http.MethodPut, up.Method)
	assert.Equal(t, testAssetConfig.PublicBaseURL+"/"+up.Key, up.PublicURL)
	assert.Equal(t, int64(900), up.ExpiresIn)
	assert.Equal(t, "model/gltf-binary", up.Headers["Content-Type"])

	require.NotNil(t, presigner.input)
	assert.Equal(t, "productvisualizer-assets", *presigner.input.Bucket)
	assert.Equal(t, up.Key, *presigner.input.Key)
	assert.Equal(t, 15*time.Minute, presigner.expires)
}

func TestAssetService_DefaultExtensionAndExpiry(t *testing.T) {
	f := newCustomizationFixture(t)
	presigner := &fakePresigner{}
	svc := services.NewAssetService(f.products, presigner, testAssetConfig, zap.NewNop())

	up, err := svc.PresignUpload(context.Background(), f.product.ID.Hex(), services.PresignRequest{
		Kind:           "texture",
		Filename:       "leather",
		ContentType:    "image/png",
		ExpiresSeconds: 120,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(up.Key, ".png"), up.Key)
	assert.Equal(t, int64(120), up.ExpiresIn)
	assert.Equal(t, 2*time.Minute, presigner.expires)
}

func TestAssetService_Validation(t *testing.T) {
	f := newCustomizationFixture(t)
	presigner := &fakePresigner{}
	svc := services.NewAssetService(f.products, presigner, testAssetConfig, zap.NewNop())

	_, err := svc.PresignUpload(context.Background(), f.product.ID.Hex(), services.PresignRequest{
		Kind:           "video",
		ContentType:    "video/mp4",
		ExpiresSeconds: 7200,
	})
	require.Error(t, err)
	details := validationDetails(t, err)
	assert.Len(t, details, 4)
	assert.Nil(t, presigner.input)

	_, err = svc.PresignUpload(context.Background(), "bad-id", services.PresignRequest{})
	assert.True(t, errors.Is(err, services.ErrMalformedID))
}

func TestAssetService_ExpiryBounds(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		valid   bool
	}{
		{"default", 0, true},
		{"one hour", 3600, true},
		{"just over", 3601, false},
		{"negative", -1, false},
		{"overflows as duration", 9223372037, false},
		{"max int64", math.MaxInt64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCustomizationFixture(t)
			presigner := &fakePresigner{}
			svc := services.NewAssetService(f.products, presigner, testAssetConfig, zap.NewNop())

			upload, err := svc.PresignUpload(context.Background(), f.product.ID.Hex(), services.PresignRequest{
				Kind:           "model",
				Filename:       "chair.glb",
				ContentType:    "model/gltf-binary",
				ExpiresSeconds: tt.seconds,
			})
			if !tt.valid {
				require.Error(t, err)
				assert.True(t, errors.Is(err, services.ErrValidation))
				assert.Nil(t, presigner.input)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, upload.ExpiresIn)
			assert.True(t, presigner.expires > 0)
		})
	}
}

func TestAssetService_UnknownProduct(t *testing.T) {
	f := newCustomizationFixture(t)
	svc := services.NewAssetService(f.products, &fakePresigner{}, testAssetConfig, zap.NewNop())

	_, err := svc.PresignUpload(context.Background(), "64b7f0c2a1b2c3d4e5f60718", services.PresignRequest{
		Kind:        "model",
		Filename:    "chair.gltf",
		ContentType: "model/gltf+json",
	})
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestAssetService_NotConfigured(t *testing.T) {
	f := newCustomizationFixture(t)
	svc := services.NewAssetService(f.products, nil, testAssetConfig, zap.NewNop())

	_, err := svc.PresignUpload(context.Background(), f.product.ID.Hex(), services.PresignRequest{
		Kind:        "model",
		Filename:    "chair.gltf",
		ContentType: "model/gltf+json",
	})
	require.Error(t, err)
	var svcErr *services.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
	assert.NotEmpty(t, svcErr.Note)
}

func TestAssetService_PresignFailure(t *testing.T) {
	f := newCustomizationFixture(t)
	svc := services.NewAssetService(f.products, &fakePresigner{err: errors.New("no credentials")}, testAssetConfig, zap.NewNop())

	_, err := svc.PresignUpload(context.Background(), f.product.ID.Hex(), services.PresignRequest{
		Kind:        "component",
		Filename:    "legs.bin",
		ContentType: "application/octet-stream",
	})
	assert.True(t, errors.Is(err, services.ErrUnhandled))
}
