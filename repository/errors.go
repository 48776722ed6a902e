package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.mongodb.org/mongo-driver/mongo"
)

// unreachable reports driver failures that mean the store could not be
// reached, as opposed to a request the store rejected.
func unreachable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	// IsTimeout covers server selection timeouts.
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var missingTable *types.ResourceNotFoundException
	return errors.As(err, &missingTable)
}

// storeError wraps a driver error for op. Connectivity failures also match
// ErrStoreUnavailable so callers answer 503 after a runtime outage too.
func storeError(op string, err error) error {
	if unreachable(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
