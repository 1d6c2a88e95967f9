package checks

import (
	"context"
	"fmt"

	"brother-bridge/core/storage"
)

// Storage verifies the artifact bucket exists and the object store answers.
func Storage(ctx context.Context, client storage.Client, bucket string) error {
	if client == nil {
		return fmt.Errorf("object storage not configured")
	}

	ok, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to reach object storage: %w", err)
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", bucket)
	}
	return nil
}
