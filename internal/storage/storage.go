// Package storage turns banner object keys into URLs the chat client can load.
package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry applies when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaStorage resolves stored banner media into URLs a chat client can fetch.
type MediaStorage interface {
	// GeneratePresignedDownloadURL returns a GET URL for objectKey valid for
	// at least half of expires.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
