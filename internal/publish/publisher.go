// Package publish delivers finished mosaic artifacts to their destination:
// a local directory for direct serving, or an S3 bucket for CDN-backed
// hosting. Publishing is a separate, best-effort step after composition --
// a failed publish leaves the composed file on disk.
package publish

import (
	"context"
	"errors"
)

// ErrS3NotConfigured is returned when S3 publishing is requested without
// bucket configuration.
var ErrS3NotConfigured = errors.New("S3 publishing not configured (set S3_BUCKET and S3_REGION)")

// Publisher delivers one local artifact under the given key and returns the
// location it ended up at (a path or URL).
type Publisher interface {
	Publish(ctx context.Context, localPath, key string) (string, error)
}
