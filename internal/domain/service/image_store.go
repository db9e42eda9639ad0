package service

import "context"

// ImageStore abstracts the blob storage report photos are written to.
// Uploads happen after the parent report row is committed; a failed upload
// only loses that one image, never the report.
type ImageStore interface {
	// Save writes the image bytes under the given key and returns the
	// public URL recorded on the report_images row.
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}
