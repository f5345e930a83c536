// Package storage wraps object-storage uploads with progress reporting and
// holds the advisory pre-upload validators. The validators never run inside
// Upload itself; callers reject bad files before any bytes move.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/iscottycodes/contentcontest/internal/backend"
)

// uploadChunkSize controls how often ProgressFunc fires. Small enough that
// large video uploads report usable percentages.
const uploadChunkSize = 256 * 1024

// ProgressFunc receives the percentage of bytes transferred so far.
// Invocation frequency is not guaranteed.
type ProgressFunc func(percent float64)

// Uploader uploads files to the configured bucket.
type Uploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewUploader creates an Uploader over a bucket handle. bucketName is used
// to build public URLs for completed uploads. A nil bucket is accepted;
// Upload and Delete then fail with backend.ErrNotConfigured.
func NewUploader(bucket *gcs.BucketHandle, bucketName string) *Uploader {
	return &Uploader{bucket: bucket, bucketName: bucketName}
}

// Upload streams r to objectPath and returns the public URL once the
// transfer completes. size is the total byte count used for progress
// percentages; onProgress may be nil. Transport errors are returned
// unchanged.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, size int64, objectPath, contentType string, onProgress ProgressFunc) (string, error) {
	if u.bucket == nil {
		return "", backend.ErrNotConfigured
	}

	w := u.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.ChunkSize = uploadChunkSize
	if onProgress != nil && size > 0 {
		w.ProgressFunc = func(written int64) {
			onProgress(float64(written) / float64(size) * 100)
		}
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	if onProgress != nil {
		onProgress(100)
	}
	return u.PublicURL(objectPath), nil
}

// Delete removes an object. Used as the compensating action when a
// document write fails after its file already uploaded.
func (u *Uploader) Delete(ctx context.Context, objectPath string) error {
	if u.bucket == nil {
		return backend.ErrNotConfigured
	}
	return u.bucket.Object(objectPath).Delete(ctx)
}

// PublicURL returns the publicly reachable URL for an uploaded object.
func (u *Uploader) PublicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, url.PathEscape(objectPath))
}

// SubmissionPath builds the destination path for a submission file.
// The submission ID is pre-allocated by the caller before the document
// exists, matching the two-phase upload flow.
func SubmissionPath(submissionID, filename string) string {
	return fmt.Sprintf("submissions/%s/%s%s", submissionID, uuid.New().String(), path.Ext(filename))
}

// SponsorLogoPath builds the destination path for a sponsor logo.
func SponsorLogoPath(sponsorID, filename string) string {
	return fmt.Sprintf("sponsors/%s/logo%s", sponsorID, path.Ext(filename))
}

// BlogImagePath builds the destination path for a blog featured image.
func BlogImagePath(postID, filename string) string {
	return fmt.Sprintf("blog/%s/%s%s", postID, uuid.New().String(), path.Ext(filename))
}

// ValidateFileSize reports whether a file of size bytes fits within
// maxSizeMB megabytes. The boundary size == maxSizeMB*1024*1024 is valid.
func ValidateFileSize(size int64, maxSizeMB int64) bool {
	return size <= maxSizeMB*1024*1024
}

// ValidateFileType reports whether the MIME type matches one of the
// allowed prefixes.
func ValidateFileType(mimeType string, allowedPrefixes []string) bool {
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

// FormatFileSize renders a byte count in human-readable form.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if size == float64(int64(size)) {
		return fmt.Sprintf("%d %s", int64(size), units[i])
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
