package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iscottycodes/contentcontest/internal/backend"
)

func TestValidateFileSize(t *testing.T) {
	tests := []struct {
		name  string
		size  int64
		maxMB int64
		want  bool
	}{
		{"well under limit", 1024, 10, true},
		{"exactly at boundary", 10 * 1024 * 1024, 10, true},
		{"one byte over", 10*1024*1024 + 1, 10, false},
		{"zero bytes", 0, 5, true},
		{"large video under limit", 499 * 1024 * 1024, 500, true},
		{"large video over limit", 501 * 1024 * 1024, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFileSize(tt.size, tt.maxMB)
			if got != tt.want {
				t.Errorf("ValidateFileSize(%d, %d) = %v, want %v", tt.size, tt.maxMB, got, tt.want)
			}
		})
	}
}

func TestValidateFileType(t *testing.T) {
	imageTypes := []string{"image/jpeg", "image/png", "image/webp"}

	tests := []struct {
		name    string
		mime    string
		allowed []string
		want    bool
	}{
		{"exact match", "image/jpeg", imageTypes, true},
		{"prefix match", "video/mp4", []string{"video/"}, true},
		{"not allowed", "application/zip", imageTypes, false},
		{"empty mime", "", imageTypes, false},
		{"empty allow list", "image/jpeg", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFileType(tt.mime, tt.allowed)
			if got != tt.want {
				t.Errorf("ValidateFileType(%q, %v) = %v, want %v", tt.mime, tt.allowed, got, tt.want)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.50 KB"},
		{1048576, "1 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestSubmissionPath(t *testing.T) {
	p := SubmissionPath("sub-123", "photo.jpg")
	if !strings.HasPrefix(p, "submissions/sub-123/") {
		t.Errorf("SubmissionPath = %q, want submissions/sub-123/ prefix", p)
	}
	if !strings.HasSuffix(p, ".jpg") {
		t.Errorf("SubmissionPath = %q, want .jpg suffix", p)
	}
	// Object names must differ across calls for the same input.
	if p == SubmissionPath("sub-123", "photo.jpg") {
		t.Error("SubmissionPath should generate unique object names")
	}
}

func TestSponsorLogoPath(t *testing.T) {
	p := SponsorLogoPath("sp-1", "brand.png")
	if p != "sponsors/sp-1/logo.png" {
		t.Errorf("SponsorLogoPath = %q, want sponsors/sp-1/logo.png", p)
	}
}

func TestUploaderWithoutBucket(t *testing.T) {
	u := NewUploader(nil, "my-bucket")
	ctx := context.Background()

	if _, err := u.Upload(ctx, strings.NewReader("data"), 4, "p/o", "text/plain", nil); !errors.Is(err, backend.ErrNotConfigured) {
		t.Errorf("Upload err = %v, want ErrNotConfigured", err)
	}
	if err := u.Delete(ctx, "p/o"); !errors.Is(err, backend.ErrNotConfigured) {
		t.Errorf("Delete err = %v, want ErrNotConfigured", err)
	}
}

func TestPublicURL(t *testing.T) {
	u := NewUploader(nil, "my-bucket")
	got := u.PublicURL("blog/p1/image.jpg")
	want := "https://storage.googleapis.com/my-bucket/blog%2Fp1%2Fimage.jpg"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
