package domain

import (
	"context"
	"time"
)

// UploadURLSigner issues pre-signed upload URLs for object storage.
type UploadURLSigner interface {
	SignUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
}

// UploadPurpose names the kind of file being uploaded; it decides the
// object key layout.
type UploadPurpose string

const (
	UploadProfilePhoto  UploadPurpose = "Profile_Photo"
	UploadEventBackdrop UploadPurpose = "Event_Backdrop"
)

// FileUpload is the signed upload grant returned to the client.
type FileUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// UploadService issues upload URLs for client-side file uploads.
type UploadService interface {
	GetFileUploadURL(ctx context.Context, userID string, purpose UploadPurpose, contentType string) (*FileUpload, error)
}
