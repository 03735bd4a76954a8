package services

import (
	"context"
	"testing"
	"time"

	"github.com/aibrid/zipo-server/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	lastKey         string
	lastContentType string
}

func (f *fakeSigner) SignUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	f.lastKey = key
	f.lastContentType = contentType
	return "https://bucket.example.com/" + key + "?signed", nil
}

func TestGetFileUploadURL_ProfilePhoto(t *testing.T) {
	signer := &fakeSigner{}
	svc := NewUploadService(signer)

	up, err := svc.GetFileUploadURL(context.Background(), "u1", domain.UploadProfilePhoto, "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "user/profile-photo/u1.jpeg", up.Key)
	require.Equal(t, "image/jpeg", signer.lastContentType)
	require.Contains(t, up.UploadURL, up.Key)
}

func TestGetFileUploadURL_EventBackdrop(t *testing.T) {
	signer := &fakeSigner{}
	svc := NewUploadService(signer)
	svc.(*uploadService).newID = func() string { return "backdrop-1" }

	up, err := svc.GetFileUploadURL(context.Background(), "u1", domain.UploadEventBackdrop, "image/png")
	require.NoError(t, err)
	require.Equal(t, "event/backdrop-1.png", up.Key)
}

func TestGetFileUploadURL_RejectsContentType(t *testing.T) {
	svc := NewUploadService(&fakeSigner{})

	_, err := svc.GetFileUploadURL(context.Background(), "u1", domain.UploadProfilePhoto, "image/gif")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
