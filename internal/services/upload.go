package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nuid"

	"github.com/aibrid/zipo-server/internal/domain"
)

const uploadURLExpiry = 15 * time.Minute

type uploadService struct {
	signer domain.UploadURLSigner
	newID  func() string
}

func NewUploadService(signer domain.UploadURLSigner) domain.UploadService {
	return &uploadService{signer: signer, newID: nuid.Next}
}

func (s *uploadService) GetFileUploadURL(ctx context.Context, userID string, purpose domain.UploadPurpose, contentType string) (*domain.FileUpload, error) {
	var ext string
	switch contentType {
	case "image/jpeg":
		ext = "jpeg"
	case "image/png":
		ext = "png"
	default:
		return nil, domain.ErrInvalidInput
	}

	var key string
	switch purpose {
	case domain.UploadProfilePhoto:
		// One photo per user; a re-upload replaces the previous object.
		key = fmt.Sprintf("user/profile-photo/%s.%s", userID, ext)
	case domain.UploadEventBackdrop:
		key = fmt.Sprintf("event/%s.%s", s.newID(), ext)
	default:
		return nil, domain.ErrInvalidInput
	}

	url, err := s.signer.SignUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign upload url: %w", err)
	}
	return &domain.FileUpload{Key: key, UploadURL: url}, nil
}
