package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaKind is the provider document being uploaded.
type MediaKind string

const (
	MediaAvatar      MediaKind = "avatars"
	MediaCertificate MediaKind = "certificates"
)

var (
	ErrUnknownMediaKind = errors.New("upload folder must be avatars or certificates")
	ErrNotConfigured    = errors.New("file uploads are not configured")
)

func ParseMediaKind(raw string) (MediaKind, error) {
	switch MediaKind(raw) {
	case MediaAvatar, MediaCertificate:
		return MediaKind(raw), nil
	}
	return "", ErrUnknownMediaKind
}

// ProviderProfile records uploaded media on the provider.
type ProviderProfile interface {
	SetAvatar(ctx context.Context, providerID, url string) error
	AddCertificate(ctx context.Context, providerID, url string) error
}

// MediaService uploads provider avatars and certificates.
type MediaService struct {
	Uploader  Uploader
	Providers ProviderProfile
	Logger    *zap.Logger
}

func (s *MediaService) UploadProviderMedia(ctx context.Context, providerID string, kind MediaKind, file io.Reader) (*Asset, error) {
	if s.Uploader == nil {
		return nil, ErrNotConfigured
	}
	folder := string(kind) + "/" + providerID
	asset, err := s.Uploader.Upload(ctx, file, folder, uuid.New().String())
	if err != nil {
		return nil, err
	}

	switch kind {
	case MediaAvatar:
		err = s.Providers.SetAvatar(ctx, providerID, asset.URL)
	case MediaCertificate:
		err = s.Providers.AddCertificate(ctx, providerID, asset.URL)
	default:
		return nil, ErrUnknownMediaKind
	}
	if err != nil {
		return nil, fmt.Errorf("record %s for provider %s: %w", kind, providerID, err)
	}
	if s.Logger != nil {
		s.Logger.Info("provider media uploaded",
			zap.String("provider", providerID), zap.String("kind", string(kind)), zap.String("publicId", asset.PublicID))
	}
	return asset, nil
}
