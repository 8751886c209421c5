package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const rootFolder = "poojaseva"

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder, filename string) (*Asset, error)
}

// Asset is a stored file.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// uploadAPI is the part of the Cloudinary upload API used here.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStorage implements Uploader on Cloudinary.
type CloudinaryStorage struct {
	api uploadAPI
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{api: &cld.Upload}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, folder, filename string) (*Asset, error) {
	params := uploader.UploadParams{
		Folder:       path.Join(rootFolder, folder),
		ResourceType: "auto",
	}
	if name := strings.TrimSuffix(path.Base(filename), path.Ext(filename)); name != "" && name != "." && name != "/" {
		params.PublicID = name
	}

	res, err := s.api.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}
