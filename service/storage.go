package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService resolves storage locations named by contract types into
// links an operator can open. Rendered documents are filed there by the
// automation service.
type StorageService struct {
	client *minio.Client
	bucket string
	config *config.StorageConfig
}

func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &StorageService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// FolderURL returns a browsable link to the folder of a storage location.
// Nil services and empty location ids yield an empty link.
func (s *StorageService) FolderURL(locationID string) string {
	if s == nil || locationID == "" {
		return ""
	}
	folder := url.PathEscape(strings.Trim(locationID, "/")) + "/"

	if s.config.BrowseURL != "" {
		return strings.TrimRight(s.config.BrowseURL, "/") + "/" + folder
	}
	base := s.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", base.Scheme, base.Host, s.bucket, folder)
}
