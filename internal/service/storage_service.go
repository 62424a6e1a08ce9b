package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"satbank_backend/internal/config"
	"satbank_backend/internal/model"
	"satbank_backend/internal/util"
	"satbank_backend/pkg/logger"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider abstracts where uploaded files (question images, generated
// PDFs) land. Upload returns the public URL stored on the model.
type StorageProvider interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// NewStorageProvider picks the provider named in config.
func NewStorageProvider(cfg config.StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case util.StorageMinio:
		return NewMinioProvider(cfg)
	case util.StorageLocal, "":
		return NewLocalProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

// LocalProvider writes files under a directory served as static content.
type LocalProvider struct {
	basePath string
	baseURL  string
}

func NewLocalProvider(cfg config.StorageConfig) (*LocalProvider, error) {
	if err := os.MkdirAll(cfg.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalProvider{basePath: cfg.LocalPath, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}, nil
}

func (p *LocalProvider) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(p.basePath, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", err
	}

	return p.baseURL + "/" + objectName, nil
}

func (p *LocalProvider) Delete(_ context.Context, objectName string) error {
	return os.Remove(filepath.Join(p.basePath, objectName))
}

// MinioProvider stores files in a MinIO (or S3-compatible) bucket.
type MinioProvider struct {
	client *minio.Client
	bucket string
	useSSL bool
}

func NewMinioProvider(cfg config.StorageConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioProvider{client: client, bucket: cfg.Minio.Bucket, useSSL: cfg.Minio.UseSSL}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = util.MimeOctetStream
	}
	_, err := p.client.PutObject(ctx, p.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if p.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.client.EndpointURL().Host, p.bucket, objectName), nil
}

func (p *MinioProvider) Delete(ctx context.Context, objectName string) error {
	return p.client.RemoveObject(ctx, p.bucket, objectName, minio.RemoveObjectOptions{})
}

// StorageService validates uploads and routes them through the provider.
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(provider StorageProvider) *StorageService {
	return &StorageService{Provider: provider}
}

// UploadQuestionImage stores an image under images/ and returns its URL.
func (s *StorageService) UploadQuestionImage(ctx context.Context, filename string, reader io.ReadSeeker, size int64) (string, error) {
	mimeType, err := util.ValidateMimeType(reader, []string{util.MimeImage})
	if err != nil {
		return "", err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	objectName := "images/" + model.GenerateUUID() + filepath.Ext(filename)
	url, err := s.Provider.Upload(ctx, objectName, reader, size, mimeType)
	if err != nil {
		return "", err
	}

	logger.Log.Info("Uploaded question image", zap.String("object", objectName))
	return url, nil
}

// UploadWorksheetPDF stores a rendered worksheet under worksheets/.
func (s *StorageService) UploadWorksheetPDF(ctx context.Context, worksheetID uint, reader io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("worksheets/%d_%s.pdf", worksheetID, model.GenerateUUID())
	url, err := s.Provider.Upload(ctx, objectName, reader, size, util.MimePDF)
	if err != nil {
		return "", err
	}

	logger.Log.Info("Uploaded worksheet pdf",
		zap.Uint("worksheetId", worksheetID),
		zap.String("object", objectName),
	)
	return url, nil
}
