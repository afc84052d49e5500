package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"fmgimport/internal/config"
	"fmgimport/internal/domain"
	"fmgimport/internal/port"
	s3storage "fmgimport/internal/storage/s3"
)

// MapSourceService reads map exports into memory, whole, before parsing starts.
type MapSourceService interface {
	// Load reads a map export from a local path or an s3://bucket/key URI.
	Load(ctx context.Context, location string) (string, error)
	// Read reads a map export from r. size is the declared length, or -1 when unknown.
	Read(r io.Reader, size int64) (string, error)
}

type mapSourceService struct {
	storage port.ObjectStorage
	cfg     *config.ImportConfig
	logger  *zap.Logger
}

// NewMapSourceService creates a new MapSourceService implementation. storage
// may be nil, in which case s3:// locations fail with domain.ErrStorageUnavailable.
func NewMapSourceService(storage port.ObjectStorage, cfg *config.ImportConfig, logger *zap.Logger) MapSourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mapSourceService{storage: storage, cfg: cfg, logger: logger.Named("mapsource")}
}

func (s *mapSourceService) Load(ctx context.Context, location string) (string, error) {
	if bucket, key, ok := s3storage.ParseURI(location); ok {
		if s.storage == nil {
			return "", domain.ErrStorageUnavailable
		}
		body, size, err := s.storage.Download(ctx, bucket, key)
		if err != nil {
			return "", fmt.Errorf("mapSourceService.Load: %w", err)
		}
		defer func() { _ = body.Close() }()
		s.logger.Debug("downloading map export", zap.String("bucket", bucket), zap.String("key", key), zap.Int64("size", size))
		return s.Read(body, size)
	}

	f, err := os.Open(location)
	if err != nil {
		return "", fmt.Errorf("mapSourceService.Load: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("mapSourceService.Load: %w", err)
	}
	return s.Read(f, info.Size())
}

func (s *mapSourceService) Read(r io.Reader, size int64) (string, error) {
	limit := s.cfg.MaxFileSize()
	if size > limit {
		return "", domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("mapSourceService.Read: %w", err)
	}
	if int64(len(data)) > limit {
		return "", domain.ErrFileTooLarge
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyMapFile
	}
	return text, nil
}
