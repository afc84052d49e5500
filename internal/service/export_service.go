package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fmgimport/internal/config"
	"fmgimport/internal/csvexport"
	"fmgimport/internal/domain"
	"fmgimport/internal/entity"
	"fmgimport/internal/parser"
	"fmgimport/internal/port"
)

// ExportInput is the DTO for a tabular export of a map's entities.
type ExportInput struct {
	MapText string
	MapName string
	Format  domain.ExportFormat
}

// ExportResult is a rendered export file.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	// URL is set once the file is published to object storage.
	URL string `json:"url,omitempty"`
}

// ExportService renders entity tables of a map export without touching the host.
type ExportService interface {
	Export(ctx context.Context, input *ExportInput) (*ExportResult, error)
	// Publish uploads a rendered export and returns a presigned download URL.
	Publish(ctx context.Context, result *ExportResult) (string, error)
}

type exportService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
	logger  *zap.Logger
}

// NewExportService creates a new ExportService implementation. storage may be
// nil, in which case Publish fails with domain.ErrStorageUnavailable.
func NewExportService(storage port.ObjectStorage, cfg *config.S3Config, logger *zap.Logger) ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &exportService{storage: storage, cfg: cfg, logger: logger.Named("export")}
}

func (s *exportService) Export(_ context.Context, input *ExportInput) (*ExportResult, error) {
	contentType, ok := domain.ExportContentTypes[input.Format]
	if !ok {
		return nil, domain.ErrUnsupportedExportFormat
	}
	if strings.TrimSpace(input.MapText) == "" {
		return nil, domain.ErrEmptyMapFile
	}

	model, err := entity.Build(parser.Extract(input.MapText))
	if err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}
	tables := csvexport.Tables(model)

	var buf bytes.Buffer
	switch input.Format {
	case domain.ExportFormatCSV:
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteTables(tables); err != nil {
			return nil, fmt.Errorf("exportService.Export: writing csv: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("exportService.Export: flushing csv: %w", err)
		}
	case domain.ExportFormatXLSX:
		if err := csvexport.WriteWorkbook(&buf, tables); err != nil {
			return nil, fmt.Errorf("exportService.Export: %w", err)
		}
	}

	s.logger.Debug("rendered export",
		zap.String("format", string(input.Format)),
		zap.Int("tables", len(tables)),
		zap.Int("bytes", buf.Len()),
	)

	return &ExportResult{
		Filename:    csvexport.BuildFilename(input.MapName, input.Format),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) Publish(ctx context.Context, result *ExportResult) (string, error) {
	if s.storage == nil {
		return "", domain.ErrStorageUnavailable
	}

	key := fmt.Sprintf("exports/%s/%s", uuid.New(), result.Filename)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(result.Data),
		ContentType: result.ContentType,
		Size:        int64(len(result.Data)),
	})
	if err != nil {
		return "", fmt.Errorf("exportService.Publish: uploading: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("exportService.Publish: presigning: %w", err)
	}
	result.URL = url
	s.logger.Info("published export", zap.String("key", key))
	return url, nil
}
