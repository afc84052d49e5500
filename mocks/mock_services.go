package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fmgimport/internal/domain"
	"fmgimport/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, input *service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, input *service.ExportInput) (*service.ExportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockExportService) Publish(ctx context.Context, result *service.ExportResult) (string, error) {
	args := m.Called(ctx, result)
	return args.String(0), args.Error(1)
}

// MockMapSourceService is a mock implementation of service.MapSourceService.
type MockMapSourceService struct {
	mock.Mock
}

func (m *MockMapSourceService) Load(ctx context.Context, location string) (string, error) {
	args := m.Called(ctx, location)
	return args.String(0), args.Error(1)
}

func (m *MockMapSourceService) Read(r io.Reader, size int64) (string, error) {
	args := m.Called(r, size)
	return args.String(0), args.Error(1)
}

// MockLibraryService is a mock implementation of service.LibraryService.
type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) ListCollections(ctx context.Context, offset, limit int) ([]domain.Collection, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Collection), args.Int(1), args.Error(2)
}

func (m *MockLibraryService) GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockLibraryService) ListDocuments(ctx context.Context, collectionID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, collectionID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockLibraryService) GetScene(ctx context.Context, id uuid.UUID) (*service.SceneDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SceneDetail), args.Error(1)
}
