package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fmgimport/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) CreateBatch(ctx context.Context, collectionID uuid.UUID, docs []*domain.Document) error {
	args := m.Called(ctx, collectionID, docs)
	return args.Error(0)
}

func (m *MockDocumentRepo) FindByTitle(ctx context.Context, collectionID uuid.UUID, title string) (*domain.Document, error) {
	args := m.Called(ctx, collectionID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) ListByCollection(ctx context.Context, collectionID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, collectionID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}
