package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fmgimport/internal/domain"
	"fmgimport/internal/port"
)

// MockHostStore is a mock implementation of port.HostStore.
type MockHostStore struct {
	mock.Mock
}

func (m *MockHostStore) CreateDocumentCollection(ctx context.Context, name string) (port.CollectionHandle, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.CollectionHandle), args.Error(1)
}

func (m *MockHostStore) CreateScene(ctx context.Context, input domain.SceneInput) (port.SceneHandle, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.SceneHandle), args.Error(1)
}

// MockCollectionHandle is a mock implementation of port.CollectionHandle.
type MockCollectionHandle struct {
	mock.Mock
}

func (m *MockCollectionHandle) ID() uuid.UUID {
	args := m.Called()
	return args.Get(0).(uuid.UUID)
}

func (m *MockCollectionHandle) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCollectionHandle) CreateDocuments(ctx context.Context, docs []domain.DocumentInput) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockCollectionHandle) FindByTitle(ctx context.Context, title string) (*domain.Document, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// MockSceneHandle is a mock implementation of port.SceneHandle.
type MockSceneHandle struct {
	mock.Mock
}

func (m *MockSceneHandle) ID() uuid.UUID {
	args := m.Called()
	return args.Get(0).(uuid.UUID)
}

func (m *MockSceneHandle) CreateAnnotations(ctx context.Context, annotations []domain.Annotation) error {
	args := m.Called(ctx, annotations)
	return args.Error(0)
}
