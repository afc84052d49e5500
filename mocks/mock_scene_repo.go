package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fmgimport/internal/domain"
)

// MockSceneRepo is a mock implementation of port.SceneRepository.
type MockSceneRepo struct {
	mock.Mock
}

func (m *MockSceneRepo) Create(ctx context.Context, scene *domain.Scene) error {
	args := m.Called(ctx, scene)
	return args.Error(0)
}

func (m *MockSceneRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scene), args.Error(1)
}

// MockAnnotationRepo is a mock implementation of port.AnnotationRepository.
type MockAnnotationRepo struct {
	mock.Mock
}

func (m *MockAnnotationRepo) CreateBatch(ctx context.Context, sceneID uuid.UUID, annotations []*domain.Annotation) error {
	args := m.Called(ctx, sceneID, annotations)
	return args.Error(0)
}

func (m *MockAnnotationRepo) ListByScene(ctx context.Context, sceneID uuid.UUID) ([]domain.Annotation, error) {
	args := m.Called(ctx, sceneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Annotation), args.Error(1)
}
