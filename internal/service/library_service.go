package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fmgimport/internal/domain"
	"fmgimport/internal/port"
)

// SceneDetail is a scene with the annotations placed on it.
type SceneDetail struct {
	Scene       *domain.Scene       `json:"scene"`
	Annotations []domain.Annotation `json:"annotations"`
}

// LibraryService reads back what imports created in the host store.
type LibraryService interface {
	ListCollections(ctx context.Context, offset, limit int) ([]domain.Collection, int, error)
	GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	ListDocuments(ctx context.Context, collectionID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	GetScene(ctx context.Context, id uuid.UUID) (*SceneDetail, error)
}

type libraryService struct {
	collectionRepo port.CollectionRepository
	documentRepo   port.DocumentRepository
	sceneRepo      port.SceneRepository
	annotationRepo port.AnnotationRepository
}

// NewLibraryService creates a new LibraryService implementation.
func NewLibraryService(
	collectionRepo port.CollectionRepository,
	documentRepo port.DocumentRepository,
	sceneRepo port.SceneRepository,
	annotationRepo port.AnnotationRepository,
) LibraryService {
	return &libraryService{
		collectionRepo: collectionRepo,
		documentRepo:   documentRepo,
		sceneRepo:      sceneRepo,
		annotationRepo: annotationRepo,
	}
}

func (s *libraryService) ListCollections(ctx context.Context, offset, limit int) ([]domain.Collection, int, error) {
	return s.collectionRepo.List(ctx, offset, limit)
}

func (s *libraryService) GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	return s.collectionRepo.GetByID(ctx, id)
}

func (s *libraryService) ListDocuments(ctx context.Context, collectionID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	if _, err := s.collectionRepo.GetByID(ctx, collectionID); err != nil {
		return nil, 0, err
	}
	return s.documentRepo.ListByCollection(ctx, collectionID, offset, limit)
}

func (s *libraryService) GetScene(ctx context.Context, id uuid.UUID) (*SceneDetail, error) {
	scene, err := s.sceneRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	annotations, err := s.annotationRepo.ListByScene(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("libraryService.GetScene: %w", err)
	}
	return &SceneDetail{Scene: scene, Annotations: annotations}, nil
}
