package port

import (
	"context"

	"github.com/google/uuid"

	"fmgimport/internal/domain"
)

// CollectionRepository defines the contract for document collection persistence.
type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	List(ctx context.Context, offset, limit int) ([]domain.Collection, int, error)
}

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	// CreateBatch inserts documents in one transaction, assigning ids and positions.
	CreateBatch(ctx context.Context, collectionID uuid.UUID, docs []*domain.Document) error
	// FindByTitle returns the first document with title in the collection, or
	// domain.ErrDocumentNotFound.
	FindByTitle(ctx context.Context, collectionID uuid.UUID, title string) (*domain.Document, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
}

// SceneRepository defines the contract for scene persistence.
type SceneRepository interface {
	Create(ctx context.Context, scene *domain.Scene) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error)
}

// AnnotationRepository defines the contract for scene annotation persistence.
type AnnotationRepository interface {
	// CreateBatch inserts annotations in one transaction, assigning ids and positions.
	CreateBatch(ctx context.Context, sceneID uuid.UUID, annotations []*domain.Annotation) error
	ListByScene(ctx context.Context, sceneID uuid.UUID) ([]domain.Annotation, error)
}
