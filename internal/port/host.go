package port

import (
	"context"

	"github.com/google/uuid"

	"fmgimport/internal/domain"
)

// HostStore is the host an import creates its collections and scene in.
type HostStore interface {
	CreateDocumentCollection(ctx context.Context, name string) (CollectionHandle, error)
	CreateScene(ctx context.Context, input domain.SceneInput) (SceneHandle, error)
}

// CollectionHandle is a document collection created on the host.
type CollectionHandle interface {
	ID() uuid.UUID
	Name() string
	CreateDocuments(ctx context.Context, docs []domain.DocumentInput) error
	// FindByTitle returns domain.ErrDocumentNotFound when no document has title.
	FindByTitle(ctx context.Context, title string) (*domain.Document, error)
}

// SceneHandle is a scene created on the host.
type SceneHandle interface {
	ID() uuid.UUID
	CreateAnnotations(ctx context.Context, annotations []domain.Annotation) error
}
