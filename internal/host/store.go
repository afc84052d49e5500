// Package host implements the host store an import writes its collections,
// documents, scene and annotations to.
package host

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fmgimport/internal/domain"
	"fmgimport/internal/port"
)

type store struct {
	collections port.CollectionRepository
	documents   port.DocumentRepository
	scenes      port.SceneRepository
	annotations port.AnnotationRepository
}

// NewStore creates a HostStore backed by the given repositories.
func NewStore(
	collections port.CollectionRepository,
	documents port.DocumentRepository,
	scenes port.SceneRepository,
	annotations port.AnnotationRepository,
) port.HostStore {
	return &store{
		collections: collections,
		documents:   documents,
		scenes:      scenes,
		annotations: annotations,
	}
}

func (s *store) CreateDocumentCollection(ctx context.Context, name string) (port.CollectionHandle, error) {
	c := &domain.Collection{Name: name, Label: name}
	if err := s.collections.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("host.CreateDocumentCollection: %w", err)
	}
	return &collectionHandle{collection: *c, documents: s.documents}, nil
}

func (s *store) CreateScene(ctx context.Context, input domain.SceneInput) (port.SceneHandle, error) {
	scene := &domain.Scene{
		Name:            input.Name,
		Width:           input.Width,
		Height:          input.Height,
		BackgroundImage: input.BackgroundImage,
		Padding:         input.Padding,
	}
	if err := s.scenes.Create(ctx, scene); err != nil {
		return nil, fmt.Errorf("host.CreateScene: %w", err)
	}
	return &sceneHandle{scene: *scene, annotations: s.annotations}, nil
}

type collectionHandle struct {
	collection domain.Collection
	documents  port.DocumentRepository
}

func (h *collectionHandle) ID() uuid.UUID { return h.collection.ID }

func (h *collectionHandle) Name() string { return h.collection.Name }

func (h *collectionHandle) CreateDocuments(ctx context.Context, inputs []domain.DocumentInput) error {
	docs := make([]*domain.Document, len(inputs))
	for i, in := range inputs {
		docs[i] = &domain.Document{
			Title:           in.Title,
			HTMLBody:        in.HTMLBody,
			PermissionLevel: in.PermissionLevel,
		}
	}
	if err := h.documents.CreateBatch(ctx, h.collection.ID, docs); err != nil {
		return fmt.Errorf("host.CreateDocuments %s: %w", h.collection.Name, err)
	}
	return nil
}

func (h *collectionHandle) FindByTitle(ctx context.Context, title string) (*domain.Document, error) {
	return h.documents.FindByTitle(ctx, h.collection.ID, title)
}

type sceneHandle struct {
	scene       domain.Scene
	annotations port.AnnotationRepository
}

func (h *sceneHandle) ID() uuid.UUID { return h.scene.ID }

func (h *sceneHandle) CreateAnnotations(ctx context.Context, annotations []domain.Annotation) error {
	batch := make([]*domain.Annotation, len(annotations))
	for i := range annotations {
		batch[i] = &annotations[i]
	}
	if err := h.annotations.CreateBatch(ctx, h.scene.ID, batch); err != nil {
		return fmt.Errorf("host.CreateAnnotations: %w", err)
	}
	return nil
}
