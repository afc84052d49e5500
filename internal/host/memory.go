package host

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fmgimport/internal/domain"
	"fmgimport/internal/port"
)

// MemoryStore is a HostStore that keeps everything in memory. It backs dry runs
// and tests.
type MemoryStore struct {
	mu          sync.Mutex
	collections []domain.Collection
	documents   map[uuid.UUID][]domain.Document
	scenes      []domain.Scene
	annotations map[uuid.UUID][]domain.Annotation
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents:   make(map[uuid.UUID][]domain.Document),
		annotations: make(map[uuid.UUID][]domain.Annotation),
	}
}

var _ port.HostStore = (*MemoryStore)(nil)

// CreateDocumentCollection records a new collection.
func (m *MemoryStore) CreateDocumentCollection(_ context.Context, name string) (port.CollectionHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Collection{ID: uuid.New(), Name: name, Label: name, CreatedAt: time.Now().UTC()}
	m.collections = append(m.collections, c)
	return &memoryCollection{store: m, collection: c}, nil
}

// CreateScene records a new scene.
func (m *MemoryStore) CreateScene(_ context.Context, input domain.SceneInput) (port.SceneHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := domain.Scene{
		ID:              uuid.New(),
		Name:            input.Name,
		Width:           input.Width,
		Height:          input.Height,
		BackgroundImage: input.BackgroundImage,
		Padding:         input.Padding,
		CreatedAt:       time.Now().UTC(),
	}
	m.scenes = append(m.scenes, s)
	return &memoryScene{store: m, scene: s}, nil
}

// Collections returns the collections in creation order.
func (m *MemoryStore) Collections() []domain.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Collection(nil), m.collections...)
}

// Documents returns the documents of a collection in creation order.
func (m *MemoryStore) Documents(collectionID uuid.UUID) []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Document(nil), m.documents[collectionID]...)
}

// Scenes returns the scenes in creation order.
func (m *MemoryStore) Scenes() []domain.Scene {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Scene(nil), m.scenes...)
}

// Annotations returns the annotations of a scene in creation order.
func (m *MemoryStore) Annotations(sceneID uuid.UUID) []domain.Annotation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Annotation(nil), m.annotations[sceneID]...)
}

type memoryCollection struct {
	store      *MemoryStore
	collection domain.Collection
}

func (h *memoryCollection) ID() uuid.UUID { return h.collection.ID }

func (h *memoryCollection) Name() string { return h.collection.Name }

func (h *memoryCollection) CreateDocuments(_ context.Context, inputs []domain.DocumentInput) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	now := time.Now().UTC()
	existing := h.store.documents[h.collection.ID]
	for _, in := range inputs {
		existing = append(existing, domain.Document{
			ID:              uuid.New(),
			CollectionID:    h.collection.ID,
			Title:           in.Title,
			HTMLBody:        in.HTMLBody,
			PermissionLevel: in.PermissionLevel,
			Position:        len(existing),
			CreatedAt:       now,
		})
	}
	h.store.documents[h.collection.ID] = existing
	return nil
}

func (h *memoryCollection) FindByTitle(_ context.Context, title string) (*domain.Document, error) {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	for _, d := range h.store.documents[h.collection.ID] {
		if d.Title == title {
			d := d
			return &d, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

type memoryScene struct {
	store *MemoryStore
	scene domain.Scene
}

func (h *memoryScene) ID() uuid.UUID { return h.scene.ID }

func (h *memoryScene) CreateAnnotations(_ context.Context, annotations []domain.Annotation) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	now := time.Now().UTC()
	existing := h.store.annotations[h.scene.ID]
	for _, a := range annotations {
		a.ID = uuid.New()
		a.SceneID = h.scene.ID
		a.Position = len(existing)
		a.CreatedAt = now
		existing = append(existing, a)
	}
	h.store.annotations[h.scene.ID] = existing
	return nil
}
