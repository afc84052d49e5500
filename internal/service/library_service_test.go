package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fmgimport/internal/domain"
	"fmgimport/internal/service"
	"fmgimport/mocks"
)

func setupLibraryService() (
	service.LibraryService,
	*mocks.MockCollectionRepo,
	*mocks.MockDocumentRepo,
	*mocks.MockSceneRepo,
	*mocks.MockAnnotationRepo,
) {
	collRepo := new(mocks.MockCollectionRepo)
	docRepo := new(mocks.MockDocumentRepo)
	sceneRepo := new(mocks.MockSceneRepo)
	annRepo := new(mocks.MockAnnotationRepo)
	return service.NewLibraryService(collRepo, docRepo, sceneRepo, annRepo), collRepo, docRepo, sceneRepo, annRepo
}

func TestLibraryService_ListCollections(t *testing.T) {
	svc, collRepo, _, _, _ := setupLibraryService()

	collections := []domain.Collection{{ID: uuid.New(), Name: domain.CollectionCultures}}
	collRepo.On("List", mock.Anything, 0, 20).Return(collections, 1, nil)

	got, total, err := svc.ListCollections(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, collections, got)
	assert.Equal(t, 1, total)
}

func TestLibraryService_ListDocuments_Success(t *testing.T) {
	svc, collRepo, docRepo, _, _ := setupLibraryService()

	collectionID := uuid.New()
	docs := []domain.Document{{ID: uuid.New(), CollectionID: collectionID, Title: "Alderfolk"}}
	collRepo.On("GetByID", mock.Anything, collectionID).Return(&domain.Collection{ID: collectionID}, nil)
	docRepo.On("ListByCollection", mock.Anything, collectionID, 0, 50).Return(docs, 1, nil)

	got, total, err := svc.ListDocuments(context.Background(), collectionID, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
	assert.Equal(t, 1, total)
}

func TestLibraryService_ListDocuments_CollectionNotFound(t *testing.T) {
	svc, collRepo, docRepo, _, _ := setupLibraryService()

	collectionID := uuid.New()
	collRepo.On("GetByID", mock.Anything, collectionID).Return(nil, domain.ErrCollectionNotFound)

	_, _, err := svc.ListDocuments(context.Background(), collectionID, 0, 50)
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	docRepo.AssertNotCalled(t, "ListByCollection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLibraryService_GetScene_Success(t *testing.T) {
	svc, _, _, sceneRepo, annRepo := setupLibraryService()

	sceneID := uuid.New()
	scene := &domain.Scene{ID: sceneID, Name: "Aldermark"}
	annotations := []domain.Annotation{{ID: uuid.New(), SceneID: sceneID, Text: "Alder"}}
	sceneRepo.On("GetByID", mock.Anything, sceneID).Return(scene, nil)
	annRepo.On("ListByScene", mock.Anything, sceneID).Return(annotations, nil)

	got, err := svc.GetScene(context.Background(), sceneID)
	require.NoError(t, err)
	assert.Equal(t, scene, got.Scene)
	assert.Equal(t, annotations, got.Annotations)
}

func TestLibraryService_GetScene_NotFound(t *testing.T) {
	svc, _, _, sceneRepo, annRepo := setupLibraryService()

	sceneID := uuid.New()
	sceneRepo.On("GetByID", mock.Anything, sceneID).Return(nil, domain.ErrSceneNotFound)

	_, err := svc.GetScene(context.Background(), sceneID)
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	annRepo.AssertNotCalled(t, "ListByScene", mock.Anything, mock.Anything)
}

func TestLibraryService_GetScene_AnnotationError(t *testing.T) {
	svc, _, _, sceneRepo, annRepo := setupLibraryService()

	sceneID := uuid.New()
	dbErr := errors.New("connection reset")
	sceneRepo.On("GetByID", mock.Anything, sceneID).Return(&domain.Scene{ID: sceneID}, nil)
	annRepo.On("ListByScene", mock.Anything, sceneID).Return(nil, dbErr)

	_, err := svc.GetScene(context.Background(), sceneID)
	assert.ErrorIs(t, err, dbErr)
}
