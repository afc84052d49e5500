package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"fmgimport/internal/domain"
	"fmgimport/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing batch", &domain.MissingBatchError{Category: domain.CategoryBurg}, http.StatusUnprocessableEntity, "MISSING_BATCH"},
		{"import in progress", domain.ErrImportInProgress, http.StatusConflict, "IMPORT_IN_PROGRESS"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"empty map", domain.ErrEmptyMapFile, http.StatusBadRequest, "EMPTY_MAP_FILE"},
		{"bad format", domain.ErrUnsupportedExportFormat, http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT"},
		{"collection", fmt.Errorf("collectionRepo.GetByID: %w", domain.ErrCollectionNotFound), http.StatusNotFound, "COLLECTION_NOT_FOUND"},
		{"document", domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{"scene", domain.ErrSceneNotFound, http.StatusNotFound, "SCENE_NOT_FOUND"},
		{"storage", domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{"unknown", errors.New("resource not found"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_MissingBatchNamesCategory(t *testing.T) {
	_, _, msg := handler.MapDomainError(&domain.MissingBatchError{Category: domain.CategoryProvince})
	assert.Equal(t, "map export has no province records", msg)
}
