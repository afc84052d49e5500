package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fmgimport/internal/domain"
	"fmgimport/internal/handler"
	"fmgimport/internal/service"
	"fmgimport/internal/testutil"
	"fmgimport/mocks"
)

func newImportHandler() (*handler.ImportHandler, *mocks.MockImportService, *mocks.MockMapSourceService) {
	importSvc := new(mocks.MockImportService)
	sourceSvc := new(mocks.MockMapSourceService)
	return handler.NewImportHandler(importSvc, sourceSvc), importSvc, sourceSvc
}

func TestImportHandler_Create_Success(t *testing.T) {
	h, importSvc, sourceSvc := newImportHandler()

	sample := testutil.SampleMap()
	sourceSvc.On("Read", mock.Anything, int64(len(sample))).Return(sample, nil)
	importSvc.On("Import", mock.Anything, &service.ImportInput{
		MapText:         sample,
		BackgroundImage: "worlds/aldermark.svg",
		SceneName:       "Aldermark",
	}).Return(&service.ImportResult{SceneID: uuid.New(), SceneName: "Aldermark", Annotations: 7}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/imports", "aldermark.map", sample, map[string]string{
		"background": "worlds/aldermark.svg",
		"scene_name": "Aldermark",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Aldermark", data["scene_name"])
	assert.Equal(t, float64(7), data["annotations"])
	importSvc.AssertExpectations(t)
	sourceSvc.AssertExpectations(t)
}

func TestImportHandler_Create_MissingFile(t *testing.T) {
	h, importSvc, _ := newImportHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/imports", "", "", map[string]string{"scene_name": "x"})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeResponse(t, w.Body.Bytes()).Error.Code)
	importSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestImportHandler_Create_FileTooLarge(t *testing.T) {
	h, importSvc, sourceSvc := newImportHandler()
	sourceSvc.On("Read", mock.Anything, mock.Anything).Return("", domain.ErrFileTooLarge)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/imports", "big.map", "x", nil)

	h.Create(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	importSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestImportHandler_Create_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing batch", &domain.MissingBatchError{Category: domain.CategoryBurg}, http.StatusUnprocessableEntity, "MISSING_BATCH"},
		{"in progress", domain.ErrImportInProgress, http.StatusConflict, "IMPORT_IN_PROGRESS"},
		{"empty", domain.ErrEmptyMapFile, http.StatusBadRequest, "EMPTY_MAP_FILE"},
		{"host failure", errors.New("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, importSvc, sourceSvc := newImportHandler()
			sourceSvc.On("Read", mock.Anything, mock.Anything).Return("map", nil)
			importSvc.On("Import", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = newMultipartRequest(t, "/api/v1/imports", "aldermark.map", "map", nil)

			h.Create(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w.Body.Bytes())
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
