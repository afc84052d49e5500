package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"fmgimport/internal/domain"
	"fmgimport/internal/handler"
	"fmgimport/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func TestSetup_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	library := new(mocks.MockLibraryService)
	sceneID := uuid.New()
	library.On("GetScene", mock.Anything, sceneID).Return(nil, domain.ErrSceneNotFound)
	library.On("ListCollections", mock.Anything, 0, 20).Return([]domain.Collection{}, 0, nil)

	r := Setup(
		zap.NewNop(),
		[]string{"http://localhost:30000"},
		handler.NewImportHandler(new(mocks.MockImportService), new(mocks.MockMapSourceService)),
		handler.NewExportHandler(new(mocks.MockExportService), new(mocks.MockMapSourceService)),
		handler.NewLibraryHandler(library),
		handler.NewHealthHandler(okPinger{}),
	)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/api/v1/collections", http.StatusOK},
		{http.MethodGet, "/api/v1/scenes/" + sceneID.String(), http.StatusNotFound},
		{http.MethodPost, "/api/v1/imports", http.StatusBadRequest},
		{http.MethodPost, "/api/v1/exports", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, http.NoBody))
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}
