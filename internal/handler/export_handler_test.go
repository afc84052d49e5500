package handler_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fmgimport/internal/config"
	"fmgimport/internal/csvexport"
	"fmgimport/internal/domain"
	"fmgimport/internal/handler"
	"fmgimport/internal/port"
	"fmgimport/internal/service"
	"fmgimport/internal/testutil"
	"fmgimport/mocks"
)

func newExportHandler(storage port.ObjectStorage) *handler.ExportHandler {
	s3cfg := &config.S3Config{Bucket: "fmgimport-maps", PresignExpiry: 600}
	importCfg := &config.ImportConfig{MaxFileSizeMB: 1}
	return handler.NewExportHandler(
		service.NewExportService(storage, s3cfg, nil),
		service.NewMapSourceService(storage, importCfg, nil),
	)
}

func TestExportHandler_Create_CSV(t *testing.T) {
	h := newExportHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/exports?format=csv", "Aldermark Campaign.map", testutil.SampleMap(), nil)

	h.Create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Aldermark_Campaign_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])

	r := csv.NewReader(strings.NewReader(string(body[3:])))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"# Cultures"}, records[0])
}

func TestExportHandler_Create_XLSX(t *testing.T) {
	h := newExportHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/exports?format=XLSX", "aldermark.map", testutil.SampleMap(), nil)

	h.Create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ExportContentTypes[domain.ExportFormatXLSX], w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestExportHandler_Create_UnsupportedFormat(t *testing.T) {
	h := newExportHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/exports?format=pdf", "aldermark.map", testutil.SampleMap(), nil)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_EXPORT_FORMAT", decodeResponse(t, w.Body.Bytes()).Error.Code)
}

func TestExportHandler_Create_MissingBatch(t *testing.T) {
	h := newExportHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/exports", "aldermark.map",
		testutil.Replace(testutil.ProvincesLine, ""), nil)

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w.Body.Bytes())
	assert.Equal(t, "MISSING_BATCH", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "province")
}

func TestExportHandler_Create_Publish(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "loc"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "fmgimport-maps", mock.AnythingOfType("string"), int64(600)).
		Return("https://example.com/export.csv", nil)
	h := newExportHandler(storage)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/exports?format=csv&publish=true", "aldermark.map", testutil.SampleMap(), nil)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w.Body.Bytes()).Data.(map[string]interface{})
	assert.Equal(t, "https://example.com/export.csv", data["url"])
	assert.Equal(t, "text/csv", data["content_type"])
	storage.AssertExpectations(t)
}

func TestExportHandler_Create_PublishWithoutStorage(t *testing.T) {
	h := newExportHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newMultipartRequest(t, "/api/v1/exports?publish=true", "aldermark.map", testutil.SampleMap(), nil)

	h.Create(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
