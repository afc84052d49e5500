package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fmgimport/internal/config"
	"fmgimport/internal/csvexport"
	"fmgimport/internal/domain"
	"fmgimport/internal/port"
	"fmgimport/internal/service"
	"fmgimport/internal/testutil"
	"fmgimport/mocks"
)

func s3Config() *config.S3Config {
	return &config.S3Config{Bucket: "fmgimport-maps", PresignExpiry: 900}
}

// --- Export ---

func TestExportService_Export_CSV(t *testing.T) {
	svc := service.NewExportService(nil, s3Config(), nil)

	result, err := svc.Export(context.Background(), &service.ExportInput{
		MapText: testutil.SampleMap(),
		MapName: "Aldermark Campaign",
		Format:  domain.ExportFormatCSV,
	})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "Aldermark_Campaign_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))
	require.True(t, len(result.Data) > 3)
	assert.Equal(t, csvexport.BOM, result.Data[:3])

	body := string(result.Data[3:])
	for _, name := range []string{"# Cultures", "# Countries", "# Provinces", "# Burgs", "# Religions", "# Rivers"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, "Kingdom of Aldermark")
}

func TestExportService_Export_XLSX(t *testing.T) {
	svc := service.NewExportService(nil, s3Config(), nil)

	result, err := svc.Export(context.Background(), &service.ExportInput{
		MapText: testutil.SampleMap(),
		MapName: "Aldermark",
		Format:  domain.ExportFormatXLSX,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ExportContentTypes[domain.ExportFormatXLSX], result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Len(t, f.GetSheetList(), 6)
}

func TestExportService_Export_UnsupportedFormat(t *testing.T) {
	svc := service.NewExportService(nil, s3Config(), nil)

	_, err := svc.Export(context.Background(), &service.ExportInput{
		MapText: testutil.SampleMap(),
		Format:  domain.ExportFormat("pdf"),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func TestExportService_Export_MissingBatch(t *testing.T) {
	svc := service.NewExportService(nil, s3Config(), nil)

	_, err := svc.Export(context.Background(), &service.ExportInput{
		MapText: testutil.Replace(testutil.CulturesLine, ""),
		Format:  domain.ExportFormatCSV,
	})
	assert.ErrorIs(t, err, domain.ErrMissingBatch)
}

func TestExportService_Export_EmptyMap(t *testing.T) {
	svc := service.NewExportService(nil, s3Config(), nil)

	_, err := svc.Export(context.Background(), &service.ExportInput{Format: domain.ExportFormatCSV})
	assert.ErrorIs(t, err, domain.ErrEmptyMapFile)
}

// --- Publish ---

func TestExportService_Publish_Success(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(storage, s3Config(), nil)

	result := &service.ExportResult{Filename: "Aldermark_2026-01-02.csv", ContentType: "text/csv", Data: []byte("a,b\n")}

	var uploadedKey string
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		uploadedKey = in.Key
		return in.Bucket == "fmgimport-maps" &&
			strings.HasPrefix(in.Key, "exports/") &&
			strings.HasSuffix(in.Key, "/Aldermark_2026-01-02.csv") &&
			in.ContentType == "text/csv" &&
			in.Size == 4
	})).Return(&port.UploadOutput{Location: "s3://fmgimport-maps/x"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "fmgimport-maps", mock.AnythingOfType("string"), int64(900)).
		Return("https://example.com/signed", nil)

	url, err := svc.Publish(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
	assert.Equal(t, url, result.URL)
	assert.NotEmpty(t, uploadedKey)
	storage.AssertExpectations(t)
}

func TestExportService_Publish_UploadFails(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(storage, s3Config(), nil)

	uploadErr := errors.New("access denied")
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, uploadErr)

	_, err := svc.Publish(context.Background(), &service.ExportResult{Filename: "x.csv"})
	assert.ErrorIs(t, err, uploadErr)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_Publish_NoStorage(t *testing.T) {
	svc := service.NewExportService(nil, s3Config(), nil)

	_, err := svc.Publish(context.Background(), &service.ExportResult{Filename: "x.csv"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
