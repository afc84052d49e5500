package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmgimport/internal/domain"
	"fmgimport/internal/service"
	"fmgimport/internal/testutil"
	"fmgimport/mocks"
)

func TestMapSourceService_Load_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aldermark.map")
	require.NoError(t, os.WriteFile(path, []byte(testutil.SampleMap()), 0o600))

	svc := service.NewMapSourceService(nil, importConfig(), nil)
	text, err := svc.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleMap(), text)
}

func TestMapSourceService_Load_MissingFile(t *testing.T) {
	svc := service.NewMapSourceService(nil, importConfig(), nil)
	_, err := svc.Load(context.Background(), filepath.Join(t.TempDir(), "nope.map"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMapSourceService_Load_S3(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	sample := testutil.SampleMap()
	storage.On("Download", context.Background(), "maps", "worlds/aldermark.map").
		Return(io.NopCloser(strings.NewReader(sample)), int64(len(sample)), nil)

	svc := service.NewMapSourceService(storage, importConfig(), nil)
	text, err := svc.Load(context.Background(), "s3://maps/worlds/aldermark.map")
	require.NoError(t, err)
	assert.Equal(t, sample, text)
	storage.AssertExpectations(t)
}

func TestMapSourceService_Load_S3WithoutStorage(t *testing.T) {
	svc := service.NewMapSourceService(nil, importConfig(), nil)
	_, err := svc.Load(context.Background(), "s3://maps/aldermark.map")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestMapSourceService_Read_TooLarge(t *testing.T) {
	svc := service.NewMapSourceService(nil, importConfig(), nil)

	_, err := svc.Read(strings.NewReader("x"), 2<<20)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = svc.Read(bytes.NewReader(bytes.Repeat([]byte("x"), 1<<20+1)), -1)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestMapSourceService_Read_Empty(t *testing.T) {
	svc := service.NewMapSourceService(nil, importConfig(), nil)
	_, err := svc.Read(strings.NewReader(" \r\n"), -1)
	assert.ErrorIs(t, err, domain.ErrEmptyMapFile)
}
