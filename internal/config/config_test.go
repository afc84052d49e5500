package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "data/fmgimport.db", cfg.DB.Path)
	assert.Equal(t, 4, cfg.Import.PermissionLevel)
	assert.Equal(t, "world", cfg.Import.CollectionPrefix)
	assert.Equal(t, int64(50*1024*1024), cfg.Import.MaxFileSize())
	assert.Equal(t, "noop", cfg.Notify.Provider)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:30000", "http://127.0.0.1:30000"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FMGIMPORT_DB_DRIVER", "Postgres")
	t.Setenv("FMGIMPORT_DB_HOST", "db.internal")
	t.Setenv("FMGIMPORT_IMPORT_COLLECTION_PREFIX", "campaign")
	t.Setenv("FMGIMPORT_IMPORT_PERMISSION_LEVEL", "2")
	t.Setenv("FMGIMPORT_LOG_LEVEL", "debug")
	t.Setenv("FMGIMPORT_SERVER_CORS_ORIGINS", "https://vtt.example.com, ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "campaign", cfg.Import.CollectionPrefix)
	assert.Equal(t, 2, cfg.Import.PermissionLevel)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://vtt.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("FMGIMPORT_SERVER_PORT", ":7070")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("FMGIMPORT_DB_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_SESNeedsRecipient(t *testing.T) {
	t.Setenv("FMGIMPORT_NOTIFY_PROVIDER", "ses")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FMGIMPORT_NOTIFY_RECIPIENT", "gm@example.com")
	_, err = Load()
	assert.NoError(t, err)
}

func TestDSN(t *testing.T) {
	pg := DBConfig{Driver: DriverPostgres, User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", pg.DSN())

	lite := DBConfig{Driver: DriverSQLite, Path: "data/x.db"}
	assert.Equal(t, "file:data/x.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", lite.DSN())
}
