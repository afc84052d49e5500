package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported host store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	Import ImportConfig
	Notify NotifyConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DBConfig holds host store connection settings.
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
	Path     string `mapstructure:"path"`
}

// DSN returns the connection string for the configured driver.
func (d *DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return "file:" + d.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ImportConfig holds map import settings.
type ImportConfig struct {
	// PermissionLevel is the default permission given to created documents.
	PermissionLevel  int    `mapstructure:"permission_level"`
	CollectionPrefix string `mapstructure:"collection_prefix"`
	MaxFileSizeMB    int64  `mapstructure:"max_file_size_mb"`
}

// MaxFileSize returns the map file size limit in bytes.
func (i *ImportConfig) MaxFileSize() int64 {
	return i.MaxFileSizeMB * 1024 * 1024
}

// NotifyConfig holds import progress notification settings.
type NotifyConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	Recipient   string `mapstructure:"recipient"`
}

// Load reads configuration from environment variables with the FMGIMPORT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FMGIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.cors_origins", "http://localhost:30000,http://127.0.0.1:30000")

	// DB defaults
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fmgimport")
	v.SetDefault("db.password", "fmgimport_secret")
	v.SetDefault("db.name", "fmgimport_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.path", "data/fmgimport.db")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "fmgimport-maps")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Import defaults
	v.SetDefault("import.permission_level", 4)
	v.SetDefault("import.collection_prefix", "world")
	v.SetDefault("import.max_file_size_mb", 50)

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_address", "noreply@fmgimport.local")
	v.SetDefault("notify.from_name", "Map Importer")
	v.SetDefault("notify.recipient", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "FMGIMPORT_SERVER_PORT",
		"server.read_timeout":      "FMGIMPORT_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "FMGIMPORT_SERVER_WRITE_TIMEOUT",
		"server.environment":       "FMGIMPORT_SERVER_ENVIRONMENT",
		"server.cors_origins":      "FMGIMPORT_SERVER_CORS_ORIGINS",
		"db.driver":                "FMGIMPORT_DB_DRIVER",
		"db.host":                  "FMGIMPORT_DB_HOST",
		"db.port":                  "FMGIMPORT_DB_PORT",
		"db.user":                  "FMGIMPORT_DB_USER",
		"db.password":              "FMGIMPORT_DB_PASSWORD",
		"db.name":                  "FMGIMPORT_DB_NAME",
		"db.sslmode":               "FMGIMPORT_DB_SSLMODE",
		"db.max_open":              "FMGIMPORT_DB_MAX_OPEN",
		"db.max_idle":              "FMGIMPORT_DB_MAX_IDLE",
		"db.path":                  "FMGIMPORT_DB_PATH",
		"s3.region":                "FMGIMPORT_S3_REGION",
		"s3.bucket":                "FMGIMPORT_S3_BUCKET",
		"s3.endpoint":              "FMGIMPORT_S3_ENDPOINT",
		"s3.access_key":            "FMGIMPORT_S3_ACCESS_KEY",
		"s3.secret_key":            "FMGIMPORT_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "FMGIMPORT_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "FMGIMPORT_S3_PRESIGN_EXPIRY",
		"log.level":                "FMGIMPORT_LOG_LEVEL",
		"log.format":               "FMGIMPORT_LOG_FORMAT",
		"import.permission_level":  "FMGIMPORT_IMPORT_PERMISSION_LEVEL",
		"import.collection_prefix": "FMGIMPORT_IMPORT_COLLECTION_PREFIX",
		"import.max_file_size_mb":  "FMGIMPORT_IMPORT_MAX_FILE_SIZE_MB",
		"notify.provider":          "FMGIMPORT_NOTIFY_PROVIDER",
		"notify.region":            "FMGIMPORT_NOTIFY_REGION",
		"notify.from_address":      "FMGIMPORT_NOTIFY_FROM_ADDRESS",
		"notify.from_name":         "FMGIMPORT_NOTIFY_FROM_NAME",
		"notify.recipient":         "FMGIMPORT_NOTIFY_RECIPIENT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FMGIMPORT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FMGIMPORT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		CORSOrigins:  splitList(v.GetString("server.cors_origins")),
	}
	cfg.DB = DBConfig{
		Driver:   strings.ToLower(v.GetString("db.driver")),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
		Path:     v.GetString("db.path"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Import = ImportConfig{
		PermissionLevel:  v.GetInt("import.permission_level"),
		CollectionPrefix: v.GetString("import.collection_prefix"),
		MaxFileSizeMB:    v.GetInt64("import.max_file_size_mb"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		Recipient:   v.GetString("notify.recipient"),
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("config: unsupported db driver %q", cfg.DB.Driver)
	}
	if cfg.Notify.Provider == "ses" && cfg.Notify.Recipient == "" {
		return nil, fmt.Errorf("config: notify.recipient is required for the ses provider")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
