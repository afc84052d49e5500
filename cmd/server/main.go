package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fmgimport/internal/config"
	"fmgimport/internal/handler"
	"fmgimport/internal/host"
	"fmgimport/internal/logger"
	"fmgimport/internal/notify/noop"
	"fmgimport/internal/notify/ses"
	"fmgimport/internal/port"
	"fmgimport/internal/repository/sqlstore"
	"fmgimport/internal/router"
	"fmgimport/internal/service"
	s3storage "fmgimport/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := sqlstore.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := sqlstore.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	collectionRepo := sqlstore.NewCollectionRepo(db)
	documentRepo := sqlstore.NewDocumentRepo(db)
	sceneRepo := sqlstore.NewSceneRepo(db)
	annotationRepo := sqlstore.NewAnnotationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	notifier, err := newNotifier(&cfg.Notify, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Initialize services
	hostStore := host.NewStore(collectionRepo, documentRepo, sceneRepo, annotationRepo)
	importSvc := service.NewImportService(hostStore, notifier, &cfg.Import, zl)
	exportSvc := service.NewExportService(s3Client, &cfg.S3, zl)
	sourceSvc := service.NewMapSourceService(s3Client, &cfg.Import, zl)
	librarySvc := service.NewLibraryService(collectionRepo, documentRepo, sceneRepo, annotationRepo)

	// Initialize handlers
	importH := handler.NewImportHandler(importSvc, sourceSvc)
	exportH := handler.NewExportHandler(exportSvc, sourceSvc)
	libraryH := handler.NewLibraryHandler(librarySvc)
	healthH := handler.NewHealthHandler(db)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.Setup(zl, cfg.Server.CORSOrigins, importH, exportH, libraryH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("db_driver", cfg.DB.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	}

	return nil
}

func newNotifier(cfg *config.NotifyConfig, zl *zap.Logger) (port.Notifier, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESNotifier(cfg)
	}
	return noop.NewNoopNotifier(zl), nil
}
