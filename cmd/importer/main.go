// Command importer reads a map generator export and imports it into the host
// store, or renders its entity tables as CSV or XLSX.
//
// Flags:
//
//	-map         path or s3://bucket/key of the .map export (required)
//	-background  scene background image path
//	-scene-name  scene name; derived from -background when empty
//	-dry-run     import into an in-memory host and only print the summary
//	-export      csv or xlsx; write entity tables instead of importing
//	-out         export destination; defaults to a name derived from the map
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"fmgimport/internal/config"
	"fmgimport/internal/domain"
	"fmgimport/internal/host"
	"fmgimport/internal/logger"
	"fmgimport/internal/notify/noop"
	"fmgimport/internal/notify/ses"
	"fmgimport/internal/port"
	"fmgimport/internal/repository/sqlstore"
	"fmgimport/internal/service"
	s3storage "fmgimport/internal/storage/s3"
)

type options struct {
	mapPath    string
	background string
	sceneName  string
	dryRun     bool
	export     string
	out        string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, zl, os.Stdout); err != nil {
		zl.Error("importer failed", zap.Error(err))
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (*options, error) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	opts := &options{}
	fs.StringVar(&opts.mapPath, "map", "", "path or s3://bucket/key of the .map export")
	fs.StringVar(&opts.background, "background", "", "scene background image path")
	fs.StringVar(&opts.sceneName, "scene-name", "", "scene name (default: derived from -background)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "import into an in-memory host")
	fs.StringVar(&opts.export, "export", "", "write entity tables as csv or xlsx instead of importing")
	fs.StringVar(&opts.out, "out", "", "export destination file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.mapPath == "" {
		err := errors.New("-map is required")
		fmt.Fprintln(errOut, err)
		fs.Usage()
		return nil, err
	}
	opts.export = strings.ToLower(opts.export)
	return opts, nil
}

func run(ctx context.Context, cfg *config.Config, opts *options, zl *zap.Logger, stdout io.Writer) error {
	var storage port.ObjectStorage
	if _, _, ok := s3storage.ParseURI(opts.mapPath); ok {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("initializing S3 client: %w", err)
		}
		storage = s3Client
	}

	text, err := service.NewMapSourceService(storage, &cfg.Import, zl).Load(ctx, opts.mapPath)
	if err != nil {
		return fmt.Errorf("reading map: %w", err)
	}

	if opts.export != "" {
		return runExport(ctx, cfg, opts, text, zl, stdout)
	}

	hostStore, closeHost, err := openHost(cfg, opts.dryRun)
	if err != nil {
		return err
	}
	defer closeHost()

	notifier, err := newNotifier(&cfg.Notify, zl)
	if err != nil {
		return fmt.Errorf("initializing notifier: %w", err)
	}

	result, err := service.NewImportService(hostStore, notifier, &cfg.Import, zl).Import(ctx, &service.ImportInput{
		MapText:         text,
		BackgroundImage: opts.background,
		SceneName:       opts.sceneName,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runExport(ctx context.Context, cfg *config.Config, opts *options, text string, zl *zap.Logger, stdout io.Writer) error {
	mapName := filepath.Base(opts.mapPath)
	mapName = strings.TrimSuffix(mapName, filepath.Ext(mapName))

	result, err := service.NewExportService(nil, &cfg.S3, zl).Export(ctx, &service.ExportInput{
		MapText: text,
		MapName: mapName,
		Format:  domain.ExportFormat(opts.export),
	})
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = result.Filename
	}
	if err := os.WriteFile(out, result.Data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", out, len(result.Data))
	return nil
}

// openHost returns the host store to import into and a function releasing it.
func openHost(cfg *config.Config, dryRun bool) (port.HostStore, func(), error) {
	if dryRun {
		return host.NewMemoryStore(), func() {}, nil
	}

	db, err := sqlstore.NewDB(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := sqlstore.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}
	store := host.NewStore(
		sqlstore.NewCollectionRepo(db),
		sqlstore.NewDocumentRepo(db),
		sqlstore.NewSceneRepo(db),
		sqlstore.NewAnnotationRepo(db),
	)
	return store, func() { _ = db.Close() }, nil
}

func newNotifier(cfg *config.NotifyConfig, zl *zap.Logger) (port.Notifier, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESNotifier(cfg)
	}
	return noop.NewNoopNotifier(zl), nil
}
