package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fmgimport/internal/config"
	"fmgimport/internal/domain"
	"fmgimport/internal/entity"
	"fmgimport/internal/export"
	"fmgimport/internal/parser"
	"fmgimport/internal/port"
)

// Progress messages sent to the notifier during an import.
const (
	msgCreatingScene       = "Creating scene."
	msgCreatingDocuments   = "Creating documents for %s."
	msgCreatingAnnotations = "Creating map annotations."
	msgImportComplete      = "Import complete."
	msgImportFailed        = "Import failed: %v"
)

const defaultSceneName = "Map"

// ImportInput is the DTO for a map import.
type ImportInput struct {
	MapText         string
	BackgroundImage string
	// SceneName overrides the name derived from BackgroundImage.
	SceneName string
}

// ImportStats summarises how the map export was read.
type ImportStats struct {
	Lines                int `json:"lines"`
	ParseFailures        int `json:"parse_failures"`
	ClassificationMisses int `json:"classification_misses"`
	OverwrittenBatches   int `json:"overwritten_batches"`
	MalformedRecords     int `json:"malformed_records"`
	RemovedRecords       int `json:"removed_records"`
	UnnamedRecords       int `json:"unnamed_records"`
	IndexMismatches      int `json:"index_mismatches"`
}

// ImportResult describes what an import created on the host.
type ImportResult struct {
	SceneID     uuid.UUID            `json:"scene_id"`
	SceneName   string               `json:"scene_name"`
	Collections map[string]uuid.UUID `json:"collections"`
	Documents   map[string]int       `json:"documents"`
	Annotations int                  `json:"annotations"`
	Dangling    []string             `json:"dangling,omitempty"`
	Stats       ImportStats          `json:"stats"`
}

// ImportService runs map imports against a host store.
type ImportService interface {
	Import(ctx context.Context, input *ImportInput) (*ImportResult, error)
}

type importService struct {
	host     port.HostStore
	notifier port.Notifier
	cfg      *config.ImportConfig
	logger   *zap.Logger
	running  atomic.Bool
}

// NewImportService creates a new ImportService implementation.
func NewImportService(
	host port.HostStore,
	notifier port.Notifier,
	cfg *config.ImportConfig,
	logger *zap.Logger,
) ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &importService{
		host:     host,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.Named("import"),
	}
}

// plan is everything derived from a map export before the host is touched.
type plan struct {
	raw        *parser.RawBatches
	model      *entity.Model
	linked     *entity.LinkedModel
	projection *export.Projection
}

func (s *importService) Import(ctx context.Context, input *ImportInput) (*ImportResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrImportInProgress
	}
	defer s.running.Store(false)

	p, err := s.prepare(input.MapText)
	if err != nil {
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	result := &ImportResult{
		SceneName:   input.SceneName,
		Collections: make(map[string]uuid.UUID, len(domain.CollectionOrder)),
		Documents:   make(map[string]int, len(domain.CollectionOrder)),
		Stats:       importStats(p),
	}
	if result.SceneName == "" {
		result.SceneName = SceneName(input.BackgroundImage)
	}
	for _, ref := range p.linked.Dangling {
		result.Dangling = append(result.Dangling, ref.Error())
	}

	s.notify(ctx, msgCreatingScene)
	scene, err := s.host.CreateScene(ctx, domain.SceneInput{
		Name:            result.SceneName,
		Width:           p.raw.Width,
		Height:          p.raw.Height,
		BackgroundImage: input.BackgroundImage,
	})
	if err != nil {
		return nil, s.fail(ctx, "creating scene", err)
	}
	result.SceneID = scene.ID()

	docs := newDocumentIndex(ctx)
	for _, name := range domain.CollectionOrder {
		s.notify(ctx, fmt.Sprintf(msgCreatingDocuments, name))
		collection, err := s.host.CreateDocumentCollection(ctx, name)
		if err != nil {
			return nil, s.fail(ctx, "creating collection "+name, err)
		}
		result.Collections[name] = collection.ID()

		inputs, err := s.documentInputs(p.projection.DocumentsIn(name), docs.find)
		if err != nil {
			return nil, s.fail(ctx, "linking documents for "+name, err)
		}
		if len(inputs) > 0 {
			if err := collection.CreateDocuments(ctx, inputs); err != nil {
				return nil, s.fail(ctx, "creating documents for "+name, err)
			}
		}
		docs.add(collection)
		result.Documents[name] = len(inputs)
	}

	s.notify(ctx, msgCreatingAnnotations)
	annotations := make([]domain.Annotation, 0, len(p.projection.Annotations))
	for _, draft := range p.projection.Annotations {
		id, _, err := docs.find(draft.LinkedDocument.Collection, draft.LinkedDocument.Title)
		if err != nil {
			return nil, s.fail(ctx, "linking annotations", err)
		}
		annotations = append(annotations, draft.Annotation(s.cfg.CollectionPrefix, id))
	}
	if len(annotations) > 0 {
		if err := scene.CreateAnnotations(ctx, annotations); err != nil {
			return nil, s.fail(ctx, "creating annotations", err)
		}
	}
	result.Annotations = len(annotations)

	s.notify(ctx, msgImportComplete)
	s.logger.Info("import complete",
		zap.String("scene_id", result.SceneID.String()),
		zap.Int("annotations", result.Annotations),
		zap.Int("dangling", len(result.Dangling)),
	)
	return result, nil
}

// prepare runs every fallible step that needs no host call, so a bad map
// export is rejected before anything is created.
func (s *importService) prepare(text string) (*plan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMapFile
	}

	raw := parser.Extract(text)
	s.logger.Debug("extracted map export",
		zap.Int("lines", raw.Stats.Lines),
		zap.Int("classified", raw.Stats.Classified),
		zap.Int("parse_failures", raw.Stats.ParseFailures),
		zap.Int("classification_misses", raw.Stats.ClassificationMisses),
		zap.Int("overwritten", raw.Stats.Overwritten),
	)

	model, err := entity.Build(raw)
	if err != nil {
		return nil, err
	}
	linked := entity.NewResolver(s.logger).Resolve(model)
	projection, err := export.Project(linked)
	if err != nil {
		return nil, fmt.Errorf("projecting documents: %w", err)
	}
	return &plan{raw: raw, model: model, linked: linked, projection: projection}, nil
}

func (s *importService) documentInputs(docs []export.Document, find export.FindDocument) ([]domain.DocumentInput, error) {
	inputs := make([]domain.DocumentInput, 0, len(docs))
	for _, d := range docs {
		body, err := export.ResolveLinks(d.HTMLBody, s.cfg.CollectionPrefix, find)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, domain.DocumentInput{
			Title:           d.Title,
			HTMLBody:        body,
			PermissionLevel: s.cfg.PermissionLevel,
		})
	}
	return inputs, nil
}

// fail reports a host error to the user. Whatever was created so far stays.
func (s *importService) fail(ctx context.Context, step string, err error) error {
	s.logger.Error("import failed", zap.String("step", step), zap.Error(err))
	s.notify(ctx, fmt.Sprintf(msgImportFailed, err))
	return fmt.Errorf("importService.Import: %s: %w", step, err)
}

func (s *importService) notify(ctx context.Context, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Warn("notification failed", zap.String("message", message), zap.Error(err))
	}
}

func importStats(p *plan) ImportStats {
	return ImportStats{
		Lines:                p.raw.Stats.Lines,
		ParseFailures:        p.raw.Stats.ParseFailures,
		ClassificationMisses: p.raw.Stats.ClassificationMisses,
		OverwrittenBatches:   p.raw.Stats.Overwritten,
		MalformedRecords:     p.model.Stats.Malformed,
		RemovedRecords:       p.model.Stats.Removed,
		UnnamedRecords:       p.model.Stats.Unnamed,
		IndexMismatches:      p.model.Stats.IndexMismatches,
	}
}

// SceneName derives a scene name from a background image path: the base name,
// cut at the first encoded space, without its extension.
func SceneName(background string) string {
	name := path.Base(strings.ReplaceAll(background, "\\", "/"))
	if i := strings.Index(name, "%20"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return defaultSceneName
	}
	return name
}

// documentIndex finds documents in the collections created so far, caching
// every lookup.
type documentIndex struct {
	ctx         context.Context
	collections map[string]port.CollectionHandle
	found       map[[2]string]uuid.UUID
}

func newDocumentIndex(ctx context.Context) *documentIndex {
	return &documentIndex{
		ctx:         ctx,
		collections: make(map[string]port.CollectionHandle),
		found:       make(map[[2]string]uuid.UUID),
	}
}

func (d *documentIndex) add(c port.CollectionHandle) {
	d.collections[c.Name()] = c
}

func (d *documentIndex) find(collection, title string) (uuid.UUID, bool, error) {
	key := [2]string{collection, title}
	if id, ok := d.found[key]; ok {
		return id, true, nil
	}
	c, ok := d.collections[collection]
	if !ok {
		return uuid.Nil, false, nil
	}
	doc, err := c.FindByTitle(d.ctx, title)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	d.found[key] = doc.ID
	return doc.ID, true, nil
}
