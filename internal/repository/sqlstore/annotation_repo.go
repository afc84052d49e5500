package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fmgimport/internal/domain"
	"fmgimport/internal/port"
)

type annotationRepo struct {
	db *sqlx.DB
}

// NewAnnotationRepo creates a new sqlx-backed AnnotationRepository.
func NewAnnotationRepo(db *sqlx.DB) port.AnnotationRepository {
	return &annotationRepo{db: db}
}

func (r *annotationRepo) CreateBatch(ctx context.Context, sceneID uuid.UUID, annotations []*domain.Annotation) error {
	if len(annotations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("annotationRepo.CreateBatch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	err = tx.GetContext(ctx, &next,
		tx.Rebind("SELECT COALESCE(MAX(position) + 1, 0) FROM annotations WHERE scene_id = ?"), sceneID)
	if err != nil {
		return fmt.Errorf("annotationRepo.CreateBatch position: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO annotations
		(id, scene_id, x, y, icon_kind, icon, icon_size, tint, text, font_size, text_color, text_anchor,
		 min_zoom, max_zoom, linked_collection, linked_document_id, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("annotationRepo.CreateBatch prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, a := range annotations {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.SceneID = sceneID
		a.Position = next + i
		a.CreatedAt = now
		_, err := stmt.ExecContext(ctx,
			a.ID, a.SceneID, a.X, a.Y, string(a.IconKind), a.Icon, a.IconSize, a.Tint, a.Text, a.FontSize,
			a.TextColor, a.TextAnchor, a.MinZoom, a.MaxZoom, a.LinkedCollection, a.LinkedDocumentID,
			a.Position, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("annotationRepo.CreateBatch insert %q: %w", a.Text, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("annotationRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *annotationRepo) ListByScene(ctx context.Context, sceneID uuid.UUID) ([]domain.Annotation, error) {
	var annotations []domain.Annotation
	err := r.db.SelectContext(ctx, &annotations,
		r.db.Rebind("SELECT * FROM annotations WHERE scene_id = ? ORDER BY position"), sceneID)
	if err != nil {
		return nil, fmt.Errorf("annotationRepo.ListByScene: %w", err)
	}
	return annotations, nil
}
