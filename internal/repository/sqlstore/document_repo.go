package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fmgimport/internal/domain"
	"fmgimport/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new sqlx-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) CreateBatch(ctx context.Context, collectionID uuid.UUID, docs []*domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.CreateBatch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	err = tx.GetContext(ctx, &next,
		tx.Rebind("SELECT COALESCE(MAX(position) + 1, 0) FROM documents WHERE collection_id = ?"), collectionID)
	if err != nil {
		return fmt.Errorf("documentRepo.CreateBatch position: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO documents
		(id, collection_id, title, html_body, permission_level, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("documentRepo.CreateBatch prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, d := range docs {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		d.CollectionID = collectionID
		d.Position = next + i
		d.CreatedAt = now
		_, err := stmt.ExecContext(ctx,
			d.ID, d.CollectionID, d.Title, d.HTMLBody, d.PermissionLevel, d.Position, d.CreatedAt)
		if err != nil {
			return fmt.Errorf("documentRepo.CreateBatch insert %q: %w", d.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *documentRepo) FindByTitle(ctx context.Context, collectionID uuid.UUID, title string) (*domain.Document, error) {
	var d domain.Document
	err := r.db.GetContext(ctx, &d,
		r.db.Rebind("SELECT * FROM documents WHERE collection_id = ? AND title = ? ORDER BY position LIMIT 1"),
		collectionID, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.FindByTitle: %w", err)
	}
	return &d, nil
}

func (r *documentRepo) ListByCollection(ctx context.Context, collectionID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		r.db.Rebind("SELECT COUNT(*) FROM documents WHERE collection_id = ?"), collectionID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByCollection count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		r.db.Rebind("SELECT * FROM documents WHERE collection_id = ? ORDER BY position LIMIT ? OFFSET ?"),
		collectionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByCollection: %w", err)
	}
	return docs, total, nil
}
