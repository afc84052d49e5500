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

type collectionRepo struct {
	db *sqlx.DB
}

// NewCollectionRepo creates a new sqlx-backed CollectionRepository.
func NewCollectionRepo(db *sqlx.DB) port.CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`INSERT INTO collections (id, name, label, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Label, c.CreatedAt); err != nil {
		return fmt.Errorf("collectionRepo.Create: %w", err)
	}
	return nil
}

func (r *collectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	var c domain.Collection
	err := r.db.GetContext(ctx, &c, r.db.Rebind("SELECT * FROM collections WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("collectionRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *collectionRepo) List(ctx context.Context, offset, limit int) ([]domain.Collection, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM collections"); err != nil {
		return nil, 0, fmt.Errorf("collectionRepo.List count: %w", err)
	}

	var collections []domain.Collection
	err := r.db.SelectContext(ctx, &collections,
		r.db.Rebind("SELECT * FROM collections ORDER BY created_at DESC, name LIMIT ? OFFSET ?"),
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("collectionRepo.List: %w", err)
	}
	return collections, total, nil
}
