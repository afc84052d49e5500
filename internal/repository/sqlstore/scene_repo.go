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

type sceneRepo struct {
	db *sqlx.DB
}

// NewSceneRepo creates a new sqlx-backed SceneRepository.
func NewSceneRepo(db *sqlx.DB) port.SceneRepository {
	return &sceneRepo{db: db}
}

func (r *sceneRepo) Create(ctx context.Context, s *domain.Scene) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`INSERT INTO scenes (id, name, width, height, background_image, padding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Width, s.Height, s.BackgroundImage, s.Padding, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("sceneRepo.Create: %w", err)
	}
	return nil
}

func (r *sceneRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error) {
	var s domain.Scene
	err := r.db.GetContext(ctx, &s, r.db.Rebind("SELECT * FROM scenes WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSceneNotFound
		}
		return nil, fmt.Errorf("sceneRepo.GetByID: %w", err)
	}
	return &s, nil
}
