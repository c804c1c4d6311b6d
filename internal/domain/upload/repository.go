package upload

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines upload data access
type Repository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id uuid.UUID) (*Upload, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, kind Kind) ([]*Upload, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates upload repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const uploadColumns = `id, user_id, kind, original_name, mime_type, size,
	storage_key, url, thumbnail_key, thumbnail_url, width, height, created_at`

func (r *repository) Create(ctx context.Context, u *Upload) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO uploads (id, user_id, kind, original_name, mime_type, size,
			storage_key, url, thumbnail_key, thumbnail_url, width, height, created_at)
		VALUES (:id, :user_id, :kind, :original_name, :mime_type, :size,
			:storage_key, :url, :thumbnail_key, :thumbnail_url, :width, :height, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, u)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u Upload
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE id = $1`
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	return err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, kind Kind) ([]*Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var uploads []*Upload
	if kind == "" {
		query := `SELECT ` + uploadColumns + ` FROM uploads WHERE user_id = $1 ORDER BY created_at DESC`
		if err := r.db.SelectContext(ctx, &uploads, query, userID); err != nil {
			return nil, err
		}
		return uploads, nil
	}

	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE user_id = $1 AND kind = $2 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &uploads, query, userID, kind); err != nil {
		return nil, err
	}
	return uploads, nil
}
