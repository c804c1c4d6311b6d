package lesson

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines certification data access
type Repository interface {
	CreateCertification(ctx context.Context, c *Certification) error
	GetCertification(ctx context.Context, clipperID uuid.UUID, level CertLevel) (*Certification, error)
	ListCertifications(ctx context.Context, clipperID uuid.UUID) ([]*Certification, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates certification repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCertification(ctx context.Context, c *Certification) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO certifications (id, clipper_id, level, completed_at)
		VALUES (:id, :clipper_id, :level, :completed_at)
		ON CONFLICT (clipper_id, level) DO NOTHING
	`
	_, err := r.db.NamedExecContext(ctx, query, c)
	return err
}

func (r *repository) GetCertification(ctx context.Context, clipperID uuid.UUID, level CertLevel) (*Certification, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Certification
	query := `SELECT id, clipper_id, level, completed_at FROM certifications WHERE clipper_id = $1 AND level = $2`
	if err := r.db.GetContext(ctx, &c, query, clipperID, level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListCertifications(ctx context.Context, clipperID uuid.UUID) ([]*Certification, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT id, clipper_id, level, completed_at FROM certifications WHERE clipper_id = $1 ORDER BY completed_at DESC`
	var certs []*Certification
	if err := r.db.SelectContext(ctx, &certs, query, clipperID); err != nil {
		return nil, err
	}
	return certs, nil
}
