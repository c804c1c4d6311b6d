package selfpromo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines self-promo data access
type Repository interface {
	Create(ctx context.Context, p *SelfPromo) error
	GetByID(ctx context.Context, id uuid.UUID) (*SelfPromo, error)
	Update(ctx context.Context, p *SelfPromo) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*SelfPromo, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates self-promo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const promoColumns = `id, created_at, updated_at, business_id, post_link, views, likes, credit_earned`

func (r *repository) Create(ctx context.Context, p *SelfPromo) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO self_promos (id, created_at, updated_at, business_id, post_link, views, likes, credit_earned)
		VALUES (:id, :created_at, :updated_at, :business_id, :post_link, :views, :likes, :credit_earned)
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SelfPromo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p SelfPromo
	query := `SELECT ` + promoColumns + ` FROM self_promos WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *SelfPromo) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE self_promos SET
			updated_at = :updated_at,
			views = :views,
			likes = :likes,
			credit_earned = :credit_earned
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *repository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*SelfPromo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + promoColumns + ` FROM self_promos WHERE business_id = $1 ORDER BY created_at DESC`
	var promos []*SelfPromo
	if err := r.db.SelectContext(ctx, &promos, query, businessID); err != nil {
		return nil, err
	}
	return promos, nil
}
