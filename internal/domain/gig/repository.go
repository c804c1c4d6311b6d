package gig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Pagination represents page parameters
type Pagination struct {
	Page  int
	Limit int
}

// Filter represents gig list filters
type Filter struct {
	Status     *Status
	BusinessID *uuid.UUID
	StoryType  *string
}

// Repository defines gig data access
type Repository interface {
	Create(ctx context.Context, g *Gig) error
	GetByID(ctx context.Context, id uuid.UUID) (*Gig, error)
	Update(ctx context.Context, g *Gig) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Claim(ctx context.Context, id uuid.UUID, clipperID uuid.UUID) (bool, error)
	List(ctx context.Context, filter *Filter, p *Pagination) ([]*Gig, int, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, p *Pagination) ([]*Gig, int, error)
	ListByClipper(ctx context.Context, clipperID uuid.UUID, p *Pagination) ([]*Gig, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates gig repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const gigColumns = `id, created_at, updated_at, business_id, title, description,
	budget, goals, story_type, raw_footage_url, cover_image_url, status, claimed_by`

func (r *repository) Create(ctx context.Context, g *Gig) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO gigs (id, created_at, updated_at, business_id, title, description,
			budget, goals, story_type, raw_footage_url, cover_image_url, status, claimed_by)
		VALUES (:id, :created_at, :updated_at, :business_id, :title, :description,
			:budget, :goals, :story_type, :raw_footage_url, :cover_image_url, :status, :claimed_by)
	`
	_, err := r.db.NamedExecContext(ctx, query, g)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Gig, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var g Gig
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE id = $1`
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *repository) Update(ctx context.Context, g *Gig) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE gigs SET
			updated_at = :updated_at,
			title = :title,
			description = :description,
			budget = :budget,
			goals = :goals,
			story_type = :story_type,
			raw_footage_url = :raw_footage_url,
			cover_image_url = :cover_image_url
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, g)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `UPDATE gigs SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

// Claim atomically moves a pending gig to claimed. Returns false when the gig
// was already claimed by someone else (lost the race).
func (r *repository) Claim(ctx context.Context, id uuid.UUID, clipperID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE gigs SET status = 'claimed', claimed_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	res, err := r.db.ExecContext(ctx, query, id, clipperID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, p *Pagination) ([]*Gig, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	where := ` WHERE 1=1`
	args := map[string]interface{}{}
	if filter != nil {
		if filter.Status != nil {
			where += ` AND status = :status`
			args["status"] = *filter.Status
		}
		if filter.BusinessID != nil {
			where += ` AND business_id = :business_id`
			args["business_id"] = *filter.BusinessID
		}
		if filter.StoryType != nil {
			where += ` AND story_type = :story_type`
			args["story_type"] = *filter.StoryType
		}
	}

	countQuery, countArgs, err := sqlx.Named(`SELECT COUNT(*) FROM gigs`+where, args)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.db.Rebind(countQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	args["limit"] = p.Limit
	args["offset"] = (p.Page - 1) * p.Limit
	query, listArgs, err := sqlx.Named(`
		SELECT `+gigColumns+` FROM gigs`+where+`
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`, args)
	if err != nil {
		return nil, 0, err
	}
	query = r.db.Rebind(query)

	var gigs []*Gig
	if err := r.db.SelectContext(ctx, &gigs, query, listArgs...); err != nil {
		return nil, 0, err
	}
	return gigs, total, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID uuid.UUID, p *Pagination) ([]*Gig, int, error) {
	return r.List(ctx, &Filter{BusinessID: &businessID}, p)
}

func (r *repository) ListByClipper(ctx context.Context, clipperID uuid.UUID, p *Pagination) ([]*Gig, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	countQuery := `SELECT COUNT(*) FROM gigs WHERE claimed_by = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, clipperID); err != nil {
		return nil, 0, err
	}

	offset := (p.Page - 1) * p.Limit
	query := `
		SELECT ` + gigColumns + ` FROM gigs
		WHERE claimed_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var gigs []*Gig
	if err := r.db.SelectContext(ctx, &gigs, query, clipperID, p.Limit, offset); err != nil {
		return nil, 0, err
	}
	return gigs, total, nil
}
