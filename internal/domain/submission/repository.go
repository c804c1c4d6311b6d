package submission

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines submission data access
type Repository interface {
	Create(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	GetByGigAndClipper(ctx context.Context, gigID, clipperID uuid.UUID) (*Submission, error)
	Update(ctx context.Context, s *Submission) error
	ListByClipper(ctx context.Context, clipperID uuid.UUID) ([]*Submission, error)
	ListByGig(ctx context.Context, gigID uuid.UUID) ([]*Submission, error)
	ListApprovedByClipper(ctx context.Context, clipperID uuid.UUID) ([]*Submission, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates submission repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const submissionColumns = `id, created_at, updated_at, gig_id, clipper_id,
	video_url, social_post_link, views, likes, outcomes, bonus, approved`

func (r *repository) Create(ctx context.Context, s *Submission) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO submissions (id, created_at, updated_at, gig_id, clipper_id,
			video_url, social_post_link, views, likes, outcomes, bonus, approved)
		VALUES (:id, :created_at, :updated_at, :gig_id, :clipper_id,
			:video_url, :social_post_link, :views, :likes, :outcomes, :bonus, :approved)
	`
	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s Submission
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByGigAndClipper(ctx context.Context, gigID, clipperID uuid.UUID) (*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s Submission
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE gig_id = $1 AND clipper_id = $2`
	if err := r.db.GetContext(ctx, &s, query, gigID, clipperID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Submission) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE submissions SET
			updated_at = :updated_at,
			video_url = :video_url,
			social_post_link = :social_post_link,
			views = :views,
			likes = :likes,
			outcomes = :outcomes,
			bonus = :bonus,
			approved = :approved
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

func (r *repository) ListByClipper(ctx context.Context, clipperID uuid.UUID) ([]*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE clipper_id = $1 ORDER BY created_at DESC`
	var subs []*Submission
	if err := r.db.SelectContext(ctx, &subs, query, clipperID); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) ListByGig(ctx context.Context, gigID uuid.UUID) ([]*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE gig_id = $1 ORDER BY created_at DESC`
	var subs []*Submission
	if err := r.db.SelectContext(ctx, &subs, query, gigID); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) ListApprovedByClipper(ctx context.Context, clipperID uuid.UUID) ([]*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE clipper_id = $1 AND approved = TRUE ORDER BY created_at DESC`
	var subs []*Submission
	if err := r.db.SelectContext(ctx, &subs, query, clipperID); err != nil {
		return nil, err
	}
	return subs, nil
}
