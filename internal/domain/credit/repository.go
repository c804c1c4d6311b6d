package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

// Repository defines credit ledger data access.
type Repository interface {
	// Insert appends a credit row.
	Insert(ctx context.Context, c *Credit) error

	// InsertChecked appends a credit row only if the user's credits from the
	// same source created at or after windowStart sum to less than cap. The
	// sum and insert run in one transaction so concurrent awards for the same
	// user cannot both pass the check. A row carrying a source reference the
	// ledger already holds is rejected with ErrAlreadyAwarded. Returns the
	// window total observed and whether the insert happened.
	InsertChecked(ctx context.Context, c *Credit, windowStart time.Time, cap float64) (windowTotal float64, inserted bool, err error)

	// GetBySourceRef returns the credit linked to the given source record,
	// nil when none exists.
	GetBySourceRef(ctx context.Context, ref uuid.UUID) (*Credit, error)

	// SumBySourceSince returns the total amount of a user's credits from one
	// source created at or after the given instant.
	SumBySourceSince(ctx context.Context, userID uuid.UUID, source Source, since time.Time) (float64, error)

	// ListByUser returns all of a user's credits, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Credit, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates credit repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const creditColumns = `id, user_id, amount, source, source_ref, expiry, created_at`

// isUniqueViolation reports whether err is the unique index on source_ref
// firing.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *repository) Insert(ctx context.Context, c *Credit) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.UserID, c.Amount, c.Source, c.SourceRef, c.Expiry, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAwarded
		}
		return fmt.Errorf("insert credit: %w: %w", ErrInternal, err)
	}
	return nil
}

func (r *repository) InsertChecked(ctx context.Context, c *Credit, windowStart time.Time, cap float64) (float64, bool, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return 0, false, fmt.Errorf("begin tx: %w: %w", ErrInternal, err)
	}
	defer tx.Rollback()

	// Transaction-scoped advisory lock per user: a concurrent award for the
	// same user blocks here until our verdict commits, so two qualifying
	// promos cannot both pass the cap check.
	if _, err := tx.ExecContext(ctx2, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, c.UserID); err != nil {
		return 0, false, fmt.Errorf("acquire award lock: %w: %w", ErrInternal, err)
	}

	if c.SourceRef != nil {
		var exists bool
		err := tx.QueryRowContext(ctx2, `
			SELECT EXISTS(SELECT 1 FROM credits WHERE source_ref = $1)
		`, c.SourceRef).Scan(&exists)
		if err != nil {
			return 0, false, fmt.Errorf("check source ref: %w: %w", ErrInternal, err)
		}
		if exists {
			return 0, false, ErrAlreadyAwarded
		}
	}

	var total float64
	err = tx.QueryRowContext(ctx2, `
		SELECT COALESCE(SUM(amount), 0)
		FROM credits
		WHERE user_id = $1 AND source = $2 AND created_at >= $3
	`, c.UserID, c.Source, windowStart).Scan(&total)
	if err != nil {
		return 0, false, fmt.Errorf("sum window: %w: %w", ErrInternal, err)
	}

	if total >= cap {
		return total, false, nil
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.UserID, c.Amount, c.Source, c.SourceRef, c.Expiry, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return total, false, ErrAlreadyAwarded
		}
		return total, false, fmt.Errorf("insert credit: %w: %w", ErrInternal, err)
	}

	if err := tx.Commit(); err != nil {
		return total, false, fmt.Errorf("commit tx: %w: %w", ErrInternal, err)
	}

	return total, true, nil
}

func (r *repository) GetBySourceRef(ctx context.Context, ref uuid.UUID) (*Credit, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Credit
	err := r.db.GetContext(ctx2, &c, `
		SELECT `+creditColumns+`
		FROM credits
		WHERE source_ref = $1
	`, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit by source ref: %w: %w", ErrInternal, err)
	}
	return &c, nil
}

func (r *repository) SumBySourceSince(ctx context.Context, userID uuid.UUID, source Source, since time.Time) (float64, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total float64
	err := r.db.GetContext(ctx2, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM credits
		WHERE user_id = $1 AND source = $2 AND created_at >= $3
	`, userID, source, since)
	if err != nil {
		return 0, fmt.Errorf("sum credits: %w: %w", ErrInternal, err)
	}
	return total, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Credit, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	credits := make([]Credit, 0)
	err := r.db.SelectContext(ctx2, &credits, `
		SELECT `+creditColumns+`
		FROM credits
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w: %w", ErrInternal, err)
	}
	return credits, nil
}
