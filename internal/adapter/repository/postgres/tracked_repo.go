package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

const pgErrUniqueViolation = "23505"

// TrackedWalletRepository implements usecase.TrackedWalletRepository.
type TrackedWalletRepository struct {
	pool *pgxpool.Pool
}

// NewTrackedWalletRepository creates a new TrackedWalletRepository.
func NewTrackedWalletRepository(pool *pgxpool.Pool) *TrackedWalletRepository {
	return &TrackedWalletRepository{pool: pool}
}

// Create inserts a tracked wallet. A duplicate address maps to
// domain.ErrWalletAlreadyTracked.
func (r *TrackedWalletRepository) Create(ctx context.Context, wallet *domain.TrackedWallet) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tracked_wallets (id, address, label, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		wallet.ID, wallet.Address, wallet.Label, string(wallet.Status), wallet.CreatedAt, wallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrWalletAlreadyTracked
		}

		return err
	}

	return nil
}

// GetByAddress retrieves one tracked wallet.
func (r *TrackedWalletRepository) GetByAddress(ctx context.Context, address string) (*domain.TrackedWallet, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, address, label, status, created_at, updated_at
		FROM tracked_wallets
		WHERE address = $1 AND status <> $2`,
		address, string(domain.WalletStatusDeleted),
	)

	return scanTrackedWallet(row)
}

// List returns all non-deleted tracked wallets, oldest first.
func (r *TrackedWalletRepository) List(ctx context.Context) ([]*domain.TrackedWallet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, address, label, status, created_at, updated_at
		FROM tracked_wallets
		WHERE status <> $1
		ORDER BY created_at`,
		string(domain.WalletStatusDeleted),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.TrackedWallet
	for rows.Next() {
		w, err := scanTrackedWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}

	return wallets, rows.Err()
}

// UpdateStatus sets the tracking status for an address.
func (r *TrackedWalletRepository) UpdateStatus(ctx context.Context, address string, status domain.WalletStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tracked_wallets
		SET status = $2, updated_at = $3
		WHERE address = $1 AND status <> $4`,
		address, string(status), updatedAt, string(domain.WalletStatusDeleted),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotTracked
	}

	return nil
}

// Delete soft-deletes a tracked wallet.
func (r *TrackedWalletRepository) Delete(ctx context.Context, address string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tracked_wallets
		SET status = $2, updated_at = $3
		WHERE address = $1 AND status <> $2`,
		address, string(domain.WalletStatusDeleted), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotTracked
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrackedWallet(row rowScanner) (*domain.TrackedWallet, error) {
	var (
		w      domain.TrackedWallet
		status string
	)

	err := row.Scan(&w.ID, &w.Address, &w.Label, &status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotTracked
		}

		return nil, err
	}

	w.Status = domain.WalletStatus(status)

	return &w, nil
}
