package postgres

import (
	"context"
	"database/sql"

	"github.com/minimall/minimall/internal/domain/commission"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
)

type commissionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCommissionRepository(db *postgres.DB, logger *logger.Logger) commission.Repository {
	return &commissionRepository{db: db, logger: logger}
}

// CreateIdempotent leans on the unique (order_id, beneficiary_member_id) index:
// a conflicting insert is swallowed by ON CONFLICT DO NOTHING and reported as
// not-created, which keeps re-runs of distribution from duplicating records.
func (r *commissionRepository) CreateIdempotent(ctx context.Context, rec *commission.Record) (bool, error) {
	query := `
		INSERT INTO commission_records (
			id, order_id, beneficiary_member_id, tier_depth, rate, amount,
			commission_status, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :order_id, :beneficiary_member_id, :tier_depth, :rate, :amount,
			:commission_status, :status, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (order_id, beneficiary_member_id) DO NOTHING`

	res, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to create commission record").
			Mark(ierr.ErrDatabase)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to create commission record").
			Mark(ierr.ErrDatabase)
	}

	if affected == 0 {
		r.logger.Debugw("commission record already exists",
			"order_id", rec.OrderID,
			"beneficiary_member_id", rec.BeneficiaryMemberID,
		)
	}
	return affected == 1, nil
}

func (r *commissionRepository) Get(ctx context.Context, id string) (*commission.Record, error) {
	var rec commission.Record
	query := `SELECT * FROM commission_records WHERE id = $1`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("commission record not found").
				WithHint("Commission record not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get commission record").
			Mark(ierr.ErrDatabase)
	}
	return &rec, nil
}

func (r *commissionRepository) ListByOrder(ctx context.Context, orderID string) ([]*commission.Record, error) {
	var records []*commission.Record
	query := `SELECT * FROM commission_records WHERE order_id = $1 ORDER BY tier_depth`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &records, query, orderID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list commission records").
			Mark(ierr.ErrDatabase)
	}
	return records, nil
}

func (r *commissionRepository) ListByBeneficiary(ctx context.Context, memberID string) ([]*commission.Record, error) {
	var records []*commission.Record
	query := `SELECT * FROM commission_records WHERE beneficiary_member_id = $1 ORDER BY created_at DESC`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &records, query, memberID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list commission records").
			Mark(ierr.ErrDatabase)
	}
	return records, nil
}

func (r *commissionRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE commission_records SET commission_status = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, status, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update commission status").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
